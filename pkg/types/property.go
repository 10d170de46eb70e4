// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// MechanicalProperty is one row of extracted mechanical-property data,
// tied to a material and an optional processing condition.
type MechanicalProperty struct {
	// Material is the material or alloy composition.
	Material string `json:"material" yaml:"material"`

	// Condition is the processing condition or treatment, if reported.
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`

	// PropertyName names the mechanical property (e.g. "yield strength").
	PropertyName string `json:"property_name" yaml:"property_name"`

	// Value is the numerical value of the property.
	Value float64 `json:"value" yaml:"value"`

	// Unit is the unit of measurement (e.g. "MPa", "HV").
	Unit string `json:"unit" yaml:"unit"`

	// Temperature is the test temperature, if reported.
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`

	// TemperatureUnit is the unit of Temperature.
	TemperatureUnit string `json:"temperature_unit,omitempty" yaml:"temperature_unit,omitempty"`

	// StrainRate is the strain rate, if reported.
	StrainRate *float64 `json:"strain_rate,omitempty" yaml:"strain_rate,omitempty"`

	// AdditionalInfo carries any other reported parameters.
	AdditionalInfo map[string]any `json:"additional_info" yaml:"additional_info"`
}

// Validate checks the required fields. A record that fails validation is
// dropped by the extractor; the batch continues.
func (p MechanicalProperty) Validate() error {
	if p.Material == "" {
		return fmt.Errorf("missing material")
	}
	if p.PropertyName == "" {
		return fmt.Errorf("missing property_name")
	}
	if p.Unit == "" {
		return fmt.Errorf("missing unit")
	}
	return nil
}
