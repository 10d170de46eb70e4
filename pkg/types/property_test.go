// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMechanicalPropertyValidate(t *testing.T) {
	valid := MechanicalProperty{Material: "Cu", PropertyName: "hardness", Value: 95, Unit: "HV"}

	tests := []struct {
		name   string
		mutate func(*MechanicalProperty)
		ok     bool
	}{
		{"valid", func(p *MechanicalProperty) {}, true},
		{"zero value allowed", func(p *MechanicalProperty) { p.Value = 0 }, true},
		{"no condition allowed", func(p *MechanicalProperty) { p.Condition = "" }, true},
		{"missing material", func(p *MechanicalProperty) { p.Material = "" }, false},
		{"missing property name", func(p *MechanicalProperty) { p.PropertyName = "" }, false},
		{"missing unit", func(p *MechanicalProperty) { p.Unit = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestMechanicalPropertyJSON_OptionalFieldsOmitted(t *testing.T) {
	p := MechanicalProperty{
		Material:       "Cu",
		PropertyName:   "hardness",
		Value:          95,
		Unit:           "HV",
		AdditionalInfo: map[string]any{},
	}
	data, err := json.Marshal(p)
	require.NoError(t, err)

	s := string(data)
	assert.NotContains(t, s, "condition")
	assert.NotContains(t, s, "temperature")
	assert.NotContains(t, s, "strain_rate")
	assert.Contains(t, s, `"additional_info":{}`)
}
