// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeProperties_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"bare array", `[{"material": "Cu"}, {"material": "Mg"}]`, 2},
		{"properties key", `{"properties": [{"material": "Cu"}]}`, 1},
		{"data key", `{"data": [{"material": "Cu"}, {"material": "Al"}, {"material": "Ti"}]}`, 3},
		{"first array value", `{"results": [{"material": "Cu"}]}`, 1},
		{"no array anywhere", `{"note": "no tables found"}`, 0},
		{"empty array", `[]`, 0},
		{"scalar elements skipped", `[1, "x", {"material": "Cu"}]`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := DecodeProperties(tt.content)
			require.NoError(t, err)
			assert.Len(t, records, tt.want)
		})
	}
}

func TestDecodeProperties_SortedKeyFallbackIsDeterministic(t *testing.T) {
	// Two array-valued keys: the lexicographically first one wins, every
	// time.
	content := `{"zebra": [{"material": "wrong"}], "alpha": [{"material": "right"}]}`
	for i := 0; i < 10; i++ {
		records, err := DecodeProperties(content)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "right", records[0]["material"])
	}
}

func TestDecodeProperties_MalformedJSONIsAnError(t *testing.T) {
	_, err := DecodeProperties(`{"properties": [`)
	assert.Error(t, err)
}

func TestCoerceRecord(t *testing.T) {
	raw := map[string]any{
		"material":         "Mg-2Y-0.6Nd-0.6Zr",
		"condition":        "  ECAP 4 passes ",
		"property_name":    "Ultimate tensile strength",
		"value":            float64(287),
		"unit":             "MPa",
		"temperature":      float64(25),
		"temperature_unit": "C",
		"strain_rate":      0.001,
		"additional_info":  map[string]any{"direction": "extrusion"},
	}

	prop, err := CoerceRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, "Mg-2Y-0.6Nd-0.6Zr", prop.Material)
	assert.Equal(t, "ECAP 4 passes", prop.Condition)
	assert.Equal(t, "Ultimate tensile strength", prop.PropertyName)
	assert.Equal(t, 287.0, prop.Value)
	assert.Equal(t, "MPa", prop.Unit)
	require.NotNil(t, prop.Temperature)
	assert.Equal(t, 25.0, *prop.Temperature)
	require.NotNil(t, prop.StrainRate)
	assert.Equal(t, 0.001, *prop.StrainRate)
	assert.Equal(t, "extrusion", prop.AdditionalInfo["direction"])
}

func TestCoerceRecord_StringValueWithThousandsSeparator(t *testing.T) {
	raw := map[string]any{
		"material":      "steel",
		"property_name": "Young's modulus",
		"value":         "1,234.5",
		"unit":          "MPa",
	}
	prop, err := CoerceRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, 1234.5, prop.Value)
}

func TestCoerceRecord_OptionalFieldsAbsent(t *testing.T) {
	raw := map[string]any{
		"material":      "Cu",
		"property_name": "hardness",
		"value":         "95",
		"unit":          "HV",
	}
	prop, err := CoerceRecord(raw)
	require.NoError(t, err)
	assert.Nil(t, prop.Temperature)
	assert.Nil(t, prop.StrainRate)
	assert.NotNil(t, prop.AdditionalInfo)
	assert.Empty(t, prop.AdditionalInfo)
}

func TestCoerceRecord_Rejections(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"non-numeric value", map[string]any{
			"material": "Cu", "property_name": "hardness", "value": "high", "unit": "HV",
		}},
		{"missing value", map[string]any{
			"material": "Cu", "property_name": "hardness", "unit": "HV",
		}},
		{"missing material", map[string]any{
			"property_name": "hardness", "value": float64(95), "unit": "HV",
		}},
		{"missing property name", map[string]any{
			"material": "Cu", "value": float64(95), "unit": "HV",
		}},
		{"missing unit", map[string]any{
			"material": "Cu", "property_name": "hardness", "value": float64(95),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CoerceRecord(tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"float", 12.5, 12.5, true},
		{"plain string", "300", 300, true},
		{"comma string", "12,345", 12345, true},
		{"empty string", "", 0, false},
		{"non-numeric string", "n/a", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toFloat(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
