// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/mechprops/pkg/types"
)

// DecodeProperties parses the model's JSON output into raw records.
// Models wrap the array inconsistently, so several shapes are accepted:
// a bare array, an object with a "properties" or "data" key, or, as a
// last resort, the first array-valued field in sorted key order (Go
// maps carry no document order). Any other shape yields an empty slice
// and no error. Malformed JSON is an error so the caller can retry.
func DecodeProperties(content string) ([]map[string]any, error) {
	var doc any
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("parsing model response: %w", err)
	}

	switch v := doc.(type) {
	case []any:
		return toRecords(v), nil
	case map[string]any:
		if arr, ok := v["properties"].([]any); ok {
			return toRecords(arr), nil
		}
		if arr, ok := v["data"].([]any); ok {
			return toRecords(arr), nil
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if arr, ok := v[k].([]any); ok {
				return toRecords(arr), nil
			}
		}
	}
	return []map[string]any{}, nil
}

// toRecords keeps the object-shaped elements of a response array.
func toRecords(arr []any) []map[string]any {
	records := make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		if rec, ok := el.(map[string]any); ok {
			records = append(records, rec)
		}
	}
	return records
}

// CoerceRecord converts a raw record into a MechanicalProperty. String
// numerics (possibly with thousands separators) are parsed; a record
// missing a required field after coercion is rejected and the caller
// drops it.
func CoerceRecord(raw map[string]any) (types.MechanicalProperty, error) {
	prop := types.MechanicalProperty{
		Material:        stringField(raw, "material"),
		Condition:       stringField(raw, "condition"),
		PropertyName:    stringField(raw, "property_name"),
		Unit:            stringField(raw, "unit"),
		TemperatureUnit: stringField(raw, "temperature_unit"),
		AdditionalInfo:  map[string]any{},
	}

	value, ok := toFloat(raw["value"])
	if !ok {
		return types.MechanicalProperty{}, fmt.Errorf("record %v: value is not numeric", raw["value"])
	}
	prop.Value = value

	if t, ok := toFloat(raw["temperature"]); ok {
		prop.Temperature = &t
	}
	if r, ok := toFloat(raw["strain_rate"]); ok {
		prop.StrainRate = &r
	}
	if info, ok := raw["additional_info"].(map[string]any); ok {
		prop.AdditionalInfo = info
	}

	if err := prop.Validate(); err != nil {
		return types.MechanicalProperty{}, fmt.Errorf("record for %q: %w", prop.PropertyName, err)
	}
	return prop, nil
}

// stringField returns the trimmed string value of a key, or "".
func stringField(raw map[string]any, key string) string {
	if s, ok := raw[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// toFloat coerces a JSON value to a number. Strings may carry thousands
// separators ("1,234.5").
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
