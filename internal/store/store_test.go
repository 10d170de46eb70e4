// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mechprops/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "archive", "mechprops.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleData() types.ExtractedData {
	temp := 25.0
	return types.ExtractedData{
		PaperMetadata: types.PaperMetadata{
			DOI:             "10.3390/cryst9110586",
			Title:           "ECAP paper",
			Authors:         []string{"Carol White", "Dave Brown"},
			PublicationDate: "2019",
			Journal:         "Crystals",
		},
		MechanicalProperties: []types.MechanicalProperty{
			{
				Material:        "Mg-2Y-0.6Nd-0.6Zr",
				Condition:       "ECAP 4 passes",
				PropertyName:    "UTS",
				Value:           287,
				Unit:            "MPa",
				Temperature:     &temp,
				TemperatureUnit: "C",
				AdditionalInfo:  map[string]any{"direction": "extrusion"},
			},
			{
				Material:       "Mg-2Y-0.6Nd-0.6Zr",
				PropertyName:   "elongation",
				Value:          12.5,
				Unit:           "%",
				AdditionalInfo: map[string]any{},
			},
		},
		ExtractionTimestamp: time.Now(),
		ExtractionMethod:    "llm",
	}
}

func TestSaveAndList(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Save(sampleData()))

	n, err := s.CountProperties()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rows, err := s.ListProperties("10.3390/cryst9110586")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "10.3390/cryst9110586", first.DOI)
	assert.Equal(t, "Mg-2Y-0.6Nd-0.6Zr", first.Material)
	assert.Equal(t, "ECAP 4 passes", first.Condition)
	assert.Equal(t, "UTS", first.PropertyName)
	assert.Equal(t, 287.0, first.Value)
	assert.Equal(t, "MPa", first.Unit)
	require.NotNil(t, first.Temperature)
	assert.Equal(t, 25.0, *first.Temperature)
	assert.Equal(t, "C", first.TemperatureUnit)
	assert.Nil(t, first.StrainRate)
	assert.Equal(t, "extrusion", first.AdditionalInfo["direction"])

	second := rows[1]
	assert.Equal(t, "elongation", second.PropertyName)
	assert.Nil(t, second.Temperature)
}

func TestSave_ResaveReplacesProperties(t *testing.T) {
	s := openTestStore(t)
	data := sampleData()
	require.NoError(t, s.Save(data))
	require.NoError(t, s.Save(data))

	n, err := s.CountProperties()
	require.NoError(t, err)
	assert.Equal(t, 2, n, "re-saving the same paper must not duplicate rows")
}

func TestListProperties_EmptyFilterListsAll(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Save(sampleData()))

	other := sampleData()
	other.PaperMetadata.DOI = "10.3390/met14111217"
	other.MechanicalProperties = other.MechanicalProperties[:1]
	require.NoError(t, s.Save(other))

	all, err := s.ListProperties("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	one, err := s.ListProperties("10.3390/met14111217")
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestListProperties_EmptyStore(t *testing.T) {
	s := openTestStore(t)
	rows, err := s.ListProperties("")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
