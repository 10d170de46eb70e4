// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mechprops/pkg/types"
)

// DefaultPapers is the built-in paper list used when no paper-list file
// is supplied.
var DefaultPapers = []types.PaperRef{
	{
		DOI:   "https://doi.org/10.3390/cryst9110586",
		Title: "Effect of ECAP on the Microstructure and Mechanical Properties of a Rolled Mg-2Y-0.6Nd-0.6Zr Magnesium Alloy",
	},
	{
		DOI:   "https://doi.org/10.3390/met14111217",
		Title: "Investigation of Mechanical Properties and Microstructural Evolution in Pure Copper with Dual Heterostructures Produced by Surface Mechanical Attrition Treatment",
	},
}

// paperFile is the on-disk shape of a paper-list file.
type paperFile struct {
	Papers []types.PaperRef `yaml:"papers"`
}

// LoadPapers reads a YAML paper-list file:
//
//	papers:
//	  - doi: 10.3390/cryst9110586
//	    title: Effect of ECAP ...
func LoadPapers(path string) ([]types.PaperRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading paper list: %w", err)
	}
	var pf paperFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing paper list %s: %w", path, err)
	}
	if len(pf.Papers) == 0 {
		return nil, fmt.Errorf("paper list %s contains no papers", path)
	}
	for i, p := range pf.Papers {
		if p.DOI == "" {
			return nil, fmt.Errorf("paper list %s: entry %d has no doi", path, i)
		}
	}
	return pf.Papers, nil
}
