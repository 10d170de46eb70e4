// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the domain entities shared across pipeline stages
// and the per-stage configuration structs.
package types

import "time"

// PaperRef identifies one paper in the input list: a DOI plus the title
// used for progress output and the extraction prompt.
type PaperRef struct {
	DOI   string `json:"doi" yaml:"doi"`
	Title string `json:"title" yaml:"title"`
}

// PaperMetadata holds the bibliographic record built from a Crossref work.
// Immutable once constructed; stages receive it by value.
type PaperMetadata struct {
	// DOI is the bare identifier, without the resolver prefix.
	DOI string `json:"doi" yaml:"doi"`

	// Title is the first listed title of the work.
	Title string `json:"title" yaml:"title"`

	// Authors lists author names as "<given> <family>" in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// PublicationDate is the print-publication year as a string, or
	// empty when the work record carries no print date.
	PublicationDate string `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`

	// Journal is the first container title of the work.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`
}

// ExtractedData is the complete result for one successfully processed paper.
type ExtractedData struct {
	PaperMetadata        PaperMetadata        `json:"paper_metadata" yaml:"paper_metadata"`
	MechanicalProperties []MechanicalProperty `json:"mechanical_properties" yaml:"mechanical_properties"`

	// ExtractionTimestamp is set when the record is constructed.
	ExtractionTimestamp time.Time `json:"extraction_timestamp" yaml:"extraction_timestamp"`

	// ExtractionMethod tags which extractor produced the records (e.g. "llm").
	ExtractionMethod string `json:"extraction_method" yaml:"extraction_method"`
}

// UnifiedResults is the single output document for a pipeline run.
// PapersProcessed counts only papers that completed every stage;
// TotalPropertiesExtracted is the sum of record counts across Data.
type UnifiedResults struct {
	ExtractionDate           time.Time       `json:"extraction_date"`
	PapersProcessed          int             `json:"papers_processed"`
	TotalPropertiesExtracted int             `json:"total_properties_extracted"`
	Data                     []ExtractedData `json:"data"`
}
