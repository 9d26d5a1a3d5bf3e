// Package provenance models the entries of a file provenance report and
// reads them from TSV.
package provenance

import (
	"time"
)

// File describes one file attached to a Record.
type File struct {
	Path      string
	MetaType  string
	Timestamp time.Time
}

// Tags holds the sample and sequencing attributes of a Record. Absent
// values are empty strings.
type Tags struct {
	Donor               string
	SampleName          string
	TissueOrigin        string
	TissueType          string
	TissuePrep          string
	TissueRegion        string
	LibraryTemplateType string
	GroupID             string

	SequencerRun string
	Lane         string
	Barcode      string

	// Workflow is the name of the processing step (usually an aligner)
	// that produced the files.
	Workflow string

	IUSAccession string
	IUSLIMSKey   string
}

// Tag names a single field of Tags.
type Tag int

const (
	TagDonor Tag = iota
	TagSampleName
	TagTissueOrigin
	TagTissueType
	TagTissuePrep
	TagTissueRegion
	TagLibraryTemplateType
	TagGroupID
	TagSequencerRun
	TagLane
	TagBarcode
	TagWorkflow
	TagIUSAccession
	TagIUSLIMSKey
)

var tagNames = [...]string{
	TagDonor:               "donor",
	TagSampleName:          "sample_name",
	TagTissueOrigin:        "tissue_origin",
	TagTissueType:          "tissue_type",
	TagTissuePrep:          "tissue_prep",
	TagTissueRegion:        "tissue_region",
	TagLibraryTemplateType: "library_template_type",
	TagGroupID:             "group_id",
	TagSequencerRun:        "sequencer_run",
	TagLane:                "lane",
	TagBarcode:             "barcode",
	TagWorkflow:            "workflow",
	TagIUSAccession:        "ius_accession",
	TagIUSLIMSKey:          "ius_lims_key",
}

func (t Tag) String() string {
	if t < 0 || int(t) >= len(tagNames) {
		return "unknown"
	}
	return tagNames[t]
}

// ParseTag returns the Tag with the given name, as printed by Tag.String.
func ParseTag(name string) (Tag, bool) {
	for i, n := range tagNames {
		if n == name {
			return Tag(i), true
		}
	}
	return 0, false
}

// Get returns the value of the given tag.
func (t *Tags) Get(tag Tag) string {
	switch tag {
	case TagDonor:
		return t.Donor
	case TagSampleName:
		return t.SampleName
	case TagTissueOrigin:
		return t.TissueOrigin
	case TagTissueType:
		return t.TissueType
	case TagTissuePrep:
		return t.TissuePrep
	case TagTissueRegion:
		return t.TissueRegion
	case TagLibraryTemplateType:
		return t.LibraryTemplateType
	case TagGroupID:
		return t.GroupID
	case TagSequencerRun:
		return t.SequencerRun
	case TagLane:
		return t.Lane
	case TagBarcode:
		return t.Barcode
	case TagWorkflow:
		return t.Workflow
	case TagIUSAccession:
		return t.IUSAccession
	case TagIUSLIMSKey:
		return t.IUSLIMSKey
	}
	return ""
}

// Missing returns the subset of tags that have no value, in argument
// order.
func (t *Tags) Missing(tags ...Tag) []Tag {
	var missing []Tag
	for _, tag := range tags {
		if t.Get(tag) == "" {
			missing = append(missing, tag)
		}
	}
	return missing
}

// Record is one candidate entry of a file provenance report: a file
// accession together with the files and tags attached to it.
type Record struct {
	ID    string
	Files []File
	Tags  Tags
}
