package decider

import (
	"strings"

	"github.com/grailbio/bammp/provenance"
)

// Rejection is the reason a record did not pass the filter.
type Rejection int

const (
	// Accepted means the record passed.
	Accepted Rejection = iota
	RejectMetaType
	RejectTranscriptome
	RejectTissueType
	RejectTemplateType
)

func (r Rejection) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case RejectMetaType:
		return "no " + BAMMetaType + " file"
	case RejectTranscriptome:
		return "transcriptome-aligned"
	case RejectTissueType:
		return "tissue type not selected"
	case RejectTemplateType:
		return "library template type not selected"
	}
	return "unknown"
}

// FilterFunc decides whether a record takes part in grouping.
type FilterFunc func(rec *provenance.Record) Rejection

// NewFilter returns the type and provenance filter for the given options.
func NewFilter(opts *Opts) FilterFunc {
	tissueTypes := map[string]bool{}
	for _, t := range opts.TissueTypeList() {
		tissueTypes[t] = true
	}
	templateType := opts.LibraryTemplateType
	return func(rec *provenance.Record) Rejection {
		var hasBAM, hasGenome bool
		for _, f := range rec.Files {
			if f.MetaType == BAMMetaType {
				hasBAM = true
			}
			if !strings.Contains(f.Path, TranscriptomeMarker) {
				hasGenome = true
			}
		}
		switch {
		case !hasBAM:
			return RejectMetaType
		case !hasGenome:
			return RejectTranscriptome
		case len(tissueTypes) > 0 && !tissueTypes[rec.Tags.TissueType]:
			return RejectTissueType
		case templateType != "" && rec.Tags.LibraryTemplateType != templateType:
			return RejectTemplateType
		}
		return Accepted
	}
}

// RunContext carries state observed while filtering to the finalization
// step. Each pipeline run owns its own RunContext.
type RunContext struct {
	// TemplateType is the library template type shared by every accepted
	// record.
	TemplateType string
}

// observe records the template type of an accepted record. All accepted
// records of one run must share a template type.
func (c *RunContext) observe(rec *provenance.Record) error {
	tt := rec.Tags.LibraryTemplateType
	switch {
	case c.TemplateType == "":
		c.TemplateType = tt
	case c.TemplateType != tt:
		return &ConfigurationError{
			Option: "library-template-type",
			Value:  c.TemplateType + "," + tt,
			Reason: "selected files span several library template types; restrict to one",
		}
	}
	return nil
}
