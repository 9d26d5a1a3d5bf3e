package decider

import (
	"fmt"
	"strings"

	"github.com/grailbio/bammp/provenance"
)

// MalformedRecordError reports a record that lacks tags required to build
// a GroupableFile. It is not fatal: the record is logged and skipped.
type MalformedRecordError struct {
	RecordID string
	Missing  []provenance.Tag
	// Reason is set when the record is unusable for a reason other than
	// missing tags.
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("record %s: %s", e.RecordID, e.Reason)
	}
	names := make([]string, len(e.Missing))
	for i, t := range e.Missing {
		names[i] = t.String()
	}
	return fmt.Sprintf("record %s: missing tags: %s", e.RecordID, strings.Join(names, ", "))
}

// ConfigurationError reports an invalid option value. It aborts the
// pipeline before any grouping takes place.
type ConfigurationError struct {
	Option string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("--%s=%q: %s", e.Option, e.Value, e.Reason)
}

// InconsistentProvenanceError reports that the surviving files were
// produced by more than one upstream processing step.
type InconsistentProvenanceError struct {
	// Tags lists the distinct provenance tags, sorted.
	Tags []string
}

func (e *InconsistentProvenanceError) Error() string {
	return fmt.Sprintf("files come from %d different workflows, expected exactly one: %s",
		len(e.Tags), strings.Join(e.Tags, ", "))
}
