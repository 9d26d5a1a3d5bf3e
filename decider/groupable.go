package decider

import (
	"strings"
	"time"

	"github.com/grailbio/bammp/provenance"
)

const (
	// BAMMetaType is the only file metatype the decider accepts.
	BAMMetaType = "application/bam"
	// TranscriptomeMarker appears in the names of BAMs aligned to
	// transcript coordinates. Those are never merged with genome BAMs.
	TranscriptomeMarker = "Aligned.toTranscriptome.out"
)

// GroupableFile is the decider's view of a single BAM attached to a
// provenance record. It is immutable once built.
type GroupableFile struct {
	ID        string
	Path      string
	MetaType  string
	Timestamp time.Time

	// DedupKey identifies the sequencing unit: sequencer run, lane,
	// barcode and metatype. Files with equal keys are reruns of the same
	// unit.
	DedupKey string
	// GroupKey names the output group the file is merged into.
	GroupKey string
	// Provenance is the workflow (aligner) that produced the file.
	Provenance string

	Record *provenance.Record
}

// requiredTags are needed by every GroupableFile.
var requiredTags = []provenance.Tag{
	provenance.TagDonor,
	provenance.TagLibraryTemplateType,
	provenance.TagSequencerRun,
	provenance.TagLane,
	provenance.TagBarcode,
	provenance.TagWorkflow,
}

// selectFile picks the file of rec the decider operates on: the first BAM
// not aligned to the transcriptome.
func selectFile(rec *provenance.Record) (provenance.File, bool) {
	for _, f := range rec.Files {
		if f.MetaType == BAMMetaType && !strings.Contains(f.Path, TranscriptomeMarker) {
			return f, true
		}
	}
	return provenance.File{}, false
}

// DedupKey returns the sequencing-unit key for the given tags and
// metatype.
func DedupKey(t *provenance.Tags, metaType string) string {
	return strings.Join([]string{t.SequencerRun, t.Lane, t.Barcode, metaType}, "|")
}

// GroupKey returns the output group name for the given tags. Donor,
// library template type and group id are always part of the key; the
// aligner, tissue prep and tissue region follow, in that order, when the
// respective option is set.
func GroupKey(t *provenance.Tags, opts *Opts) string {
	parts := []string{t.Donor, t.LibraryTemplateType, t.GroupID}
	if opts.GroupByAligner {
		parts = append(parts, t.Workflow)
	}
	if opts.UseTissuePrep {
		parts = append(parts, t.TissuePrep)
	}
	if opts.UseTissueRegion {
		parts = append(parts, t.TissueRegion)
	}
	return strings.Join(parts, ":")
}

// Wrap builds the GroupableFile of rec. It returns a
// *MalformedRecordError if rec lacks a tag needed for deduplication or
// grouping, or has no usable BAM.
func Wrap(rec *provenance.Record, opts *Opts) (*GroupableFile, error) {
	required := requiredTags
	if opts.UseTissuePrep {
		required = append(required[:len(required):len(required)], provenance.TagTissuePrep)
	}
	if opts.UseTissueRegion {
		required = append(required[:len(required):len(required)], provenance.TagTissueRegion)
	}
	if missing := rec.Tags.Missing(required...); len(missing) > 0 {
		return nil, &MalformedRecordError{RecordID: rec.ID, Missing: missing}
	}
	f, ok := selectFile(rec)
	if !ok {
		return nil, &MalformedRecordError{RecordID: rec.ID, Reason: "no genome-aligned BAM attached"}
	}
	return &GroupableFile{
		ID:         rec.ID,
		Path:       f.Path,
		MetaType:   f.MetaType,
		Timestamp:  f.Timestamp,
		DedupKey:   DedupKey(&rec.Tags, f.MetaType),
		GroupKey:   GroupKey(&rec.Tags, opts),
		Provenance: rec.Tags.Workflow,
		Record:     rec,
	}, nil
}
