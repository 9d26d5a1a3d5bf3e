package provenance

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Sample attribute keys, as they appear in the "Sample Attributes" column
// of a file provenance report.
const (
	AttrTissueOrigin        = "geo_tissue_origin"
	AttrTissueType          = "geo_tissue_type"
	AttrTissuePrep          = "geo_tissue_preparation"
	AttrTissueRegion        = "geo_tissue_region"
	AttrLibraryTemplateType = "geo_library_source_template_type"
	AttrGroupID             = "geo_group_id"
)

// reportRow is one line of a file provenance report.
type reportRow struct {
	LastModified     string `tsv:"Last Modified"`
	RootSampleName   string `tsv:"Root Sample Name"`
	SampleName       string `tsv:"Sample Name"`
	SampleAttributes string `tsv:"Sample Attributes"`
	SequencerRun     string `tsv:"Sequencer Run Name"`
	Lane             string `tsv:"Lane Number"`
	IUSTag           string `tsv:"IUS Tag"`
	IUSSWID          string `tsv:"IUS SWID"`
	IUSLIMSKey       string `tsv:"IUS LIMS Key"`
	WorkflowName     string `tsv:"Workflow Name"`
	FileSWID         string `tsv:"File SWID"`
	FileMetaType     string `tsv:"File Meta-Type"`
	FilePath         string `tsv:"File Path"`
	Skip             string `tsv:"Skip"`
}

// ReadOpts controls report parsing.
type ReadOpts struct {
	// IncludeSkipped keeps rows whose Skip column is "true".
	IncludeSkipped bool
	// Location is used for timestamps that carry no zone. Defaults to UTC.
	Location *time.Location
}

// ParseAttributes parses a ';'-separated list of key=value pairs. Pairs
// without '=' are ignored.
func ParseAttributes(s string) map[string]string {
	attrs := map[string]string{}
	for _, kv := range strings.Split(s, ";") {
		i := strings.IndexByte(kv, '=')
		if i <= 0 {
			continue
		}
		attrs[strings.TrimSpace(kv[:i])] = strings.TrimSpace(kv[i+1:])
	}
	return attrs
}

func (row *reportRow) tags() Tags {
	attrs := ParseAttributes(row.SampleAttributes)
	return Tags{
		Donor:               row.RootSampleName,
		SampleName:          row.SampleName,
		TissueOrigin:        attrs[AttrTissueOrigin],
		TissueType:          attrs[AttrTissueType],
		TissuePrep:          attrs[AttrTissuePrep],
		TissueRegion:        attrs[AttrTissueRegion],
		LibraryTemplateType: attrs[AttrLibraryTemplateType],
		GroupID:             attrs[AttrGroupID],
		SequencerRun:        row.SequencerRun,
		Lane:                row.Lane,
		Barcode:             row.IUSTag,
		Workflow:            row.WorkflowName,
		IUSAccession:        row.IUSSWID,
		IUSLIMSKey:          row.IUSLIMSKey,
	}
}

// Read parses a tab-separated file provenance report with a header row.
// Rows that share a File SWID are merged into one Record; each distinct
// path becomes one File. Records are returned in order of first
// appearance.
func Read(r io.Reader, opts ReadOpts) ([]*Record, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	tr := tsv.NewReader(r)
	tr.HasHeaderRow = true
	tr.UseHeaderNames = true

	var (
		records []*Record
		byID    = map[string]*Record{}
		line    = 1
	)
	for {
		var row reportRow
		if err := tr.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrapf(err, "provenance report line %d", line+1)
		}
		line++
		if !opts.IncludeSkipped && strings.EqualFold(row.Skip, "true") {
			log.Debug.Printf("skipping file %s: marked skip", row.FileSWID)
			continue
		}
		if row.FileSWID == "" {
			return nil, errors.Errorf("provenance report line %d: empty File SWID", line)
		}
		ts, err := dateparse.ParseIn(row.LastModified, loc)
		if err != nil {
			return nil, errors.Wrapf(err, "provenance report line %d: last modified %q", line, row.LastModified)
		}
		f := File{Path: row.FilePath, MetaType: row.FileMetaType, Timestamp: ts}
		rec, ok := byID[row.FileSWID]
		if !ok {
			rec = &Record{ID: row.FileSWID, Tags: row.tags()}
			byID[row.FileSWID] = rec
			records = append(records, rec)
		}
		if !hasPath(rec.Files, f.Path) {
			rec.Files = append(rec.Files, f)
		}
	}
	return records, nil
}

func hasPath(files []File, path string) bool {
	for _, f := range files {
		if f.Path == path {
			return true
		}
	}
	return false
}

// ReadFile reads a report from a local path or any URL supported by
// github.com/grailbio/base/file. Paths ending in ".gz" are decompressed.
func ReadFile(ctx context.Context, path string, opts ReadOpts) (records []*Record, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	var r io.Reader = in.Reader(ctx)
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", path)
		}
		defer gz.Close() // nolint: errcheck
		r = gz
	}
	records, err = Read(r, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	log.Printf("read %d records from %s", len(records), path)
	return records, nil
}
