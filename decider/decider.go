package decider

import (
	"sort"
	"strings"

	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bammp/provenance"
)

// BuildFunc renders the properties of one workflow run from its files and
// the finalized settings.
type BuildFunc func(files []*GroupableFile, s Settings) (Properties, error)

// FinalizeFunc adjusts the settings once filtering and grouping are done,
// using what was observed while filtering.
type FinalizeFunc func(s Settings, ctx RunContext) Settings

// Finalize disables downsampling for targeted sequencing runs.
func Finalize(s Settings, ctx RunContext) Settings {
	if ctx.TemplateType == TargetedSequencing {
		s.DownsamplingType = DownsampleNone
	}
	return s
}

// BuildProperties returns a BuildFunc that groups a run's files by
// GroupKey, serializes them with the given collaborators and appends the
// settings.
func BuildProperties(namer Namer, ius IUSMapper) BuildFunc {
	return func(files []*GroupableFile, s Settings) (Properties, error) {
		out, err := Serialize(GroupByKey(files), namer, ius)
		if err != nil {
			return nil, err
		}
		return append(out.Properties(), s.Properties()...), nil
	}
}

// Run is one workflow run chosen by the decider.
type Run struct {
	// Key is the name the files were partitioned under.
	Key        string
	Files      []*GroupableFile
	Properties Properties
}

// Fingerprint identifies the set of input files of the run, independent of
// their order. Two runs over the same files have the same fingerprint.
func (r *Run) Fingerprint() uint64 {
	ids := make([]string, len(r.Files))
	for i, f := range r.Files {
		ids[i] = f.ID
	}
	sort.Strings(ids)
	return farm.Fingerprint64([]byte(strings.Join(ids, ",")))
}

// Driver runs the selection pipeline: filter, wrap, deduplicate,
// partition, finalize and build. Its strategies are plain functions, so
// variants of the decider are built by swapping them. A Driver holds no
// per-run state and may be used concurrently.
type Driver struct {
	Opts     Opts
	Filter   FilterFunc
	GroupBy  GroupByFunc
	Finalize FinalizeFunc
	Build    BuildFunc
}

// New returns a Driver for merging BAMs with the given options. GroupBy is
// left nil; set it to override the built-in grouping.
func New(opts Opts, namer Namer, ius IUSMapper) *Driver {
	return &Driver{
		Opts:     opts,
		Filter:   NewFilter(&opts),
		Finalize: Finalize,
		Build:    BuildProperties(namer, ius),
	}
}

// Select filters, wraps and deduplicates records. Malformed records are
// logged and skipped.
func (d *Driver) Select(records []*provenance.Record) (*DedupTable, RunContext, error) {
	var ctx RunContext
	table := NewDedupTable()
	for _, rec := range records {
		if r := d.Filter(rec); r != Accepted {
			log.Debug.Printf("record %s: rejected: %v", rec.ID, r)
			continue
		}
		f, err := Wrap(rec, &d.Opts)
		if err != nil {
			log.Error.Printf("skipping %v", err)
			continue
		}
		if err := ctx.observe(rec); err != nil {
			return nil, RunContext{}, err
		}
		table.Add(f)
	}
	return table, ctx, nil
}

// Run selects the records and returns one Run per partition, in key
// order. On error no runs are returned.
func (d *Driver) Run(records []*provenance.Record) ([]Run, error) {
	settings, err := d.Opts.Settings()
	if err != nil {
		return nil, err
	}
	log.Debug.Printf("samtools filter flag %d (%v)", settings.SamFilterFlag, settings.SamFilterFlag)
	table, ctx, err := d.Select(records)
	if err != nil {
		return nil, err
	}
	files := table.Files()
	if _, err := ProvenanceTag(files); err != nil {
		return nil, err
	}

	parts := Partition(files, d.GroupBy)
	groupBy := "default"
	if d.GroupBy != nil {
		groupBy = "custom"
	}
	log.Printf("group by = [%s], input file count = [%d], group count = [%d], grouped file count = [%d]",
		groupBy, len(records), parts.Len(), parts.NumFiles())
	if d.Opts.Verbose {
		parts.Do(func(key string, files []*GroupableFile) {
			lines := make([]string, len(files))
			for i, f := range files {
				lines[i] = f.GroupKey + " -> " + f.Path
			}
			log.Printf("group = %s\n%s", key, strings.Join(lines, "\n"))
		})
	}

	if d.Finalize != nil {
		settings = d.Finalize(settings, ctx)
	}
	runs := make([]Run, 0, parts.Len())
	parts.Do(func(key string, files []*GroupableFile) {
		if err != nil {
			return
		}
		var props Properties
		if props, err = d.Build(files, settings); err != nil {
			return
		}
		runs = append(runs, Run{Key: key, Files: files, Properties: props})
	})
	if err != nil {
		return nil, err
	}
	return runs, nil
}
