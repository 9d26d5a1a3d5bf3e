package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bammp/decider"
	"github.com/grailbio/bammp/provenance"
)

// reportIUSMapper resolves output IUS keys to the LIMS key of the input
// IUS, as recorded in the provenance report.
type reportIUSMapper struct{}

func (reportIUSMapper) OutputIUS(f *decider.GroupableFile) (string, bool) {
	k := f.Record.Tags.IUSLIMSKey
	return k, k != ""
}

// selectRuns reads the report and runs the decider over it.
func selectRuns(ctx context.Context, flags *deciderFlags, reportPath string, ius decider.IUSMapper) ([]decider.Run, error) {
	opts, groupBy, err := flags.resolve()
	if err != nil {
		return nil, err
	}
	// Reject bad options before touching the report.
	if _, err := opts.Settings(); err != nil {
		return nil, err
	}
	records, err := provenance.ReadFile(ctx, reportPath, flags.readOpts())
	if err != nil {
		return nil, errors.E(err, "reading provenance report")
	}
	d := decider.New(opts, decider.DefaultNamer, ius)
	d.GroupBy = groupBy
	return d.Run(records)
}

// iniName returns the INI file name of the i'th run.
func iniName(i int, key string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ':', '/', ' ', '\t':
			return '_'
		}
		return r
	}, key)
	return fmt.Sprintf("%03d_%s.ini", i, clean)
}

func writeINI(ctx context.Context, path string, props decider.Properties) (err error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "create", path)
	}
	defer file.CloseAndReport(ctx, out, &err)
	return props.WriteINI(out.Writer(ctx))
}

func run(stdout io.Writer, flags *deciderFlags, reportPath, outputDir string, dryRun bool) error {
	ctx := vcontext.Background()
	var ius decider.IUSMapper = reportIUSMapper{}
	if dryRun {
		ius = nil
	}
	runs, err := selectRuns(ctx, flags, reportPath, ius)
	if err != nil {
		return err
	}
	for i, r := range runs {
		if outputDir == "" {
			fmt.Fprintf(stdout, "# %s\n", r.Key) // nolint: errcheck
			if err := r.Properties.WriteINI(stdout); err != nil {
				return err
			}
			continue
		}
		path := strings.TrimSuffix(outputDir, "/") + "/" + iniName(i, r.Key)
		if err := writeINI(ctx, path, r.Properties); err != nil {
			return err
		}
		log.Printf("wrote %s: %d files, fingerprint %016x", path, len(r.Files), r.Fingerprint())
	}
	log.Printf("%d workflow runs", len(runs))
	return nil
}
