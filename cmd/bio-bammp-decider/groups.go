package main

import (
	"io"
	"time"

	"github.com/grailbio/base/tsv"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bammp/decider"
)

// writeGroups writes one line per selected file: run, group, file id,
// timestamp, workflow and path.
func writeGroups(w io.Writer, runs []decider.Run) error {
	out := tsv.NewWriter(w)
	out.WriteString("RUN\tGROUP\tFILE\tTIMESTAMP\tWORKFLOW\tPATH")
	if err := out.EndLine(); err != nil {
		return err
	}
	for _, r := range runs {
		decider.GroupByKey(r.Files).Do(func(key string, files []*decider.GroupableFile) {
			for _, f := range files {
				out.WriteString(r.Key)
				out.WriteString(key)
				out.WriteString(f.ID)
				out.WriteString(f.Timestamp.UTC().Format(time.RFC3339))
				out.WriteString(f.Provenance)
				out.WriteString(f.Path)
				out.EndLine() // nolint: errcheck
			}
		})
	}
	return out.Flush()
}

func groups(stdout io.Writer, flags *deciderFlags, reportPath string) error {
	runs, err := selectRuns(vcontext.Background(), flags, reportPath, nil)
	if err != nil {
		return err
	}
	return writeGroups(stdout, runs)
}
