package main

/*
  bio-bammp-decider selects BAM files from a file provenance report and
  writes one workflow INI per group of files to merge and preprocess.

  Example:

    bio-bammp-decider run -library-template-type=WG -tissue-type=P,R \
      -output-dir=s3://bucket/inis report.tsv.gz
*/

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"v.io/x/lib/cmdline"
)

func newCmdRun() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "run",
		Short:    "Select files and write one workflow INI per run",
		ArgsName: "report",
	}
	flags := addDeciderFlags(&cmd.Flags)
	outputDir := cmd.Flags.String("output-dir", "", "Directory to write INI files to. If empty, INIs are printed to stdout")
	dryRun := cmd.Flags.Bool("dry-run", false, "Do not resolve output IUS LIMS keys")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("run takes one report path, but got %v", argv)
		}
		return run(env.Stdout, flags, argv[0], *outputDir, *dryRun)
	})
	return cmd
}

func newCmdGroups() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "groups",
		Short:    "Print the files selected for each run and group as TSV",
		ArgsName: "report",
	}
	flags := addDeciderFlags(&cmd.Flags)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("groups takes one report path, but got %v", argv)
		}
		return groups(env.Stdout, flags, argv[0])
	})
	return cmd
}

func main() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-bammp-decider",
			Short:    "Select and group BAM files for merging and preprocessing",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdRun(),
				newCmdGroups(),
			},
		})
}
