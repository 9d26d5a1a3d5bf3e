package main

import (
	"flag"
	"strconv"
	"strings"

	"github.com/grailbio/bammp/decider"
	"github.com/grailbio/bammp/provenance"
	"gopkg.in/guregu/null.v3"
)

// deciderFlags holds the flag values that need parsing before they can be
// stored in decider.Opts.
type deciderFlags struct {
	opts          decider.Opts
	minMapQuality string
	queue         string
	groupBy       string
	includeSkip   bool
}

func addDeciderFlags(fs *flag.FlagSet) *deciderFlags {
	f := &deciderFlags{opts: decider.DefaultOpts}
	d := &decider.DefaultOpts
	o := &f.opts
	fs.StringVar(&o.LibraryTemplateType, "library-template-type", d.LibraryTemplateType,
		"Restrict the processing to samples of a particular template type, e.g. WG, EX, TS")
	fs.StringVar(&o.TissueTypes, "tissue-type", d.TissueTypes,
		"Restrict the processing to samples of particular tissue types, e.g. P, R, X, C. Multiple values can be comma-separated.")
	fs.BoolVar(&o.UseTissuePrep, "use-tissue-prep", d.UseTissuePrep, "Use tissue prep metadata for grouping")
	fs.BoolVar(&o.UseTissueRegion, "use-tissue-region", d.UseTissueRegion, "Use tissue region metadata for grouping")
	fs.BoolVar(&o.GroupByAligner, "group-by-aligner", d.GroupByAligner, "Group files by the aligner that produced them")
	fs.BoolVar(&o.DoFilter, "do-filter", d.DoFilter, "Filter reads out of the BAM files using -sam-filter-flag")
	fs.IntVar(&o.SamFilterFlag, "sam-filter-flag", d.SamFilterFlag,
		"The SAM flag to use to remove reads from the input BAM files. The default removes unmapped reads and non-primary alignments")
	fs.StringVar(&f.minMapQuality, "min-map-quality", "", "Remove reads with map quality less than this value, e.g. 30")
	fs.BoolVar(&o.DoMarkDuplicates, "do-mark-duplicates", d.DoMarkDuplicates,
		"Mark duplicates in the BAM files. Only used if -do-remove-duplicates=false")
	fs.BoolVar(&o.DoRemoveDuplicates, "do-remove-duplicates", d.DoRemoveDuplicates, "Remove duplicates from the BAM files")
	fs.BoolVar(&o.DoSplitTrim, "do-split-and-trim", d.DoSplitTrim, "Split reads with N in their cigar and trim them")
	fs.BoolVar(&o.DisableBQSR, "disable-bqsr", d.DisableBQSR,
		"Disable base quality score recalibration and pass indel realigned BAMs directly to variant calling")
	fs.StringVar(&o.ChrSizes, "chr-sizes", d.ChrSizes,
		"Comma separated list of chromosome intervals used to parallelize indel realigning and variant calling. Default: by chromosome")
	fs.IntVar(&o.IntervalPadding, "interval-padding", d.IntervalPadding, "Amount of padding to add to each interval, in bp")
	fs.Float64Var(&o.StandEmitConf, "stand-emit-conf", d.StandEmitConf, "Emission confidence threshold passed to GATK")
	fs.Float64Var(&o.StandCallConf, "stand-call-conf", d.StandCallConf, "Calling confidence threshold passed to GATK")
	fs.StringVar(&o.Downsampling, "downsampling", d.Downsampling,
		"Whether the variant caller should downsample reads (true or false). Default: false for TS, true otherwise")
	fs.StringVar(&o.DBSNP, "dbsnp", d.DBSNP, "Absolute path to the dbSNP VCF")
	fs.StringVar(&f.queue, "queue", "", "Override the default queue of the workflow")
	fs.BoolVar(&o.Verbose, "verbose", d.Verbose, "Log every group and its files")
	fs.StringVar(&f.groupBy, "group-by", "", `Comma-separated list of tags to partition workflow runs by, instead of
the default donor, template type and group id. Valid tags: `+strings.Join(tagNames(), ", "))
	fs.BoolVar(&f.includeSkip, "include-skipped", false, "Consider report rows marked as skipped")
	return f
}

func tagNames() []string {
	var names []string
	for t := provenance.TagDonor; t <= provenance.TagIUSLIMSKey; t++ {
		names = append(names, t.String())
	}
	return names
}

// resolve returns the decider options and the optional group-by strategy.
func (f *deciderFlags) resolve() (decider.Opts, decider.GroupByFunc, error) {
	opts := f.opts
	if f.minMapQuality != "" {
		q, err := strconv.ParseInt(f.minMapQuality, 10, 64)
		if err != nil {
			return opts, nil, &decider.ConfigurationError{Option: "min-map-quality", Value: f.minMapQuality, Reason: "not an integer"}
		}
		opts.MinMapQuality = null.IntFrom(q)
	}
	if f.queue != "" {
		opts.Queue = null.StringFrom(f.queue)
	}
	if f.groupBy == "" {
		return opts, nil, nil
	}
	var tags []provenance.Tag
	for _, name := range strings.Split(f.groupBy, ",") {
		tag, ok := provenance.ParseTag(strings.TrimSpace(name))
		if !ok {
			return opts, nil, &decider.ConfigurationError{Option: "group-by", Value: f.groupBy, Reason: "unknown tag " + name}
		}
		tags = append(tags, tag)
	}
	return opts, decider.GroupByTags(tags...), nil
}

func (f *deciderFlags) readOpts() provenance.ReadOpts {
	return provenance.ReadOpts{IncludeSkipped: f.includeSkip}
}
