package decider

import (
	"strconv"
	"strings"

	"github.com/grailbio/hts/sam"
	"gopkg.in/guregu/null.v3"
)

// GATK downsampling types.
const (
	DownsampleNone     = "NONE"
	DownsampleAllReads = "ALL_READS"
	DownsampleBySample = "BY_SAMPLE"
)

// TargetedSequencing is the library template type for which downsampling
// is always disabled.
const TargetedSequencing = "TS"

// Opts holds the decider options, as given on the command line.
type Opts struct {
	// LibraryTemplateType restricts processing to one template type, e.g.
	// WG, EX or TS. Empty means no restriction.
	LibraryTemplateType string
	// TissueTypes is a comma-separated allow-list of tissue types, e.g.
	// "P,R". Empty means no restriction.
	TissueTypes string

	// GroupByAligner, UseTissuePrep and UseTissueRegion append the
	// corresponding attribute to the grouping key.
	GroupByAligner  bool
	UseTissuePrep   bool
	UseTissueRegion bool

	DoFilter      bool
	SamFilterFlag int
	MinMapQuality null.Int
	// DoMarkDuplicates is only consulted when DoRemoveDuplicates is false:
	// removing duplicates implies marking them.
	DoMarkDuplicates   bool
	DoRemoveDuplicates bool
	DoSplitTrim        bool
	DisableBQSR        bool

	// ChrSizes is a comma-separated list of intervals used to parallelize
	// realignment and variant calling.
	ChrSizes        string
	IntervalPadding int
	StandEmitConf   float64
	StandCallConf   float64
	// Downsampling is "true", "false" (case-insensitive) or empty.
	Downsampling string
	DBSNP        string
	Queue        null.String

	// Verbose logs every group and its files.
	Verbose bool
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	GroupByAligner:     true,
	DoFilter:           true,
	SamFilterFlag:      int(sam.Unmapped | sam.Secondary), // 260
	DoMarkDuplicates:   true,
	DoRemoveDuplicates: true,
	IntervalPadding:    100,
	StandEmitConf:      1,
	StandCallConf:      30,
}

// Settings are the resolved workflow options that are passed through to
// every workflow run.
type Settings struct {
	MarkDuplicates   bool
	RemoveDuplicates bool
	SplitTrim        bool
	SamFilter        bool
	SamFilterFlag    sam.Flags
	MinMapQuality    null.Int
	BQSR             bool
	IntervalPadding  int
	StandEmitConf    float64
	StandCallConf    float64
	ChrSizes         string
	DBSNP            string
	DownsamplingType string
	Queue            null.String
}

// TissueTypeList returns the parsed tissue-type allow-list, or nil if
// there is no restriction.
func (o *Opts) TissueTypeList() []string {
	var types []string
	for _, t := range strings.Split(o.TissueTypes, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return types
}

// Settings validates the options and resolves them into Settings.
func (o *Opts) Settings() (Settings, error) {
	s := Settings{
		RemoveDuplicates: o.DoRemoveDuplicates,
		MarkDuplicates:   o.DoMarkDuplicates || o.DoRemoveDuplicates,
		SplitTrim:        o.DoSplitTrim,
		SamFilter:        o.DoFilter,
		MinMapQuality:    o.MinMapQuality,
		BQSR:             !o.DisableBQSR,
		IntervalPadding:  o.IntervalPadding,
		StandEmitConf:    o.StandEmitConf,
		StandCallConf:    o.StandCallConf,
		ChrSizes:         o.ChrSizes,
		DBSNP:            o.DBSNP,
		Queue:            o.Queue,
	}
	switch {
	case o.Downsampling == "", strings.EqualFold(o.Downsampling, "true"):
		// Downsampling is the variant caller's default.
	case strings.EqualFold(o.Downsampling, "false"):
		s.DownsamplingType = DownsampleNone
	default:
		return Settings{}, &ConfigurationError{"downsampling", o.Downsampling, "expects true or false"}
	}
	if o.SamFilterFlag < 0 || o.SamFilterFlag >= int(sam.Supplementary)<<1 {
		return Settings{}, &ConfigurationError{"sam-filter-flag", strconv.Itoa(o.SamFilterFlag),
			"not a combination of SAM flag bits"}
	}
	s.SamFilterFlag = sam.Flags(o.SamFilterFlag)
	if o.MinMapQuality.Valid && o.MinMapQuality.Int64 < 0 {
		return Settings{}, &ConfigurationError{"min-map-quality", strconv.FormatInt(o.MinMapQuality.Int64, 10),
			"must not be negative"}
	}
	if o.IntervalPadding < 0 {
		return Settings{}, &ConfigurationError{"interval-padding", strconv.Itoa(o.IntervalPadding),
			"must not be negative"}
	}
	return s, nil
}

// formatConf renders a confidence threshold the way the workflow expects
// it: integral values keep a trailing ".0".
func formatConf(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// Properties returns the workflow properties derived from the settings,
// in emission order.
func (s Settings) Properties() Properties {
	var p Properties
	p.Add("do_mark_duplicates", strconv.FormatBool(s.MarkDuplicates))
	p.Add("do_remove_duplicates", strconv.FormatBool(s.RemoveDuplicates))
	p.Add("do_split_trim_reassign_quality", strconv.FormatBool(s.SplitTrim))
	p.Add("do_sam_filter", strconv.FormatBool(s.SamFilter))
	p.Add("samtools_filter_flag", strconv.Itoa(int(s.SamFilterFlag)))
	p.Add("stand-emit-conf", formatConf(s.StandEmitConf))
	p.Add("stand-call-conf", formatConf(s.StandCallConf))
	p.Add("do_bqsr", strconv.FormatBool(s.BQSR))
	p.Add("interval-padding", strconv.Itoa(s.IntervalPadding))
	if s.ChrSizes != "" {
		p.Add("chr_sizes", s.ChrSizes)
	}
	if s.DBSNP != "" {
		p.Add("gatk_dbsnp_vcf", s.DBSNP)
	}
	if s.MinMapQuality.Valid {
		p.Add("samtools_min_map_quality", strconv.FormatInt(s.MinMapQuality.Int64, 10))
	}
	if s.DownsamplingType != "" {
		p.Add("downsampling_type", s.DownsamplingType)
	}
	if s.Queue.Valid {
		p.Add("queue", s.Queue.String)
	} else {
		p.Add("queue", " ")
	}
	return p
}
