package decider

import (
	"testing"

	"github.com/grailbio/bammp/provenance"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	rec := newRecord("100", "/data/a.bam", t0, groupID("G1"))
	rec.Files = append([]provenance.File{
		{Path: "/data/a.Aligned.toTranscriptome.out.bam", MetaType: BAMMetaType, Timestamp: t0},
		{Path: "/data/a.bai", MetaType: "application/bam-index", Timestamp: t0},
	}, rec.Files...)

	f, err := Wrap(rec, &DefaultOpts)
	require.NoError(t, err)
	expect.EQ(t, f.ID, "100")
	expect.EQ(t, f.Path, "/data/a.bam")
	expect.EQ(t, f.Timestamp, t0)
	expect.EQ(t, f.DedupKey, "RUN1|1|ACGT|application/bam")
	expect.EQ(t, f.GroupKey, "PCSI_0001:WG:G1:bwaMem")
	expect.EQ(t, f.Provenance, "bwaMem")
	expect.True(t, f.Record == rec)
}

func TestWrapMissingTags(t *testing.T) {
	rec := newRecord("100", "/data/a.bam", t0, lane(""), workflow(""))
	_, err := Wrap(rec, &DefaultOpts)
	require.Error(t, err)
	merr, ok := err.(*MalformedRecordError)
	require.True(t, ok)
	expect.EQ(t, merr.RecordID, "100")
	expect.EQ(t, merr.Missing, []provenance.Tag{provenance.TagLane, provenance.TagWorkflow})
	expect.HasSubstr(t, err.Error(), "lane, workflow")

	// Tissue prep is only required when grouping by it.
	rec = newRecord("101", "/data/b.bam", t0)
	_, err = Wrap(rec, &DefaultOpts)
	expect.NoError(t, err)
	opts := DefaultOpts
	opts.UseTissuePrep = true
	_, err = Wrap(rec, &opts)
	require.Error(t, err)
	expect.EQ(t, err.(*MalformedRecordError).Missing, []provenance.Tag{provenance.TagTissuePrep})
}

func TestWrapNoGenomeBAM(t *testing.T) {
	rec := newRecord("100", "/data/a.Aligned.toTranscriptome.out.bam", t0)
	_, err := Wrap(rec, &DefaultOpts)
	require.Error(t, err)
	expect.HasSubstr(t, err.Error(), "no genome-aligned BAM")
}

func TestGroupKey(t *testing.T) {
	tags := provenance.Tags{
		Donor:               "PCSI_0001",
		LibraryTemplateType: "EX",
		GroupID:             "G7",
		Workflow:            "novoalign",
		TissuePrep:          "FFPE",
		TissueRegion:        "R2",
	}
	for _, test := range []struct {
		aligner, prep, region bool
		want                  string
	}{
		{false, false, false, "PCSI_0001:EX:G7"},
		{true, false, false, "PCSI_0001:EX:G7:novoalign"},
		{false, true, false, "PCSI_0001:EX:G7:FFPE"},
		{false, false, true, "PCSI_0001:EX:G7:R2"},
		{true, true, true, "PCSI_0001:EX:G7:novoalign:FFPE:R2"},
		{false, true, true, "PCSI_0001:EX:G7:FFPE:R2"},
	} {
		opts := Opts{GroupByAligner: test.aligner, UseTissuePrep: test.prep, UseTissueRegion: test.region}
		expect.EQ(t, GroupKey(&tags, &opts), test.want)
		// Deterministic.
		expect.EQ(t, GroupKey(&tags, &opts), GroupKey(&tags, &opts))
	}
}

func TestGroupKeyFlagIndependence(t *testing.T) {
	a := provenance.Tags{Donor: "D1", LibraryTemplateType: "WG", Workflow: "bwaMem", TissuePrep: "Fresh"}
	b := provenance.Tags{Donor: "D1", LibraryTemplateType: "WG", Workflow: "bwaMem", TissuePrep: "FFPE"}
	off := Opts{GroupByAligner: true}
	on := Opts{GroupByAligner: true, UseTissuePrep: true}
	// Tissue prep only splits groups when the flag is set.
	expect.EQ(t, GroupKey(&a, &off), GroupKey(&b, &off))
	expect.NEQ(t, GroupKey(&a, &on), GroupKey(&b, &on))
}
