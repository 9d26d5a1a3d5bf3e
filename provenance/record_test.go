package provenance

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestTagNames(t *testing.T) {
	for tag := TagDonor; tag <= TagIUSLIMSKey; tag++ {
		got, ok := ParseTag(tag.String())
		expect.True(t, ok, tag.String())
		expect.EQ(t, got, tag)
	}
	_, ok := ParseTag("colour")
	expect.False(t, ok)
	expect.EQ(t, Tag(99).String(), "unknown")
}

func TestTagsGetMissing(t *testing.T) {
	tags := Tags{Donor: "PCSI_0001", Lane: "2", Workflow: "bwaMem"}
	expect.EQ(t, tags.Get(TagDonor), "PCSI_0001")
	expect.EQ(t, tags.Get(TagLane), "2")
	expect.EQ(t, tags.Get(TagBarcode), "")
	expect.EQ(t, tags.Missing(TagDonor, TagBarcode, TagLane, TagSequencerRun),
		[]Tag{TagBarcode, TagSequencerRun})
	expect.EQ(t, len(tags.Missing(TagDonor, TagWorkflow)), 0)
}
