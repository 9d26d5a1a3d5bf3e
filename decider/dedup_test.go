package decider

import (
	"testing"
	"time"

	"github.com/grailbio/testutil/expect"
)

func TestDedupKeepsNewest(t *testing.T) {
	old := mustWrap(newRecord("1", "/old.bam", t0), DefaultOpts)
	newer := mustWrap(newRecord("2", "/new.bam", t0.Add(time.Hour)), DefaultOpts)
	oldest := mustWrap(newRecord("3", "/oldest.bam", t0.Add(-time.Hour)), DefaultOpts)

	for _, order := range [][]*GroupableFile{
		{old, newer, oldest},
		{oldest, newer, old},
		{newer, old, oldest},
	} {
		table := Dedup(order)
		expect.EQ(t, table.Len(), 1)
		expect.EQ(t, table.Get(old.DedupKey).Path, "/new.bam")
	}
}

func TestDedupTieKeepsFirst(t *testing.T) {
	a := mustWrap(newRecord("1", "/a.bam", t0), DefaultOpts)
	b := mustWrap(newRecord("2", "/b.bam", t0), DefaultOpts)

	table := NewDedupTable()
	expect.True(t, table.Add(a))
	expect.False(t, table.Add(b))
	expect.EQ(t, table.Get(a.DedupKey).ID, "1")

	table = Dedup([]*GroupableFile{b, a})
	expect.EQ(t, table.Get(a.DedupKey).ID, "2")
}

func TestDedupDistinctUnits(t *testing.T) {
	var files []*GroupableFile
	for i, l := range []string{"3", "1", "2", "1"} {
		ts := t0.Add(time.Duration(i) * time.Minute)
		files = append(files, mustWrap(newRecord(l+"-"+ts.Format("0405"), "/lane"+l+".bam", ts, lane(l)), DefaultOpts))
	}
	// Metatype is part of the key.
	cram := newRecord("cram", "/lane1.cram", t0, lane("1"))
	cram.Files[0].MetaType = "application/cram"
	files = append(files, &GroupableFile{ID: "cram", Path: "/lane1.cram", DedupKey: DedupKey(&cram.Tags, "application/cram"), Record: cram})

	table := Dedup(files)
	expect.EQ(t, table.Len(), 4)
	var keys, paths []string
	for _, f := range table.Files() {
		keys = append(keys, f.DedupKey)
		paths = append(paths, f.Path)
	}
	// First-insertion order of keys, newest file per key.
	expect.EQ(t, keys, []string{
		"RUN1|3|ACGT|application/bam",
		"RUN1|1|ACGT|application/bam",
		"RUN1|2|ACGT|application/bam",
		"RUN1|1|ACGT|application/cram",
	})
	expect.EQ(t, paths, []string{"/lane3.bam", "/lane1.bam", "/lane2.bam", "/lane1.cram"})
	expect.EQ(t, table.Get("RUN1|1|ACGT|application/bam").Timestamp, t0.Add(3*time.Minute))
	expect.True(t, table.Get("RUN9|1|ACGT|application/bam") == nil)
}
