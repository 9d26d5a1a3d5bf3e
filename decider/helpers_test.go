package decider

import (
	"time"

	"github.com/grailbio/bammp/provenance"
)

var t0 = time.Date(2019, 3, 1, 12, 0, 0, 0, time.UTC)

// newRecord returns a WG record of donor PCSI_0001 with one BAM, on
// RUN1 lane 1, aligned by bwaMem. mods are applied in order.
func newRecord(id, path string, ts time.Time, mods ...func(*provenance.Record)) *provenance.Record {
	rec := &provenance.Record{
		ID: id,
		Files: []provenance.File{
			{Path: path, MetaType: BAMMetaType, Timestamp: ts},
		},
		Tags: provenance.Tags{
			Donor:               "PCSI_0001",
			TissueOrigin:        "Pa",
			TissueType:          "P",
			LibraryTemplateType: "WG",
			SequencerRun:        "RUN1",
			Lane:                "1",
			Barcode:             "ACGT",
			Workflow:            "bwaMem",
			IUSAccession:        id,
			IUSLIMSKey:          "lims-" + id,
		},
	}
	for _, m := range mods {
		m(rec)
	}
	return rec
}

func lane(l string) func(*provenance.Record) {
	return func(r *provenance.Record) { r.Tags.Lane = l }
}

func donor(d string) func(*provenance.Record) {
	return func(r *provenance.Record) { r.Tags.Donor = d }
}

func groupID(g string) func(*provenance.Record) {
	return func(r *provenance.Record) { r.Tags.GroupID = g }
}

func workflow(w string) func(*provenance.Record) {
	return func(r *provenance.Record) { r.Tags.Workflow = w }
}

func templateType(tt string) func(*provenance.Record) {
	return func(r *provenance.Record) { r.Tags.LibraryTemplateType = tt }
}

func mustWrap(rec *provenance.Record, opts Opts) *GroupableFile {
	f, err := Wrap(rec, &opts)
	if err != nil {
		panic(err)
	}
	return f
}
