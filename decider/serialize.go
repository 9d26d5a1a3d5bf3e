package decider

import (
	"sort"
	"strings"

	"github.com/grailbio/base/log"
)

// Namer computes the display name of a file's output.
type Namer interface {
	Name(f *GroupableFile) string
}

// NamerFunc adapts a function to the Namer interface.
type NamerFunc func(f *GroupableFile) string

// Name implements Namer.
func (fn NamerFunc) Name(f *GroupableFile) string { return fn(f) }

// DefaultNamer names outputs after the donor, tissue origin, tissue type,
// library template type and group id, followed by an "ius<accession>"
// token identifying the sequencing unit.
var DefaultNamer = NamerFunc(func(f *GroupableFile) string {
	t := &f.Record.Tags
	parts := []string{t.Donor, t.TissueOrigin, t.TissueType, t.LibraryTemplateType}
	if t.GroupID != "" {
		parts = append(parts, t.GroupID)
	}
	if t.IUSAccession != "" {
		parts = append(parts, "ius"+t.IUSAccession)
	}
	return strings.Join(parts, "_")
})

// IUSMapper resolves the output IUS LIMS key the workflow should attach
// outputs derived from f to.
type IUSMapper interface {
	OutputIUS(f *GroupableFile) (string, bool)
}

// IUSMap maps input IUS accessions to output IUS LIMS keys. A nil or empty
// map resolves nothing, which is the case for dry runs.
type IUSMap map[string]string

// OutputIUS implements IUSMapper.
func (m IUSMap) OutputIUS(f *GroupableFile) (string, bool) {
	k, ok := m[f.Record.Tags.IUSAccession]
	return k, ok && k != ""
}

// OutputIdentifier trims the per-unit suffix from a raw output name: if the
// name has more than five '_'-separated tokens and the last one contains
// "ius", the last token is dropped.
func OutputIdentifier(raw string) string {
	tokens := strings.Split(raw, "_")
	if len(tokens) > 5 && strings.Contains(tokens[len(tokens)-1], "ius") {
		return raw[:strings.LastIndexByte(raw, '_')]
	}
	return raw
}

// ProvenanceTag returns the provenance tag shared by all files. It returns
// an *InconsistentProvenanceError if there is more than one, and "" if
// files is empty.
func ProvenanceTag(files []*GroupableFile) (string, error) {
	seen := map[string]bool{}
	var tags []string
	for _, f := range files {
		if !seen[f.Provenance] {
			seen[f.Provenance] = true
			tags = append(tags, f.Provenance)
		}
	}
	switch len(tags) {
	case 0:
		return "", nil
	case 1:
		return tags[0], nil
	}
	sort.Strings(tags)
	return "", &InconsistentProvenanceError{Tags: tags}
}

// Output holds the serialized groups of one workflow run. All list-valued
// fields have one ';'-separated segment per group, in group key order.
type Output struct {
	AlignerName       string
	InputFiles        string
	OutputIdentifiers string
	// OutputIUSLIMSKeys is only meaningful if HasIUSLIMSKeys is set.
	OutputIUSLIMSKeys string
	HasIUSLIMSKeys    bool
	NumGroups         int
}

// Properties returns the output as workflow properties.
func (o *Output) Properties() Properties {
	var p Properties
	p.Add("aligner_name", o.AlignerName)
	p.Add("input_files", o.InputFiles)
	p.Add("output_identifiers", o.OutputIdentifiers)
	if o.HasIUSLIMSKeys {
		p.Add("output_ius_lims_keys", o.OutputIUSLIMSKeys)
	}
	return p
}

// Serialize renders the groups of table. Paths, identifiers and IUS keys
// are built with one segment per group in the same key order, so that the
// workflow can split them on ';' and associate them by position. A nil
// namer means DefaultNamer; a nil ius resolves nothing.
func Serialize(table *GroupTable, namer Namer, ius IUSMapper) (Output, error) {
	if namer == nil {
		namer = DefaultNamer
	}
	var all []*GroupableFile
	table.Do(func(_ string, files []*GroupableFile) { all = append(all, files...) })
	aligner, err := ProvenanceTag(all)
	if err != nil {
		return Output{}, err
	}

	var (
		paths   = make([]string, 0, table.Len())
		ids     = make([]string, 0, table.Len())
		iusKeys = make([]string, 0, table.Len())
	)
	anyIUSKey := false
	table.Do(func(key string, files []*GroupableFile) {
		var groupPaths, groupKeys []string
		names := map[string]bool{}
		for _, f := range files {
			groupPaths = append(groupPaths, f.Path)
			if ius != nil {
				if k, ok := ius.OutputIUS(f); ok {
					groupKeys = append(groupKeys, k)
				}
			}
			names[OutputIdentifier(namer.Name(f))] = true
		}
		paths = append(paths, strings.Join(groupPaths, ","))
		iusKeys = append(iusKeys, strings.Join(groupKeys, ","))
		if len(groupKeys) > 0 {
			anyIUSKey = true
		}

		distinct := make([]string, 0, len(names))
		for n := range names {
			distinct = append(distinct, n)
		}
		sort.Strings(distinct)
		if len(distinct) > 1 {
			log.Printf("group %s: %d output identifiers %v, using %s", key, len(distinct), distinct, distinct[0])
		}
		if len(distinct) > 0 {
			ids = append(ids, distinct[0])
		} else {
			ids = append(ids, "")
		}
	})

	return Output{
		AlignerName:       aligner,
		InputFiles:        strings.Join(paths, ";"),
		OutputIdentifiers: strings.Join(ids, ";"),
		OutputIUSLIMSKeys: strings.Join(iusKeys, ";"),
		HasIUSLIMSKeys:    anyIUSKey && table.Len() > 1,
		NumGroups:         table.Len(),
	}, nil
}
