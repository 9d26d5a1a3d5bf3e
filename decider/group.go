package decider

import (
	"strings"

	"github.com/biogo/store/llrb"
	"github.com/grailbio/bammp/provenance"
)

// group is a GroupTable entry.
type group struct {
	key   string
	files []*GroupableFile
}

// Compare compares two groups by key, for use in llrb.
func (g *group) Compare(c llrb.Comparable) int {
	return strings.Compare(g.key, c.(*group).key)
}

// GroupTable maps a group name to its files. Names iterate in
// lexicographic order; files within a group keep the order they were
// added in. Callers that serialize several properties from the same
// table rely on the key order to keep them aligned.
type GroupTable struct {
	tree llrb.Tree
}

// NewGroupTable returns an empty table.
func NewGroupTable() *GroupTable {
	return &GroupTable{}
}

// Add appends f to the group named key, creating it if needed.
func (t *GroupTable) Add(key string, f *GroupableFile) {
	if c := t.tree.Get(&group{key: key}); c != nil {
		g := c.(*group)
		g.files = append(g.files, f)
		return
	}
	t.tree.Insert(&group{key: key, files: []*GroupableFile{f}})
}

// Len returns the number of groups.
func (t *GroupTable) Len() int { return t.tree.Len() }

// Do calls fn for every group in key order.
func (t *GroupTable) Do(fn func(key string, files []*GroupableFile)) {
	t.tree.Do(func(c llrb.Comparable) bool {
		g := c.(*group)
		fn(g.key, g.files)
		return false
	})
}

// Keys returns the group names in order.
func (t *GroupTable) Keys() []string {
	keys := make([]string, 0, t.Len())
	t.Do(func(key string, _ []*GroupableFile) { keys = append(keys, key) })
	return keys
}

// Files returns the files of the named group, or nil.
func (t *GroupTable) Files(key string) []*GroupableFile {
	if c := t.tree.Get(&group{key: key}); c != nil {
		return c.(*group).files
	}
	return nil
}

// NumFiles returns the total number of files in all groups.
func (t *GroupTable) NumFiles() int {
	n := 0
	t.Do(func(_ string, files []*GroupableFile) { n += len(files) })
	return n
}

// GroupByFunc computes a caller-defined group name for a file. It returns
// false when the file lacks the attributes the name is built from.
type GroupByFunc func(f *GroupableFile) (string, bool)

// GroupByTags returns a GroupByFunc that names groups by the values of the
// given tags, joined with ':'. A file is only named if all tags are set.
func GroupByTags(tags ...provenance.Tag) GroupByFunc {
	return func(f *GroupableFile) (string, bool) {
		values := make([]string, len(tags))
		for i, tag := range tags {
			if values[i] = f.Record.Tags.Get(tag); values[i] == "" {
				return "", false
			}
		}
		return strings.Join(values, ":"), true
	}
}

// GroupByKey groups files by their built-in GroupKey.
func GroupByKey(files []*GroupableFile) *GroupTable {
	t := NewGroupTable()
	for _, f := range files {
		t.Add(f.GroupKey, f)
	}
	return t
}

// Partition splits files into workflow runs. If groupBy is non-nil and
// names a file, that name is used; otherwise the file's GroupKey.
func Partition(files []*GroupableFile, groupBy GroupByFunc) *GroupTable {
	t := NewGroupTable()
	for _, f := range files {
		key := f.GroupKey
		if groupBy != nil {
			if k, ok := groupBy(f); ok {
				key = k
			}
		}
		t.Add(key, f)
	}
	return t
}
