package decider

import (
	"github.com/grailbio/base/log"
)

// DedupTable keeps the newest GroupableFile per DedupKey. Keys are
// remembered in the order they were first added, so iteration is
// deterministic for a given input order.
type DedupTable struct {
	index map[string]int
	files []*GroupableFile
}

// NewDedupTable returns an empty table.
func NewDedupTable() *DedupTable {
	return &DedupTable{index: map[string]int{}}
}

// Add offers f to the table. f replaces the incumbent with the same key
// only if its timestamp is strictly later; on a tie the incumbent stays.
// Add reports whether f was kept.
func (t *DedupTable) Add(f *GroupableFile) bool {
	i, ok := t.index[f.DedupKey]
	if !ok {
		log.Debug.Printf("adding file %s -> %s", f.DedupKey, f.Path)
		t.index[f.DedupKey] = len(t.files)
		t.files = append(t.files, f)
		return true
	}
	old := t.files[i]
	if f.Timestamp.After(old.Timestamp) {
		log.Debug.Printf("adding file %s -> %s (%v) instead of %s (%v)",
			f.DedupKey, f.Path, f.Timestamp, old.Path, old.Timestamp)
		t.files[i] = f
		return true
	}
	log.Debug.Printf("disregarding file %s -> %s (%v): not newer than %s (%v)",
		f.DedupKey, f.Path, f.Timestamp, old.Path, old.Timestamp)
	return false
}

// Get returns the file kept for key, or nil.
func (t *DedupTable) Get(key string) *GroupableFile {
	if i, ok := t.index[key]; ok {
		return t.files[i]
	}
	return nil
}

// Len returns the number of distinct keys.
func (t *DedupTable) Len() int { return len(t.files) }

// Files returns the kept files in first-insertion order of their keys.
func (t *DedupTable) Files() []*GroupableFile {
	return append([]*GroupableFile(nil), t.files...)
}

// Dedup collapses files that share a DedupKey to the newest one.
func Dedup(files []*GroupableFile) *DedupTable {
	t := NewDedupTable()
	for _, f := range files {
		t.Add(f)
	}
	return t
}
