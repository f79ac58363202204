package persistence

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/thekorn/fastfilter-search/layeredfilter"
)

// SaveToFile writes lf to dir/filename using a temp-file-then-rename
// sequence, so a reader opening the path mid-write never observes a torn
// file (spec §5). This is stronger than the teacher's bucketteer.Seal,
// which truncates and overwrites the destination file in place: that's
// safe there because a bucketteer file is written once and never touched
// again, but insufficient here, where a rebuild may overwrite an index
// still being served.
func SaveToFile(lf *layeredfilter.LayeredFilter, dir, filename string) error {
	tmp := filepath.Join(dir, filename+".tmp-"+uuid.NewString())
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("persistence: create temp file: %w", err)
	}
	if err := Save(lf, f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("persistence: write: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("persistence: sync: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("persistence: close: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(dir, filename)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("persistence: rename: %w", err)
	}
	return nil
}

// LoadFromFile reads a LayeredFilter previously written by SaveToFile.
func LoadFromFile(dir, filename string, opts layeredfilter.Options) (*layeredfilter.LayeredFilter, error) {
	f, err := os.Open(filepath.Join(dir, filename))
	if err != nil {
		return nil, fmt.Errorf("persistence: open: %w", err)
	}
	defer f.Close()
	return Load(f, opts)
}
