package sst

import (
	"fmt"
	"testing"

	"github.com/kvforge/lsmtree/internal/cache"
	"github.com/kvforge/lsmtree/internal/vfs"
)

func buildTable(t *testing.T, blockSize int, entries [][2]string, path string) *Table {
	t.Helper()
	fs := vfs.NewMemFS()
	b := NewBuilder(blockSize)
	for _, e := range entries {
		b.Add([]byte(e[0]), []byte(e[1]))
	}
	tbl, err := b.Build(1, nil, fs, path)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tbl
}

func TestTableFullScan(t *testing.T) {
	var entries [][2]string
	want := make(map[string]string)
	for i := 0; i < 1000; i++ {
		k := fmt.Sprintf("key%03d", i)
		v := reverse(k)
		entries = append(entries, [2]string{k, v})
		want[k] = v
	}

	tbl := buildTable(t, 4096, entries, "full-scan.sst")
	defer tbl.Close()

	it, err := NewIteratorAndSeekToFirst(tbl)
	if err != nil {
		t.Fatalf("NewIteratorAndSeekToFirst: %v", err)
	}

	count := 0
	for it.IsValid() {
		k := string(it.Key())
		v := string(it.Value())
		if want[k] != v {
			t.Fatalf("entry %q = %q, want %q", k, v, want[k])
		}
		count++
		if err := it.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}
	if count != len(entries) {
		t.Fatalf("scanned %d entries, want %d", count, len(entries))
	}

	it2, err := NewIteratorAndSeekToKey(tbl, []byte("key500"))
	if err != nil {
		t.Fatalf("NewIteratorAndSeekToKey: %v", err)
	}
	if !it2.IsValid() || string(it2.Key()) != "key500" {
		t.Fatalf("seek(key500) = %q, want key500", it2.Key())
	}
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func TestTableGapSeek(t *testing.T) {
	entries := [][2]string{{"aa", "1"}, {"ab", "2"}, {"cc", "3"}, {"cd", "4"}}
	tbl := buildTable(t, 24, entries, "gap.sst")
	defer tbl.Close()

	if tbl.NumBlocks() != 2 {
		t.Fatalf("expected entries split across 2 blocks, got %d", tbl.NumBlocks())
	}

	it, err := NewIteratorAndSeekToKey(tbl, []byte("b"))
	if err != nil {
		t.Fatalf("SeekToKey(b): %v", err)
	}
	if !it.IsValid() || string(it.Key()) != "cc" || string(it.Value()) != "3" {
		t.Fatalf("seek(b) landed on (%q,%q), want (cc,3)", it.Key(), it.Value())
	}
}

func TestTableSeekPastLastKeyInvalidates(t *testing.T) {
	entries := [][2]string{{"a", "1"}, {"b", "2"}}
	tbl := buildTable(t, 4096, entries, "past-last.sst")
	defer tbl.Close()

	it, err := NewIteratorAndSeekToKey(tbl, []byte("z"))
	if err != nil {
		t.Fatalf("SeekToKey(z): %v", err)
	}
	if it.IsValid() {
		t.Fatalf("seek past last key should invalidate, got key %q", it.Key())
	}
}

func TestTableSeekAtBlockBoundary(t *testing.T) {
	entries := [][2]string{{"aa", "1"}, {"ab", "2"}, {"cc", "3"}, {"cd", "4"}}
	tbl := buildTable(t, 24, entries, "boundary.sst")
	defer tbl.Close()

	it, err := NewIteratorAndSeekToKey(tbl, []byte("ab"))
	if err != nil {
		t.Fatalf("SeekToKey(ab): %v", err)
	}
	if !it.IsValid() || string(it.Key()) != "ab" {
		t.Fatalf("seek(ab) = %q, want ab (exact last key of block 0)", it.Key())
	}
}

func TestNextOnInvalidIteratorErrors(t *testing.T) {
	entries := [][2]string{{"a", "1"}}
	tbl := buildTable(t, 4096, entries, "invalid-next.sst")
	defer tbl.Close()

	it, err := NewIteratorAndSeekToKey(tbl, []byte("z"))
	if err != nil {
		t.Fatalf("SeekToKey(z): %v", err)
	}
	if it.IsValid() {
		t.Fatalf("expected invalid iterator")
	}
	if err := it.Next(); err != ErrInvalidIterator {
		t.Fatalf("Next() on invalid iterator = %v, want ErrInvalidIterator", err)
	}
}

func TestTableWithCache(t *testing.T) {
	entries := [][2]string{{"a", "1"}, {"b", "2"}, {"c", "3"}}
	fs := vfs.NewMemFS()
	b := NewBuilder(4096)
	for _, e := range entries {
		b.Add([]byte(e[0]), []byte(e[1]))
	}
	c := cache.New(1 << 20)
	tbl, err := b.Build(7, c, fs, "cached.sst")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer tbl.Close()

	it, err := NewIteratorAndSeekToFirst(tbl)
	if err != nil {
		t.Fatalf("NewIteratorAndSeekToFirst: %v", err)
	}
	if !it.IsValid() {
		t.Fatalf("expected valid iterator")
	}
	if c.Len() == 0 {
		t.Fatalf("expected the first block read to populate the cache")
	}
}

func TestBuildEmptyTableFails(t *testing.T) {
	fs := vfs.NewMemFS()
	b := NewBuilder(4096)
	if _, err := b.Build(1, nil, fs, "empty.sst"); err != ErrEmptyTable {
		t.Fatalf("Build() on empty builder = %v, want ErrEmptyTable", err)
	}
}

func TestMayContainWithoutFilter(t *testing.T) {
	tbl := buildTable(t, 4096, [][2]string{{"a", "1"}}, "maycontain.sst")
	defer tbl.Close()

	if !tbl.MayContain([]byte("anything")) {
		t.Fatalf("MayContain with no attached filter must conservatively return true")
	}
}
