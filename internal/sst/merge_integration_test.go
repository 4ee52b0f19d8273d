package sst

import (
	"testing"

	"github.com/kvforge/lsmtree/internal/merge"
)

// TestMergeAcrossTablesViaAsSource builds two tables representing
// differently-aged flushes of the same key range and merges their
// iterators through AsSource, mirroring how a read path stitches
// several on-disk sources into one ordered stream. The newer table is
// given higher priority (lower index) and must win on overlapping
// keys.
func TestMergeAcrossTablesViaAsSource(t *testing.T) {
	older := buildTable(t, 4096, [][2]string{
		{"a", "older-a"},
		{"b", "older-b"},
		{"d", "older-d"},
	}, "older.sst")
	defer older.Close()

	newer := buildTable(t, 4096, [][2]string{
		{"b", "newer-b"},
		{"c", "newer-c"},
	}, "newer.sst")
	defer newer.Close()

	olderIt, err := NewIteratorAndSeekToFirst(older)
	if err != nil {
		t.Fatalf("NewIteratorAndSeekToFirst(older): %v", err)
	}
	newerIt, err := NewIteratorAndSeekToFirst(newer)
	if err != nil {
		t.Fatalf("NewIteratorAndSeekToFirst(newer): %v", err)
	}

	mi := merge.NewIterator([]merge.Source{
		AsSource{It: newerIt},
		AsSource{It: olderIt},
	})

	want := []struct{ key, value string }{
		{"a", "older-a"},
		{"b", "newer-b"},
		{"c", "newer-c"},
		{"d", "older-d"},
	}
	var got []struct{ key, value string }
	for mi.IsValid() {
		got = append(got, struct{ key, value string }{string(mi.Key()), string(mi.Value())})
		if err := mi.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}
	if err := mi.Error(); err != nil {
		t.Fatalf("merge iterator error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
