/*
Package lsmtree provides the on-disk read-path primitives of a
log-structured merge-tree storage engine: the sorted block format, the
sorted-string-table (SST) builder and iterator, and the k-way merge
iterator that unifies multiple ordered sources into one sorted stream.

These primitives define the engine's durable binary format and the
seek/scan algorithms every read executes; the memtable, write-ahead
log, compaction scheduler, and version manifest that would sit above
them are out of scope here and are referenced only through the
contracts their readers would need (an io-backed filesystem seam, an
optional block cache, a reserved bloom-filter slot).

# Layout

  - internal/block  — the Block format, its Builder, and its forward Iterator.
  - internal/sst     — the Builder and Table/Iterator that compose blocks
    into an immutable, seekable file.
  - internal/merge   — the k-way Iterator that merges several ordered
    Sources, breaking ties by source priority.
  - internal/cache   — the optional LRU block cache sst.Table consults.
  - internal/vfs     — the filesystem seam sst reads and writes through.
  - internal/bloom   — the reserved, opt-in bloom filter an sst.Table may
    carry; never populated or consulted by the core read path.

# Concurrency

Blocks and SSTs are immutable once built, so multiple Iterators over
the same Table may run concurrently on separate goroutines. A single
Iterator instance is not safe for concurrent use by more than one
goroutine at a time, since its cursor is unsynchronized. A cache.Cache,
by contrast, synchronizes its own state and may be shared freely.
*/
package lsmtree
