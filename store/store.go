// Package store holds the in-memory candidate population: file records
// bucketed by size and partitioned into groups that the classifier
// refines into content-equivalence classes.
package store

import (
	"sort"
	"time"
)

// Checksum is an optional CRC-32 value. A zero sum is a legal result,
// so presence is tracked separately from the value.
type Checksum struct {
	Sum   uint32
	Valid bool
}

// FileRecord is one candidate file found by the scanner.
type FileRecord struct {
	Path     string
	Size     int64
	Device   uint64
	Inode    uint64
	ModTime  time.Time
	ReadOnly bool

	// Content fingerprints, computed lazily by the classifier.
	// CRCPartial covers the first KiB, CRCFull the whole file.
	CRCPartial Checksum
	CRCFull    Checksum
}

// Group is a non-empty run of records sharing one size. After
// classification all members additionally share identical content.
// The classifier compares against Files[0] as it stands when a pass
// starts; Absorb then places absorbed members in front of it.
type Group struct {
	Files []*FileRecord
}

func NewGroup(f *FileRecord) *Group {
	return &Group{Files: []*FileRecord{f}}
}

func (g *Group) Head() *FileRecord {
	return g.Files[0]
}

func (g *Group) Len() int {
	return len(g.Files)
}

// Absorb moves every member of other to the front of g. The absorbing
// group's previous members keep their relative order behind them.
func (g *Group) Absorb(other *Group) {
	merged := make([]*FileRecord, 0, len(other.Files)+len(g.Files))
	merged = append(merged, other.Files...)
	merged = append(merged, g.Files...)
	g.Files = merged
	other.Files = nil
}

// Store maps file sizes to the groups of that size. It is rebuilt from
// scratch on every invocation.
type Store struct {
	buckets  map[int64][]*Group
	files    int
	readOnly int
}

func New() *Store {
	return &Store{buckets: make(map[int64][]*Group)}
}

// Add inserts r as a new singleton group under its size.
func (s *Store) Add(r *FileRecord) {
	s.buckets[r.Size] = append(s.buckets[r.Size], NewGroup(r))
	s.files++
	if r.ReadOnly {
		s.readOnly++
	}
}

// Sizes returns all bucket sizes in descending order.
func (s *Store) Sizes() []int64 {
	sizes := make([]int64, 0, len(s.buckets))
	for size := range s.buckets {
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] > sizes[j] })
	return sizes
}

func (s *Store) Bucket(size int64) []*Group {
	return s.buckets[size]
}

// Replace commits a refined partition for size. An empty partition
// removes the bucket. Group order within a bucket is not preserved
// across a Replace.
func (s *Store) Replace(size int64, groups []*Group) {
	if len(groups) == 0 {
		delete(s.buckets, size)
		return
	}
	s.buckets[size] = groups
}

// FileCount is the number of records added by the scanner.
func (s *Store) FileCount() int {
	return s.files
}

// ReadOnlyCount is the number of added records flagged read-only.
func (s *Store) ReadOnlyCount() int {
	return s.readOnly
}

// GroupCount is the number of groups currently held, across all sizes.
func (s *Store) GroupCount() int {
	n := 0
	for _, groups := range s.buckets {
		n += len(groups)
	}
	return n
}
