// Package classifier refines the size-bucketed candidate population
// into content-equivalence classes. Each bucket is partitioned with a
// three-tier test ordered by I/O cost: partial checksum, full
// checksum, then an exact byte comparison. Checksums only ever prove
// inequality; equality is always confirmed byte by byte.
package classifier

import (
	"context"
	"os"

	"dupesweep/config"
	"dupesweep/store"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"
)

// partialSize is the fingerprint prefix length and the chunk size for
// full reads and byte comparison.
const partialSize = 1024

type Classifier struct {
	cfg     *config.Config
	store   *store.Store
	limiter *rate.Limiter
	bar     *progressbar.ProgressBar
}

func New(cfg *config.Config, st *store.Store) *Classifier {
	c := &Classifier{cfg: cfg, store: st}
	if cfg.MaxIOPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.MaxIOPerSecond), cfg.MaxIOPerSecond)
	}
	c.bar = progressbar.NewOptions(st.FileCount(),
		progressbar.OptionSetDescription("Classifying"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetVisibility(!cfg.Quiet),
	)
	return c
}

// Run replaces every bucket's contents with its partition into classes
// of two or more byte-identical files. Buckets holding a single group
// cannot contain duplicates and are dropped without any reads.
func (c *Classifier) Run() {
	for _, size := range c.store.Sizes() {
		groups := c.store.Bucket(size)
		if len(groups) <= 1 {
			c.advance(countFiles(groups))
			c.store.Replace(size, nil)
			continue
		}
		c.store.Replace(size, c.refineBucket(groups))
	}
	_ = c.bar.Clear()
}

// refineBucket partitions one bucket. The head group absorbs every
// remaining group whose representative matches its own; non-matching
// groups carry over to the next pass. Each pass removes at least the
// head, so the loop terminates in at most len(queue) passes.
func (c *Classifier) refineBucket(queue []*store.Group) []*store.Group {
	var out []*store.Group
	for len(queue) > 0 {
		head := queue[0]
		rep := head.Head()
		var next []*store.Group
		for _, g := range queue[1:] {
			if c.match(rep, g.Head()) {
				head.Absorb(g)
			} else {
				next = append(next, g)
			}
		}
		c.advance(head.Len())
		if head.Len() >= 2 {
			out = append(out, head)
		}
		queue = next
	}
	return out
}

// match reports whether the files behind a and b are byte-identical.
// Any I/O failure along the way counts as a mismatch.
func (c *Classifier) match(a, b *store.FileRecord) bool {
	if a.Size == 0 {
		// All empty files are content-equal; nothing to read.
		return true
	}
	if !c.partialCRC(a) || !c.partialCRC(b) {
		return false
	}
	if a.CRCPartial.Sum != b.CRCPartial.Sum {
		return false
	}
	if !c.fullCRC(a) || !c.fullCRC(b) {
		return false
	}
	if a.CRCFull.Sum != b.CRCFull.Sum {
		return false
	}
	return c.byteMatch(a, b)
}

func (c *Classifier) advance(n int) {
	_ = c.bar.Add(n)
}

func (c *Classifier) throttle() {
	if c.limiter != nil {
		_ = c.limiter.Wait(context.Background())
	}
}

func countFiles(groups []*store.Group) int {
	n := 0
	for _, g := range groups {
		n += g.Len()
	}
	return n
}
