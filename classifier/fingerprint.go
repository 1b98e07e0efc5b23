package classifier

import (
	"bytes"
	"io"
	"os"

	"dupesweep/checksum"
	"dupesweep/logger"
	"dupesweep/store"
)

// partialCRC ensures f's partial fingerprint is cached, reading the
// first min(size, 1 KiB) bytes. When the whole file fits in the prefix
// the full fingerprint is the same value and is cached too. Returns
// false and leaves both fingerprints unset on any I/O failure.
func (c *Classifier) partialCRC(f *store.FileRecord) bool {
	if f.CRCPartial.Valid {
		return true
	}
	c.throttle()
	fp, err := os.Open(f.Path)
	if err != nil {
		logger.Warnf("failed to open %s: %v", f.Path, err)
		return false
	}
	defer fp.Close()

	sum, ok := c.checksumPrefix(fp, f.Path, min(f.Size, partialSize))
	if !ok {
		return false
	}
	f.CRCPartial = store.Checksum{Sum: sum, Valid: true}
	if f.Size <= partialSize {
		f.CRCFull = f.CRCPartial
	}
	return true
}

// fullCRC ensures f's full fingerprint is cached, streaming the whole
// file in chunks.
func (c *Classifier) fullCRC(f *store.FileRecord) bool {
	if f.CRCFull.Valid {
		return true
	}
	c.throttle()
	fp, err := os.Open(f.Path)
	if err != nil {
		logger.Warnf("failed to open %s: %v", f.Path, err)
		return false
	}
	defer fp.Close()

	sum, ok := c.checksumPrefix(fp, f.Path, f.Size)
	if !ok {
		return false
	}
	f.CRCFull = store.Checksum{Sum: sum, Valid: true}
	return true
}

// checksumPrefix chains the checksum over exactly length bytes of r.
// A short file or read error yields no checksum at all.
func (c *Classifier) checksumPrefix(r io.Reader, path string, length int64) (uint32, bool) {
	var sum uint32
	buf := make([]byte, partialSize)
	for left := length; left > 0; {
		n, err := r.Read(buf[:min(left, partialSize)])
		if n <= 0 {
			logger.Warnf("failed to read last %d bytes of %s: %v", left, path, err)
			return 0, false
		}
		sum = checksum.Update(sum, buf[:n])
		left -= int64(n)
	}
	return sum, true
}

// byteMatch streams both files in lockstep and reports whether exactly
// a.Size bytes were read from each with every chunk identical.
func (c *Classifier) byteMatch(a, b *store.FileRecord) bool {
	c.throttle()
	fa, err := os.Open(a.Path)
	if err != nil {
		logger.Warnf("failed to open %s: %v", a.Path, err)
		return false
	}
	defer fa.Close()
	c.throttle()
	fb, err := os.Open(b.Path)
	if err != nil {
		logger.Warnf("failed to open %s: %v", b.Path, err)
		return false
	}
	defer fb.Close()

	bufA := make([]byte, partialSize)
	bufB := make([]byte, partialSize)
	for left := a.Size; left > 0; {
		want := min(left, partialSize)
		if _, err := io.ReadFull(fa, bufA[:want]); err != nil {
			logger.Warnf("failed to read %s: %v", a.Path, err)
			return false
		}
		if _, err := io.ReadFull(fb, bufB[:want]); err != nil {
			logger.Warnf("failed to read %s: %v", b.Path, err)
			return false
		}
		if !bytes.Equal(bufA[:want], bufB[:want]) {
			return false
		}
		left -= want
	}
	return true
}
