// Package checksum provides the content fingerprint used during
// duplicate classification: a seed-chained CRC-32 over the IEEE 802.3
// polynomial. It is a fast inequality test, not a proof of equality.
package checksum

import "hash/crc32"

// Update extends seed with the contents of p. The zero seed starts a
// fresh computation, and Update(Update(0, a), b) equals the checksum
// of a followed by b.
func Update(seed uint32, p []byte) uint32 {
	return crc32.Update(seed, crc32.IEEETable, p)
}
