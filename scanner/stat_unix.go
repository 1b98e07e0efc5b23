//go:build !windows

package scanner

import (
	"os"
	"syscall"
)

// fileID extracts the physical identity pair from the follow-symlinks
// stat result.
func fileID(info os.FileInfo) (dev, ino uint64) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok || stat == nil {
		return 0, 0
	}
	return uint64(stat.Dev), uint64(stat.Ino)
}
