package report

import (
	"io"
	"os"
	"time"

	"dupesweep/logger"
	"dupesweep/store"

	"github.com/djherbis/times"
	"github.com/h2non/filetype"
)

// Dump writes the refined store to the error channel at debug level,
// one line per record, enriched with timestamps and detected type.
func Dump(st *store.Store) {
	if !logger.IsDebug() {
		return
	}
	groupID := 0
	for _, size := range st.Sizes() {
		for _, g := range st.Bucket(size) {
			groupID++
			for _, f := range g.Files {
				logger.Debugf("group=%d path=%q size=%d ro=%c mtime=%s atime=%s type=%s",
					groupID, f.Path, f.Size, roMark(f),
					f.ModTime.Format(time.RFC3339),
					accessTime(f.Path),
					mimeType(f.Path))
			}
		}
	}
}

func accessTime(path string) string {
	ts, err := times.Stat(path)
	if err != nil {
		return ""
	}
	return ts.AccessTime().Format(time.RFC3339)
}

func mimeType(path string) string {
	fp, err := os.Open(path)
	if err != nil {
		return "unknown"
	}
	defer fp.Close()

	buf := make([]byte, 261)
	n, err := fp.Read(buf)
	if err != nil && err != io.EOF {
		return "unknown"
	}
	kind, err := filetype.Match(buf[:n])
	if err != nil || kind == filetype.Unknown || kind.MIME.Value == "" {
		return "unknown"
	}
	return kind.MIME.Value
}
