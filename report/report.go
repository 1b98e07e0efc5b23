// Package report consumes the refined store: it prints duplicate
// groups, summarizes them, or deletes redundant copies under the
// read-only preservation policy.
package report

import (
	"fmt"
	"io"

	"dupesweep/config"
	"dupesweep/store"
)

func roMark(f *store.FileRecord) byte {
	if f.ReadOnly {
		return 'R'
	}
	return 'W'
}

func plural(n int64) string {
	if n != 1 {
		return "s"
	}
	return ""
}

// Print writes every duplicate group to w, largest size first. Each
// file carries its read-only marker; -1 packs a group onto one line.
func Print(cfg *config.Config, st *store.Store, w io.Writer) {
	for _, size := range st.Sizes() {
		for _, g := range st.Bucket(size) {
			if cfg.ShowSize {
				fmt.Fprintf(w, "%d byte%s each:\n", size, plural(size))
			}
			files := g.Files
			if cfg.OmitFirst && len(files) > 0 {
				files = files[1:]
			}
			sep := byte('\n')
			if cfg.SameLine {
				sep = ' '
			}
			for _, f := range files {
				fmt.Fprintf(w, "%s (%c)%c", f.Path, roMark(f), sep)
			}
			fmt.Fprintln(w)
		}
	}
}

// Summarize writes the duplicate totals: sets, files, and bytes
// occupied across all group members.
func Summarize(st *store.Store, w io.Writer) {
	numSets := 0
	numFiles := 0
	var numBytes float64
	for _, size := range st.Sizes() {
		for _, g := range st.Bucket(size) {
			numSets++
			numFiles += g.Len()
			numBytes += float64(size) * float64(g.Len())
		}
	}
	switch {
	case numSets == 0:
		fmt.Fprintf(w, "No duplicates found.\n\n")
	case numBytes < 1024.0:
		fmt.Fprintf(w, "%d duplicate files (in %d sets), occupying %.0f bytes.\n\n", numFiles, numSets, numBytes)
	case numBytes <= 1024.0*1024.0:
		fmt.Fprintf(w, "%d duplicate files (in %d sets), occupying %.1f kilobytes.\n\n", numFiles, numSets, numBytes/1024.0)
	default:
		fmt.Fprintf(w, "%d duplicate files (in %d sets), occupying %.1f megabytes.\n\n", numFiles, numSets, numBytes/(1024.0*1024.0))
	}
}
