package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"dupesweep/config"
	"dupesweep/logger"
	"dupesweep/store"
)

// Delete walks the refined groups largest size first and removes
// redundant copies. Read-only files are never deleted. Without
// prompting, the first writable file of a set survives only when the
// set has no read-only member; otherwise the read-only copies are the
// survivors. Interactively the user picks survivors per set, and the
// prompt repeats until at least one file is preserved; quit aborts the
// remainder of the deletion phase.
func Delete(cfg *config.Config, st *store.Store, in io.Reader, w io.Writer) {
	input := bufio.NewScanner(in)
	numSets := st.GroupCount()
	curSet := 0
	for _, size := range st.Sizes() {
		for _, g := range st.Bucket(size) {
			curSet++

			var names []string
			numRO := 0
			for _, f := range g.Files {
				if f.ReadOnly {
					numRO++
					continue
				}
				if !cfg.NoPrompt {
					fmt.Fprintf(w, "[%d] %s (%c)\n", len(names)+1, f.Path, roMark(f))
				}
				names = append(names, f.Path)
			}
			// Nothing to delete when every member is protected.
			if len(names) == 0 {
				continue
			}

			erase := make([]bool, len(names))
			if cfg.NoPrompt {
				for i := range erase {
					erase[i] = true
				}
				erase[0] = numRO != 0
			} else {
				fmt.Fprintf(w, "    %d read only.\n\n", numRO)
				if !promptSelection(input, w, erase, curSet, numSets, size, cfg.ShowSize) {
					return
				}
			}

			fmt.Fprintln(w)
			for i, name := range names {
				switch {
				case !erase[i]:
					fmt.Fprintf(w, "   [+] %s\n", name)
				case os.Remove(name) == nil:
					fmt.Fprintf(w, "   [-] %s\n", name)
				default:
					fmt.Fprintf(w, "   [!] %s -- unable to delete file!\n", name)
					logger.Warnf("failed to remove %s", name)
				}
			}
			fmt.Fprintln(w)
		}
	}
}

// promptSelection fills erase from user input for one set. It returns
// false when the user quits (or input is exhausted), which aborts the
// whole deletion phase.
func promptSelection(input *bufio.Scanner, w io.Writer, erase []bool, curSet, numSets int, size int64, showSize bool) bool {
	for {
		for i := range erase {
			erase[i] = true
		}
		fmt.Fprintf(w, "Set %d of %d, preserve files [1 - %d, all, none, quit]", curSet, numSets, len(erase))
		if showSize {
			fmt.Fprintf(w, " (%d byte%s each)", size, plural(size))
		}
		fmt.Fprint(w, ": ")

		if !input.Scan() {
			return false
		}
		for _, token := range tokenize(input.Text()) {
			switch {
			case strings.EqualFold(token, "quit"):
				return false
			case strings.EqualFold(token, "all"):
				for i := range erase {
					erase[i] = false
				}
			case strings.EqualFold(token, "none"):
				for i := range erase {
					erase[i] = true
				}
			default:
				if n, err := strconv.Atoi(token); err == nil && n >= 1 && n <= len(erase) {
					erase[n-1] = false
				}
			}
		}

		preserved := 0
		for _, e := range erase {
			if !e {
				preserved++
			}
		}
		if preserved >= 1 {
			return true
		}
	}
}

func tokenize(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
}
