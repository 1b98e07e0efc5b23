// Package scanner walks the directory roots and seeds the store with
// one singleton group per eligible candidate file.
package scanner

import (
	"context"
	"os"
	"path/filepath"

	"dupesweep/config"
	"dupesweep/logger"
	"dupesweep/store"
	"dupesweep/utils"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"
)

type Scanner struct {
	cfg      *config.Config
	store    *store.Store
	matcher  *utils.PatternMatcher
	readOnly utils.NameSet
	limiter  *rate.Limiter
	bar      *progressbar.ProgressBar
}

func New(cfg *config.Config, st *store.Store) (*Scanner, error) {
	matcher, err := utils.NewPatternMatcher(cfg.Globs)
	if err != nil {
		return nil, err
	}
	s := &Scanner{
		cfg:      cfg,
		store:    st,
		matcher:  matcher,
		readOnly: utils.NewNameSet(cfg.ReadOnlyNames),
	}
	if cfg.MaxIOPerSecond > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.MaxIOPerSecond), cfg.MaxIOPerSecond)
	}
	s.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Building file list"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetVisibility(!cfg.Quiet),
	)
	return s, nil
}

// Run scans every configured root. A root is read-only when any of its
// path components is in the read-only name set; the flag propagates to
// all descendants.
func (s *Scanner) Run() {
	for _, root := range s.cfg.Roots {
		s.scanDir(root, s.readOnly.ContainsComponent(root))
	}
	_ = s.bar.Clear()
}

func (s *Scanner) scanDir(dir string, readOnly bool) {
	s.throttle()
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Errorf("could not open directory %s: %v", dir, err)
		return
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		_ = s.bar.Add(1)
		s.throttle()

		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		s.throttle()
		linfo, err := os.Lstat(path)
		if err != nil {
			continue
		}

		if info.IsDir() {
			if s.cfg.Recurse && (s.cfg.FollowSymlinks || linfo.Mode()&os.ModeSymlink == 0) {
				s.scanDir(path, readOnly || s.readOnly.Contains(entry.Name()))
			}
			continue
		}
		s.addCandidate(path, info, linfo, readOnly || s.readOnly.Contains(entry.Name()))
	}
}

func (s *Scanner) addCandidate(path string, info, linfo os.FileInfo, readOnly bool) {
	size := info.Size()
	if size <= s.cfg.MinSize {
		return
	}
	isLink := linfo.Mode()&os.ModeSymlink != 0
	if isLink && !s.cfg.FollowSymlinks {
		return
	}
	if !isLink && !linfo.Mode().IsRegular() {
		return
	}
	if !s.matcher.ShouldInclude(path) {
		return
	}
	if size == 0 && s.cfg.ExcludeEmpty {
		return
	}

	dev, ino := fileID(info)
	s.store.Add(&store.FileRecord{
		Path:     path,
		Size:     size,
		Device:   dev,
		Inode:    ino,
		ModTime:  info.ModTime(),
		ReadOnly: readOnly,
	})
}

func (s *Scanner) throttle() {
	if s.limiter != nil {
		_ = s.limiter.Wait(context.Background())
	}
}
