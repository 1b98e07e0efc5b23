package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"dupesweep/config"
	"dupesweep/logger"
	"dupesweep/store"
)

func init() {
	logger.Init("error")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func scan(t *testing.T, cfg *config.Config) *store.Store {
	t.Helper()
	cfg.Quiet = true
	st := store.New()
	s, err := New(cfg, st)
	if err != nil {
		t.Fatalf("scanner: %v", err)
	}
	s.Run()
	return st
}

func paths(st *store.Store) map[string]*store.FileRecord {
	out := make(map[string]*store.FileRecord)
	for _, size := range st.Sizes() {
		for _, g := range st.Bucket(size) {
			for _, f := range g.Files {
				out[f.Path] = f
			}
		}
	}
	return out
}

func TestScanFlat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a", "hello")
	writeFile(t, dir, "b", "world")

	st := scan(t, &config.Config{Roots: []string{dir}, MinSize: -1})
	if st.FileCount() != 2 {
		t.Fatalf("expected 2 candidates, got %d", st.FileCount())
	}
	for _, g := range st.Bucket(5) {
		if g.Len() != 1 {
			t.Fatal("scanner must seed singleton groups")
		}
	}
}

func TestScanRecursion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "top", "data")
	writeFile(t, dir, "sub/nested", "data")

	st := scan(t, &config.Config{Roots: []string{dir}, MinSize: -1})
	if st.FileCount() != 1 {
		t.Fatalf("without -r expected 1 candidate, got %d", st.FileCount())
	}

	st = scan(t, &config.Config{Roots: []string{dir}, MinSize: -1, Recurse: true})
	if st.FileCount() != 2 {
		t.Fatalf("with -r expected 2 candidates, got %d", st.FileCount())
	}
}

func TestScanEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "e1", "")
	writeFile(t, dir, "e2", "")

	st := scan(t, &config.Config{Roots: []string{dir}, MinSize: -1})
	if st.FileCount() != 2 {
		t.Fatalf("empty files should be candidates by default, got %d", st.FileCount())
	}

	st = scan(t, &config.Config{Roots: []string{dir}, MinSize: -1, ExcludeEmpty: true})
	if st.FileCount() != 0 {
		t.Fatalf("-n should exclude empty files, got %d", st.FileCount())
	}
}

func TestScanMinSizeStrict(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "small", "123")       // 3 bytes
	writeFile(t, dir, "exact", "1234567")   // 7 bytes
	writeFile(t, dir, "large", "123456789") // 9 bytes

	st := scan(t, &config.Config{Roots: []string{dir}, MinSize: 7})
	got := paths(st)
	if len(got) != 1 {
		t.Fatalf("expected only the large file, got %v", got)
	}
	if _, ok := got[filepath.Join(dir, "large")]; !ok {
		t.Fatal("large file missing")
	}
}

func TestScanGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "same")
	writeFile(t, dir, "notes.log", "same")

	st := scan(t, &config.Config{Roots: []string{dir}, MinSize: -1, Globs: []string{"*.txt"}})
	got := paths(st)
	if len(got) != 1 {
		t.Fatalf("expected one candidate, got %v", got)
	}
	if _, ok := got[filepath.Join(dir, "notes.txt")]; !ok {
		t.Fatal("txt file missing")
	}
}

func TestScanReadOnlyPropagation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".git/config", "same")
	writeFile(t, dir, "src/config", "same")

	st := scan(t, &config.Config{
		Roots:         []string{dir},
		MinSize:       -1,
		Recurse:       true,
		ReadOnlyNames: []string{".git"},
	})
	got := paths(st)
	ro := got[filepath.Join(dir, ".git", "config")]
	rw := got[filepath.Join(dir, "src", "config")]
	if ro == nil || rw == nil {
		t.Fatalf("missing candidates: %v", got)
	}
	if !ro.ReadOnly {
		t.Fatal("file under .git should be read-only")
	}
	if rw.ReadOnly {
		t.Fatal("file under src should be writable")
	}
	if st.ReadOnlyCount() != 1 {
		t.Fatalf("read-only count: %d", st.ReadOnlyCount())
	}
}

func TestScanReadOnlyRoot(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "backup")
	writeFile(t, root, "file", "data")

	st := scan(t, &config.Config{
		Roots:         []string{root},
		MinSize:       -1,
		ReadOnlyNames: []string{"backup"},
	})
	for _, f := range paths(st) {
		if !f.ReadOnly {
			t.Fatal("candidates under a read-only root must be read-only")
		}
	}
	if st.FileCount() != 1 {
		t.Fatalf("file count: %d", st.FileCount())
	}
}

func TestScanSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "target", "content")
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	st := scan(t, &config.Config{Roots: []string{dir}, MinSize: -1})
	if _, ok := paths(st)[link]; ok {
		t.Fatal("symlink included without -s")
	}

	st = scan(t, &config.Config{Roots: []string{dir}, MinSize: -1, FollowSymlinks: true})
	if _, ok := paths(st)[link]; !ok {
		t.Fatal("symlink missing with -s")
	}
}

func TestScanSymlinkedDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "real/file", "data")
	if err := os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "alias")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	st := scan(t, &config.Config{Roots: []string{dir}, MinSize: -1, Recurse: true})
	if st.FileCount() != 1 {
		t.Fatalf("symlinked dir followed without -s: %d candidates", st.FileCount())
	}

	st = scan(t, &config.Config{Roots: []string{dir}, MinSize: -1, Recurse: true, FollowSymlinks: true})
	if st.FileCount() != 2 {
		t.Fatalf("symlinked dir not followed with -s: %d candidates", st.FileCount())
	}
}

func TestScanMissingRoot(t *testing.T) {
	st := scan(t, &config.Config{Roots: []string{"/no/such/dir"}, MinSize: -1})
	if st.FileCount() != 0 {
		t.Fatal("missing root should add nothing")
	}
}

func TestScanPhysicalIdentity(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a", "x")

	st := scan(t, &config.Config{Roots: []string{dir}, MinSize: -1})
	for _, f := range paths(st) {
		if f.Inode == 0 {
			t.Fatal("expected inode to be populated")
		}
		if f.ModTime.IsZero() {
			t.Fatal("expected mtime to be populated")
		}
	}
}
