package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"dupesweep/version"
)

// Config carries every knob the scan, classify and report phases need.
// It is built once from the command line and passed explicitly; nothing
// in the core reads global state.
type Config struct {
	Roots          []string
	Recurse        bool
	ReadOnlyNames  []string
	Globs          []string
	FollowSymlinks bool
	ExcludeEmpty   bool
	OmitFirst      bool
	SameLine       bool
	ShowSize       bool
	SummaryOnly    bool
	MinSize        int64
	Quiet          bool
	Delete         bool
	NoPrompt       bool
	LogLevel       string
	MaxIOPerSecond int
}

type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// Load parses args (the command line without the program name). It
// exits directly for -v and -h; every other problem is returned as an
// error before any scan work happens.
func Load(args []string) (*Config, error) {
	cfg := &Config{
		// -1 marks "no minimum": the filter is a strict greater-than,
		// so 0 would silently drop empty files.
		MinSize:  -1,
		LogLevel: "warn",
	}

	fs := flag.NewFlagSet("dupesweep", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { displayHelp(fs) }

	fs.BoolVar(&cfg.Recurse, "r", false, "for every directory given follow subdirectories encountered within")
	fs.Var((*stringList)(&cfg.ReadOnlyNames), "R", "treat any path with a component matching `name` as read only (repeatable)")
	fs.Var((*stringList)(&cfg.Globs), "i", "only include files matching `glob`; with multiple instances files must match at least one (repeatable)")
	fs.BoolVar(&cfg.FollowSymlinks, "s", false, "follow symlinks")
	fs.BoolVar(&cfg.ExcludeEmpty, "n", false, "exclude zero-length files from consideration")
	fs.BoolVar(&cfg.OmitFirst, "f", false, "omit the first file in each set of matches")
	fs.BoolVar(&cfg.SameLine, "1", false, "list each set of matches on a single line")
	fs.BoolVar(&cfg.ShowSize, "S", false, "show size of duplicate files")
	fs.BoolVar(&cfg.SummaryOnly, "m", false, "summarize dupe information")
	fs.Int64Var(&cfg.MinSize, "M", cfg.MinSize, "only process files of size strictly greater than `min` bytes")
	fs.BoolVar(&cfg.Quiet, "q", false, "hide progress indicator")
	fs.BoolVar(&cfg.Delete, "d", false, "prompt user for files to preserve and delete all others; read-only files are never deleted")
	fs.BoolVar(&cfg.NoPrompt, "N", false, "together with -d, delete without prompting; the first file of a set survives only when the set has no read-only member, otherwise only the read-only copies do")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error, fatal, or panic")
	fs.IntVar(&cfg.MaxIOPerSecond, "iops", 0, "maximum stat/open operations per second (0 for unlimited)")
	showVersion := fs.Bool("v", false, "display dupesweep version")
	showHelp := fs.Bool("h", false, "display this help message")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *showVersion {
		fmt.Printf("dupesweep %s\n", version.Version)
		os.Exit(0)
	}
	if *showHelp {
		displayHelp(fs)
		os.Exit(1)
	}

	cfg.Roots = fs.Args()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if len(cfg.Roots) == 0 {
		return fmt.Errorf("no directories specified")
	}
	if cfg.MinSize < -1 {
		return fmt.Errorf("minimum file size must be zero or positive")
	}
	if cfg.MaxIOPerSecond < 0 {
		return fmt.Errorf("iops must be zero or positive")
	}
	if cfg.NoPrompt && !cfg.Delete {
		return fmt.Errorf("-N requires -d")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}
	return nil
}

func displayHelp(fs *flag.FlagSet) {
	fmt.Println("dupesweep - find and remove duplicate files")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  dupesweep [options] DIRECTORY...")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
	fmt.Println()
	fmt.Println("Important: under particular circumstances data may be lost when")
	fmt.Println("using -d together with -s, or when specifying a particular")
	fmt.Println("directory more than once.")
}
