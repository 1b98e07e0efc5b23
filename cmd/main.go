package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"dupesweep/classifier"
	"dupesweep/config"
	"dupesweep/logger"
	"dupesweep/report"
	"dupesweep/scanner"
	"dupesweep/store"
)

func main() {
	prog := filepath.Base(os.Args[0])

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", prog, err)
			fmt.Fprintf(os.Stderr, "Try '%s -h' for more information.\n", prog)
		}
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel)

	if cfg.MinSize >= 0 {
		fmt.Printf("minimum file size to consider: %d\n", cfg.MinSize)
	}

	st := store.New()
	sc, err := scanner.New(cfg, st)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	sc.Run()

	if len(cfg.ReadOnlyNames) > 0 {
		fmt.Print("Read only paths: ")
		for _, name := range cfg.ReadOnlyNames {
			fmt.Printf("'%s' ", name)
		}
		fmt.Println()
		fmt.Printf("Total read only files: %d.\n", st.ReadOnlyCount())
	}

	classifier.New(cfg, st).Run()
	report.Dump(st)

	switch {
	case cfg.Delete:
		report.Delete(cfg, st, os.Stdin, os.Stdout)
	case cfg.SummaryOnly:
		report.Summarize(st, os.Stdout)
	default:
		report.Print(cfg, st, os.Stdout)
	}
}
