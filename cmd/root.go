// Package cmd is the command-line front end for ftreesync. Per the
// engine's scope, this package is intentionally thin: argument parsing
// and output formatting only. All sync semantics live in package
// engine.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/gilramir/ftreesync/engine"
)

// Application holds the parsed command-line state, the same shape as the
// teacher's own cmd.Application.
type Application struct {
	mode            string
	logfileName     string
	verbose         bool
	srcIgnoreFile   string
	destIgnoreFile  string
	firstDirectory  string
	secondDirectory string
}

// Run parses flags, drives a single Sync call, and prints its Summary.
// It calls os.Exit on usage or sync errors, matching the teacher's own
// cmd.Application.Run().
func (a *Application) Run() {
	flag.StringVar(&a.mode, "mode", "soft", "sync mode: soft, mixed, hard, or update")
	flag.StringVar(&a.logfileName, "log-file", "", "where to log (empty: discard, '-': stderr, else: file path)")
	flag.BoolVar(&a.verbose, "verbose", false, "report each copy/delete as it happens")
	flag.StringVar(&a.srcIgnoreFile, "src-ignore-file", "", "path to a literal-path ignore spec for the source tree")
	flag.StringVar(&a.destIgnoreFile, "dest-ignore-file", "", "path to a literal-path ignore spec for the destination tree")

	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Println("Usage: ftreesync [flags] <src-dir> <dest-dir>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	a.firstDirectory = flag.Arg(0)
	a.secondDirectory = flag.Arg(1)

	setLogger(a.logfileName)

	mode, err := parseMode(a.mode)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	srcIgnore, err := readIgnoreFile(a.srcIgnoreFile)
	if err != nil {
		fmt.Printf("reading src ignore file: %v\n", err)
		os.Exit(1)
	}
	destIgnore, err := readIgnoreFile(a.destIgnoreFile)
	if err != nil {
		fmt.Printf("reading dest ignore file: %v\n", err)
		os.Exit(1)
	}

	summary, err := engine.Sync(context.Background(), a.firstDirectory, a.secondDirectory,
		srcIgnore, destIgnore, a.verbose, mode)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	printSummary(summary)
}

func parseMode(s string) (engine.Mode, error) {
	switch s {
	case "soft":
		return engine.Soft, nil
	case "mixed":
		return engine.Mixed, nil
	case "hard":
		return engine.Hard, nil
	case "update":
		return engine.Update, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want soft, mixed, hard, or update)", s)
	}
}

// readIgnoreFile returns nil (no ignore spec) when path is empty, the
// file's contents otherwise.
func readIgnoreFile(path string) (*string, error) {
	if path == "" {
		return nil, nil
	}
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// setLogger mirrors the teacher's own setLogger, generalized from the
// standard log package to logrus: "" discards, "-" goes to stderr, and
// anything else is a file path.
func setLogger(logfileName string) {
	switch logfileName {
	case "":
		engine.SetLogOutput(ioutil.Discard)
		return
	case "-":
		engine.SetLogOutput(os.Stderr)
	default:
		fh, err := os.Create(logfileName)
		if err != nil {
			log.Fatalf("cannot create %s for logging: %s", logfileName, err)
		}
		engine.SetLogOutput(fh)
	}
}

// printSummary renders a Summary the way jesseduffield-lazydocker colors
// its own status lines: highlight the "moved" counts, leave the rest
// plain. color.NoColor (set by the fatih/color package itself based on
// whether stdout is a terminal) makes this degrade to plain text when
// piped.
func printSummary(s *engine.Summary) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	bold.Printf("sync complete (%s)\n", s.Mode)
	green.Printf("  + %d files copied, %d dirs created\n", s.FilesCopied, s.DirsCreated)
	red.Printf("  - %d files deleted, %d dirs deleted\n", s.FilesDeleted, s.DirsDeleted)
	if s.Errors > 0 {
		red.Printf("  ! %d errors swallowed\n", s.Errors)
	}
	if s.SrcIgnoreLinesApplied > 0 || s.DestIgnoreLinesApplied > 0 {
		fmt.Printf("  (%d src / %d dest ignore lines applied)\n",
			s.SrcIgnoreLinesApplied, s.DestIgnoreLinesApplied)
	}
}
