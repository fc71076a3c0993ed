package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/toyz/tracefn/internal/cli"
	"github.com/toyz/tracefn/internal/utils"
)

func main() {
	// Define command-line flags
	var (
		releaseFlag = flag.Bool("release", false, "Release build: compile instrumentation out unless a directive sets force = true")
		writeFlag   = flag.Bool("write", false, "Rewrite instrumented files in place")
		outputFlag  = flag.String("output", "", "Write rewritten files under this directory instead of in place")
		runtimeFlag = flag.String("runtime", "", "Override the runtime package import path referenced by generated code")
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flag.Bool("quiet", false, "Only show errors and final results")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <directory-paths...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Tracefn Instrumentation Rewriter\n")
		fmt.Fprintf(os.Stderr, "Scans directories for Go functions annotated with //tracefn::trace and rewrites\n")
		fmt.Fprintf(os.Stderr, "their bodies with entry/exit logging and timing around the original code.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nArguments:\n")
		fmt.Fprintf(os.Stderr, "  directory-paths    One or more directories to scan for annotated Go files\n")
		fmt.Fprintf(os.Stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(os.Stderr, "\nDirectives:\n")
		fmt.Fprintf(os.Stderr, "  //tracefn::trace                                  # trace level, all parameters\n")
		fmt.Fprintf(os.Stderr, "  //tracefn::trace level = \"info\"                   # custom event level\n")
		fmt.Fprintf(os.Stderr, "  //tracefn::trace level = \"debug\", skip = \"password\"\n")
		fmt.Fprintf(os.Stderr, "  //tracefn::trace force = true                     # keep tracing in release builds\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./...                          # dry run: report what would change\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -write ./internal/...          # rewrite files in place\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -output build/traced ./...     # keep originals, mirror rewrites\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -release -write ./...          # release build: only force = true survives\n", os.Args[0])
	}

	flag.Parse()

	// Show help if requested
	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	// Validate arguments
	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one directory path is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	// Create diagnostic system based on flags
	var diagnostics *utils.DiagnosticSystem
	if *quietFlag {
		diagnostics = utils.NewQuietDiagnostics()
	} else if *verboseFlag {
		diagnostics = utils.NewVerboseDiagnostics()
	} else {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	diagnostics.Section("Tracefn Instrumentation Rewriter")

	processor := cli.NewProcessor(cli.Options{
		Release:     *releaseFlag,
		Write:       *writeFlag,
		OutputDir:   *outputFlag,
		RuntimePath: *runtimeFlag,
	}, diagnostics)

	if processor.DryRun() {
		diagnostics.Info("Dry run: pass -write or -output to apply changes")
	}

	if err := processor.Run(args); err != nil {
		diagnostics.Error("Rewrite failed: %v", err)
		os.Exit(1)
	}

	summary := processor.GetSummary()
	diagnostics.Summary("Rewrite Complete!", []utils.SummaryStat{
		{Name: "Files scanned", Value: summary.FilesScanned},
		{Name: "Files rewritten", Value: summary.FilesRewritten},
		{Name: "Functions instrumented", Value: summary.FunctionsInstrumented},
		{Name: "Functions compiled out", Value: summary.FunctionsSuppressed},
		{Name: "Functions already instrumented", Value: summary.FunctionsSkipped},
	})

	if *verboseFlag && len(summary.RewrittenFiles) > 0 {
		for _, file := range summary.RewrittenFiles {
			diagnostics.List("%s", file)
		}
	}
}
