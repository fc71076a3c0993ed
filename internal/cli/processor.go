// Package cli coordinates scanning directories for annotated Go files,
// rewriting them and reporting the results.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/toyz/tracefn/internal/generator"
	"github.com/toyz/tracefn/internal/parser"
	"github.com/toyz/tracefn/internal/utils"
)

// Processor runs the whole pipeline: scan, parse, gate, rewrite, write.
type Processor struct {
	scanner  *DirectoryScanner
	resolver *ModuleResolver
	parser   *parser.Parser
	gen      *generator.Generator
	diag     *utils.DiagnosticSystem
	opts     Options
	summary  Summary
}

// NewProcessor creates a processor for one run.
func NewProcessor(opts Options, diag *utils.DiagnosticSystem) *Processor {
	return &Processor{
		scanner:  NewDirectoryScanner(),
		resolver: NewModuleResolver(),
		parser:   parser.NewParser(),
		gen:      generator.New(opts.Release, opts.RuntimePath),
		diag:     diag,
		opts:     opts,
	}
}

// GetSummary returns the run's counters.
func (p *Processor) GetSummary() Summary {
	return p.summary
}

// DryRun reports whether this run writes any files.
func (p *Processor) DryRun() bool {
	return !p.opts.Write && p.opts.OutputDir == ""
}

// Run processes every Go file under the given directory patterns. Any
// directive or analysis error fails the run; nothing is written for the
// offending file.
func (p *Processor) Run(directories []string) error {
	files, err := p.scanner.ScanDirectories(directories)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		p.diag.Warn("No Go files found under: %v", directories)
		return nil
	}

	if module, err := p.resolver.Resolve(filepath.Dir(files[0].Path)); err == nil {
		p.diag.Verbose("Resolved module: %s", module)
	} else {
		p.diag.Warn("No go.mod found for scanned files; generated imports may not resolve (%v)", err)
	}

	for _, file := range files {
		if err := p.processFile(file); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) processFile(file ScannedFile) error {
	parsed, err := p.parser.ParseFile(file.Path)
	if err != nil {
		return err
	}
	p.summary.FilesScanned++

	if len(parsed.Functions) == 0 {
		return nil
	}

	result, err := p.gen.InstrumentFile(parsed)
	if err != nil {
		return err
	}

	for _, name := range result.Skipped {
		p.diag.Warn("%s: %s is already instrumented; skipping", file.Path, name)
	}
	for _, name := range result.Suppressed {
		p.diag.Verbose("%s: %s compiled out (release build without force)", file.Path, name)
	}
	for _, name := range result.Instrumented {
		p.diag.Verbose("%s: instrumented %s", file.Path, name)
	}

	p.summary.FunctionsInstrumented += len(result.Instrumented)
	p.summary.FunctionsSuppressed += len(result.Suppressed)
	p.summary.FunctionsSkipped += len(result.Skipped)

	if !result.Changed() {
		return nil
	}

	source, err := generator.Render(parsed, result)
	if err != nil {
		return err
	}

	if p.DryRun() {
		p.diag.List("would rewrite %s (%d function(s))", file.Path, len(result.Instrumented))
		return nil
	}

	dest := file.Path
	if p.opts.OutputDir != "" {
		dest = filepath.Join(p.opts.OutputDir, file.Rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return fmt.Errorf("failed to create output directory for %s: %w", dest, err)
		}
	}

	if err := os.WriteFile(dest, source, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	p.summary.FilesRewritten++
	p.summary.RewrittenFiles = append(p.summary.RewrittenFiles, dest)
	return nil
}
