package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/tracefn/internal/utils"
)

const annotatedSource = `package demo

//tracefn::trace level = "info", skip = "password"
func login(username, password string) bool {
	return username != "" && password != ""
}
`

func newTestProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/demo\n\ngo 1.25\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "login.go"), []byte(annotatedSource), 0644))
	return dir
}

func newTestProcessor(opts Options) *Processor {
	return NewProcessor(opts, utils.NewQuietDiagnostics())
}

func TestProcessorWritesToOutputDir(t *testing.T) {
	dir := newTestProject(t)
	out := t.TempDir()

	p := newTestProcessor(Options{OutputDir: out})
	require.NoError(t, p.Run([]string{dir}))

	summary := p.GetSummary()
	assert.Equal(t, 1, summary.FilesScanned)
	assert.Equal(t, 1, summary.FilesRewritten)
	assert.Equal(t, 1, summary.FunctionsInstrumented)

	rewritten, err := os.ReadFile(filepath.Join(out, "login.go"))
	require.NoError(t, err)
	assert.Contains(t, string(rewritten), `tracefn.Entry(tracefn.LevelInfo, "login", tracefn.F("username", username))`)
	assert.NotContains(t, string(rewritten), `tracefn.F("password"`)

	// the original is untouched
	original, err := os.ReadFile(filepath.Join(dir, "login.go"))
	require.NoError(t, err)
	assert.Equal(t, annotatedSource, string(original))
}

func TestProcessorWritesInPlace(t *testing.T) {
	dir := newTestProject(t)

	p := newTestProcessor(Options{Write: true})
	require.NoError(t, p.Run([]string{dir}))

	rewritten, err := os.ReadFile(filepath.Join(dir, "login.go"))
	require.NoError(t, err)
	assert.Contains(t, string(rewritten), "tracefn.Entry(")
	assert.Contains(t, string(rewritten), "__tracefnStart := time.Now()")
}

func TestProcessorDryRunWritesNothing(t *testing.T) {
	dir := newTestProject(t)

	p := newTestProcessor(Options{})
	assert.True(t, p.DryRun())
	require.NoError(t, p.Run([]string{dir}))

	summary := p.GetSummary()
	assert.Equal(t, 1, summary.FunctionsInstrumented)
	assert.Equal(t, 0, summary.FilesRewritten)

	original, err := os.ReadFile(filepath.Join(dir, "login.go"))
	require.NoError(t, err)
	assert.Equal(t, annotatedSource, string(original))
}

func TestProcessorReleaseBuildSuppresses(t *testing.T) {
	dir := newTestProject(t)
	out := t.TempDir()

	p := newTestProcessor(Options{Release: true, OutputDir: out})
	require.NoError(t, p.Run([]string{dir}))

	summary := p.GetSummary()
	assert.Equal(t, 0, summary.FunctionsInstrumented)
	assert.Equal(t, 1, summary.FunctionsSuppressed)
	assert.Equal(t, 0, summary.FilesRewritten)

	// nothing emitted at all for a fully suppressed file
	_, err := os.Stat(filepath.Join(out, "login.go"))
	assert.True(t, os.IsNotExist(err))
}

func TestProcessorReleaseBuildKeepsForce(t *testing.T) {
	dir := newTestProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "forced.go"), []byte(`package demo

//tracefn::trace force = true
func important(x int) int {
	return x * 2
}
`), 0644))
	out := t.TempDir()

	p := newTestProcessor(Options{Release: true, OutputDir: out})
	require.NoError(t, p.Run([]string{dir}))

	summary := p.GetSummary()
	assert.Equal(t, 1, summary.FunctionsInstrumented)
	assert.Equal(t, 1, summary.FunctionsSuppressed)

	rewritten, err := os.ReadFile(filepath.Join(out, "forced.go"))
	require.NoError(t, err)
	assert.Contains(t, string(rewritten), `tracefn.Entry(tracefn.LevelTrace, "important"`)
}

func TestProcessorFailsOnBadDirective(t *testing.T) {
	dir := newTestProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.go"), []byte(`package demo

//tracefn::trace level = "loud"
func broken() {}
`), 0644))
	out := t.TempDir()

	p := newTestProcessor(Options{OutputDir: out})
	err := p.Run([]string{dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid level")

	// the run fails before anything is written for the offending file
	_, statErr := os.Stat(filepath.Join(out, "bad.go"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestProcessorIgnoresFilesWithoutDirectives(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/demo\n\ngo 1.25\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain.go"), []byte("package demo\n\nfunc plain() {}\n"), 0644))

	p := newTestProcessor(Options{Write: true})
	require.NoError(t, p.Run([]string{dir}))

	summary := p.GetSummary()
	assert.Equal(t, 1, summary.FilesScanned)
	assert.Equal(t, 0, summary.FilesRewritten)
}
