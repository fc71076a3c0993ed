package cli

// Options configures a processing run.
type Options struct {
	// Release is the externally supplied build-mode signal. When set,
	// functions without force=true are left completely untouched.
	Release bool

	// Write rewrites instrumented files in place.
	Write bool

	// OutputDir mirrors rewritten files under this directory instead of
	// touching the originals. When neither Write nor OutputDir is set the
	// run is a dry run: it reports what would change and writes nothing.
	OutputDir string

	// RuntimePath overrides the import path of the runtime emission
	// package referenced by generated code.
	RuntimePath string
}

// Summary collects counts across one run.
type Summary struct {
	FilesScanned          int
	FilesRewritten        int
	FunctionsInstrumented int
	FunctionsSuppressed   int
	FunctionsSkipped      int
	RewrittenFiles        []string
}
