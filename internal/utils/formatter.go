package utils

import (
	"fmt"
	"go/format"

	"golang.org/x/tools/imports"
)

// FormatSource formats rewritten Go source the way gofmt would and
// normalizes its import block (grouping and sorting the imports the
// rewrite added).
func FormatSource(filename string, src []byte) ([]byte, error) {
	out, err := imports.Process(filename, src, &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err == nil {
		return out, nil
	}

	// Fall back to plain formatting so a resolver hiccup never loses the
	// rewrite; the import block is still valid, just unsorted.
	formatted, fmtErr := format.Source(src)
	if fmtErr != nil {
		return nil, fmt.Errorf("rewritten %s is not valid Go: %w", filename, fmtErr)
	}
	return formatted, nil
}
