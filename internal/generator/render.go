package generator

import (
	"bytes"
	"fmt"

	"github.com/dave/dst/decorator"

	"github.com/toyz/tracefn/internal/parser"
	"github.com/toyz/tracefn/internal/utils"
)

// Render prints the (possibly rewritten) file back to formatted source.
// Unmodified files return their original bytes untouched, which is what
// makes gate-suppressed output byte-identical to the input.
func Render(file *parser.File, result *FileResult) ([]byte, error) {
	if !result.Changed() {
		return file.Source, nil
	}

	var buf bytes.Buffer
	restorer := decorator.NewRestorer()
	if err := restorer.Fprint(&buf, file.Tree); err != nil {
		return nil, fmt.Errorf("failed to print rewritten %s: %w", file.Path, err)
	}

	formatted, err := utils.FormatSource(file.Path, buf.Bytes())
	if err != nil {
		return nil, err
	}
	return formatted, nil
}
