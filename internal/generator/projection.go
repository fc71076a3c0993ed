package generator

import (
	"github.com/toyz/tracefn/internal/annotations"
	"github.com/toyz/tracefn/internal/parser"
)

// ParameterProjection records whether one parameter appears in the entry
// event. Projections preserve declaration order.
type ParameterProjection struct {
	Name     string
	Included bool
}

// Project decides, per parameter, whether it is rendered into the entry
// event. Blank and unnamed parameters are structurally excluded, as is the
// receiver (it never enters the projection at all). Skip entries matching
// no parameter have no effect.
func Project(sig *parser.FunctionSignature, cfg *annotations.TraceConfig) []ParameterProjection {
	projections := make([]ParameterProjection, 0, len(sig.Params))
	for _, p := range sig.Params {
		projections = append(projections, ParameterProjection{
			Name:     p.Name,
			Included: !p.Blank && !cfg.Skips(p.Name),
		})
	}
	return projections
}
