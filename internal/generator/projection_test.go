package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/tracefn/internal/annotations"
	"github.com/toyz/tracefn/internal/parser"
)

func TestProjectPreservesOrder(t *testing.T) {
	sig := &parser.FunctionSignature{
		Name: "f",
		Params: []parser.Param{
			{Name: "a", Type: "int"},
			{Name: "b", Type: "string"},
			{Name: "c", Type: "bool"},
		},
	}

	projections := Project(sig, &annotations.TraceConfig{})
	assert.Equal(t, []ParameterProjection{
		{Name: "a", Included: true},
		{Name: "b", Included: true},
		{Name: "c", Included: true},
	}, projections)
}

func TestProjectExcludesSkippedAndBlank(t *testing.T) {
	sig := &parser.FunctionSignature{
		Name: "f",
		Params: []parser.Param{
			{Name: "username", Type: "string"},
			{Name: "password", Type: "string"},
			{Name: "_", Type: "int", Blank: true},
		},
	}

	projections := Project(sig, &annotations.TraceConfig{Skip: []string{"password"}})
	assert.Equal(t, []ParameterProjection{
		{Name: "username", Included: true},
		{Name: "password", Included: false},
		{Name: "_", Included: false},
	}, projections)
}

func TestProjectUnknownSkipHasNoEffect(t *testing.T) {
	sig := &parser.FunctionSignature{
		Name:   "f",
		Params: []parser.Param{{Name: "a", Type: "int"}},
	}

	projections := Project(sig, &annotations.TraceConfig{Skip: []string{"ghost"}})
	assert.Equal(t, []ParameterProjection{{Name: "a", Included: true}}, projections)
}
