// Package cel compiles CEL expressions into predicates over directory
// entries, backing the non-interactive --filter flag.
package cel

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/dirtree/internal/tree"
)

// Filter is a compiled entry predicate. The expression sees three
// variables per entry: path (string), name (string) and depth (int),
// e.g. `depth <= 2 && name.startsWith("src")`.
type Filter struct {
	prg cel.Program
}

// NewFilter compiles expr into a Filter. The expression must evaluate
// to a boolean.
func NewFilter(expr string) (*Filter, error) {
	env, err := cel.NewEnv(
		cel.Variable("path", cel.StringType),
		cel.Variable("name", cel.StringType),
		cel.Variable("depth", cel.IntType),
		// String helpers (startsWith, matches, ...) are the common
		// vocabulary for path predicates.
		celext.Strings(),
	)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expr, issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("filter %q must evaluate to a boolean, got %s", expr, ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build filter program: %w", err)
	}
	return &Filter{prg: prg}, nil
}

// Match evaluates the filter against one entry.
func (f *Filter) Match(e *tree.Entry) (bool, error) {
	out, _, err := f.prg.Eval(map[string]interface{}{
		"path":  e.Path,
		"name":  e.Name,
		"depth": e.Depth,
	})
	if err != nil {
		return false, fmt.Errorf("evaluate filter: %w", err)
	}
	b, ok := out.(types.Bool)
	if !ok {
		return false, fmt.Errorf("filter returned %T, want bool", out.Value())
	}
	return bool(b), nil
}

// Predicate adapts the filter to the plain func form the renderer and
// dump paths consume; evaluation errors count as non-matching.
func (f *Filter) Predicate() func(*tree.Entry) bool {
	return func(e *tree.Entry) bool {
		ok, err := f.Match(e)
		return err == nil && ok
	}
}
