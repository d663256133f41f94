package hcl_adapter

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/chainforge/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. The HCL decoder populates omitted optional expressions with zero-width
// placeholders, so a nil check alone is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}

	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}

// newEvalContext exposes the process environment as `env` and a handful of
// string functions to `config` expressions.
func newEvalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !hclsyntax.ValidIdentifier(name) {
			continue
		}
		vars[name] = cty.StringVal(value)
	}

	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
		Functions: map[string]function.Function{
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"join":   stdlib.JoinFunc,
			"format": stdlib.FormatFunc,
		},
	}
}

// evalConfig evaluates a component's `config` expression into flat string
// values. Primitives are converted to their string form; lists, maps and
// objects are encoded as JSON.
func evalConfig(ctx context.Context, evalCtx *hcl.EvalContext, expr hcl.Expression) (map[string]string, error) {
	if !isExprDefined(ctx, expr, "config") {
		return nil, nil
	}

	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("config must be an object, got %s", ty.FriendlyName())
	}

	values := val.AsValueMap()
	out := make(map[string]string, len(values))
	// Sorted so the first failing key reported is stable across runs.
	for _, k := range slices.Sorted(maps.Keys(values)) {
		s, err := ctyToString(values[k])
		if err != nil {
			return nil, fmt.Errorf("config key '%s': %w", k, err)
		}
		if s != nil {
			out[k] = *s
		}
	}
	return out, nil
}

// ctyToString renders a value as a config string. Null values yield nil.
func ctyToString(v cty.Value) (*string, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("value is not known")
	}

	if v.Type().IsPrimitiveType() {
		str, err := convert.Convert(v, cty.String)
		if err != nil {
			return nil, err
		}
		s := str.AsString()
		return &s, nil
	}

	raw, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return nil, err
	}
	s := string(raw)
	return &s, nil
}
