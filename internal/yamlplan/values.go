package yamlplan

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

func toParams(raw map[string]any) (map[string]cty.Value, error) {
	out := make(map[string]cty.Value, len(raw))
	for k, v := range raw {
		val, err := toCty(v)
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", k, err)
		}
		out[k] = val
	}
	return out, nil
}

// toCty converts a decoded YAML value into its cty equivalent. Sequences
// become tuples and mappings become objects; consumers convert them to the
// collection type they expect.
func toCty(v any) (cty.Value, error) {
	switch x := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(x), nil
	case bool:
		return cty.BoolVal(x), nil
	case int:
		return cty.NumberIntVal(int64(x)), nil
	case int64:
		return cty.NumberIntVal(x), nil
	case uint64:
		return cty.NumberUIntVal(x), nil
	case float64:
		return cty.NumberFloatVal(x), nil
	case []any:
		if len(x) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(x))
		for i, e := range x {
			val, err := toCty(e)
			if err != nil {
				return cty.NilVal, err
			}
			elems[i] = val
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(x) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(x))
		for k, e := range x {
			val, err := toCty(e)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[k] = val
		}
		return cty.ObjectVal(attrs), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported value of type %T", v)
	}
}
