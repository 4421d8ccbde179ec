package registry

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Params are the evaluated parameters of one advice block.
type Params map[string]cty.Value

// Names returns the parameter names, sorted.
func (p Params) Names() []string {
	out := make([]string, 0, len(p))
	for name := range p {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Decode copies the parameters into the fields of the struct target points
// to. Fields are matched by their `cty` tag. Fields without a parameter keep
// their current value, so callers set defaults before decoding. A parameter
// with no matching field is an error.
func (p Params) Decode(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("decode target must be a non-nil pointer to a struct, got %T", target)
	}
	elem := rv.Elem()

	fields := make(map[string]int)
	for i := 0; i < elem.NumField(); i++ {
		field := elem.Type().Field(i)
		if !field.IsExported() {
			continue
		}
		tagName := strings.Split(field.Tag.Get("cty"), ",")[0]
		if tagName != "" && tagName != "-" {
			fields[tagName] = i
		}
	}

	var errs []string
	for _, name := range p.Names() {
		idx, ok := fields[name]
		if !ok {
			errs = append(errs, fmt.Sprintf("unsupported parameter %q", name))
			continue
		}
		val := p[name]
		if val.IsNull() {
			continue
		}
		field := elem.Field(idx)
		ty, err := gocty.ImpliedType(field.Interface())
		if err != nil {
			errs = append(errs, fmt.Sprintf("parameter %q: could not imply cty type from Go field type %s: %v", name, field.Type(), err))
			continue
		}
		converted, err := convert.Convert(val, ty)
		if err != nil {
			errs = append(errs, fmt.Sprintf("parameter %q: requires %s: %v", name, ty.FriendlyName(), err))
			continue
		}
		if err := gocty.FromCtyValue(converted, field.Addr().Interface()); err != nil {
			errs = append(errs, fmt.Sprintf("parameter %q: %v", name, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
