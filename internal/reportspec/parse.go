package reportspec

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/roach88/weekreview/internal/aggregate"
)

//go:embed schema.cue
var schemaSource []byte

// Parse compiles and validates spec text.
// Validation problems are returned together as ValidationErrors.
func Parse(src []byte) (*ReportSpec, error) {
	spec, err := Compile(src)
	if err != nil {
		return nil, err
	}
	if errs := Validate(spec); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return spec, nil
}

// LoadFile reads and parses a spec file.
func LoadFile(path string) (*ReportSpec, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec %s: %w", path, err)
	}
	spec, err := Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// Compile decodes spec text and checks it against the report schema
// without running the cross-row checks.
func Compile(src []byte) (*ReportSpec, error) {
	var doc any
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, &CompileError{Code: ErrYAMLSyntax, Field: "yaml", Message: err.Error()}
	}
	if doc == nil {
		return nil, &CompileError{Code: ErrSpecEmpty, Field: "spec", Message: "spec is empty"}
	}

	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile report schema: %w", err)
	}

	data := ctx.Encode(plain(doc))
	if err := data.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Report")).Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	// The encoded document only carries fields that were written, so
	// presence checks run against it rather than the unified value.
	return decodeReport(data)
}

func decodeReport(v cue.Value) (*ReportSpec, error) {
	spec := &ReportSpec{}

	tableVal := v.LookupPath(cue.ParsePath("table"))
	if tableVal.Exists() {
		iter, err := tableVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		spec.Table = []PropertySpec{}
		for iter.Next() {
			prop, err := decodeProperty(iter.Value())
			if err != nil {
				return nil, err
			}
			spec.Table = append(spec.Table, prop)
		}
	}

	listVal := v.LookupPath(cue.ParsePath("list"))
	if listVal.Exists() {
		name, err := listVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		spec.List = norm.NFC.String(name)
	}

	return spec, nil
}

func decodeProperty(v cue.Value) (PropertySpec, error) {
	var prop PropertySpec

	name, err := v.LookupPath(cue.ParsePath("name")).String()
	if err != nil {
		return prop, formatCUEError(err)
	}
	prop.Name = norm.NFC.String(name)

	if aggVal := v.LookupPath(cue.ParsePath("aggregation")); aggVal.Exists() {
		mode, err := aggVal.String()
		if err != nil {
			return prop, formatCUEError(err)
		}
		prop.Aggregation = aggregate.Mode(mode)
	}

	if genVal := v.LookupPath(cue.ParsePath("generate")); genVal.Exists() {
		var pair [2]string
		iter, err := genVal.List()
		if err != nil {
			return prop, formatCUEError(err)
		}
		for i := 0; iter.Next() && i < len(pair); i++ {
			s, err := iter.Value().String()
			if err != nil {
				return prop, formatCUEError(err)
			}
			pair[i] = norm.NFC.String(s)
		}
		prop.Generate = &pair
	}

	return prop, nil
}

// plain rewrites YAML maps with non-string keys so the document can be
// encoded into CUE.
func plain(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = plain(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = plain(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}
