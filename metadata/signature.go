package metadata

import (
	"strings"

	"github.com/typeql-tools/funcmeta/typeql/parser"
)

// maxSingleOutputTypes caps how many labeled types a single (tuple-style)
// output renders; tuple returns rarely exceed this in practice and the cap
// bounds pathological trees.
const maxSingleOutputTypes = 4

// resolveParameters walks the argument list in declaration order and resolves
// each type reference. Resolution is total: an unrecognized type reference
// degrades to the "unknown" sentinel instead of failing.
func resolveParameters(sig *parser.SignatureNode) []Parameter {
	params := make([]Parameter, 0, len(sig.Args))
	for _, arg := range sig.Args {
		params = append(params, Parameter{
			Name:     arg.Variable,
			TypeName: resolveTypeRef(arg.Type),
		})
	}
	return params
}

// resolveTypeRef renders a type reference: builtin tokens are normalized to
// lowercase, schema labels are preserved as written
func resolveTypeRef(ref parser.TypeRefNode) string {
	switch t := ref.(type) {
	case *parser.BuiltinType:
		return strings.ToLower(t.Token)
	case *parser.LabelType:
		return t.Name
	default:
		return unknownSentinel
	}
}

// renderOutput renders the declared output shape as a display string.
// Single outputs holding a builtin token render as the bare token; labeled
// single outputs render as a comma-joined list capped at maxSingleOutputTypes.
// Stream outputs render inside braces to signal set-valued results.
func renderOutput(out parser.OutputNode) string {
	switch o := out.(type) {
	case *parser.SingleOutput:
		return renderSingleOutput(o)
	case *parser.StreamOutput:
		return renderStreamOutput(o)
	default:
		return unknownSentinel
	}
}

func renderSingleOutput(o *parser.SingleOutput) string {
	labels := make([]string, 0, len(o.Types))
	for _, ref := range o.Types {
		if builtin, ok := ref.(*parser.BuiltinType); ok {
			return strings.ToLower(builtin.Token)
		}
		if label, ok := ref.(*parser.LabelType); ok {
			labels = append(labels, label.Name)
		}
		if len(labels) == maxSingleOutputTypes {
			break
		}
	}
	if len(labels) == 0 {
		return unknownSentinel
	}
	return strings.Join(labels, ", ")
}

func renderStreamOutput(o *parser.StreamOutput) string {
	names := make([]string, 0, len(o.Types))
	for _, ref := range o.Types {
		switch t := ref.(type) {
		case *parser.BuiltinType:
			names = append(names, strings.ToLower(t.Token))
		case *parser.LabelType:
			names = append(names, t.Name)
		}
	}
	if len(names) == 0 {
		return unknownSentinel
	}
	return "{ " + strings.Join(names, ", ") + " }"
}
