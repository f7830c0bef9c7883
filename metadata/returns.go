package metadata

import (
	"fmt"
	"strings"

	"github.com/typeql-tools/funcmeta/typeql/parser"
)

// classifyReturn derives the canonical return expression string from the
// return clause. Classification failure is recoverable: a clause that matches
// none of the known shapes, or that binds no variable, yields nil rather than
// a fabricated placeholder, and the surrounding metadata stays valid.
func classifyReturn(ret parser.ReturnNode) *string {
	switch r := ret.(type) {
	case *parser.SingleReturn:
		if len(r.Vars) == 0 {
			return nil
		}
		// Multi-variable single returns summarize the primary (first) bound
		// variable only.
		prefix := ""
		switch r.Selector {
		case parser.SelectorFirst:
			prefix = "first "
		case parser.SelectorLast:
			prefix = "last "
		}
		expr := fmt.Sprintf("%s$%s", prefix, r.Vars[0])
		return &expr

	case *parser.ReduceReturn:
		if r.Variable == "" {
			return nil
		}
		expr := fmt.Sprintf("%s($%s)", strings.ToLower(r.Operator), r.Variable)
		return &expr

	case *parser.StreamReturn:
		if len(r.Vars) == 0 {
			return nil
		}
		expr := fmt.Sprintf("{ $%s }", r.Vars[0])
		return &expr

	default:
		return nil
	}
}
