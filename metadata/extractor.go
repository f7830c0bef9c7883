package metadata

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/typeql-tools/funcmeta/typeql/parser"
)

// Extract assembles a FunctionMetadata record from a parsed function
// definition and its verbatim source text. The tree is read-only input;
// the caller owns the returned record.
//
// The only hard failure is a traversal depth overrun (DepthError). Everything
// else degrades softly: unresolved types and output shapes become "unknown"
// and an unclassifiable return clause leaves ReturnExpression nil.
func Extract(def *parser.FunctionDefinition, source string) (*FunctionMetadata, error) {
	if def == nil || def.Signature == nil {
		return nil, fmt.Errorf("extract: definition has no signature")
	}

	referenced, err := collectCalls(def.Body, def.Return)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", def.Signature.Name, err)
	}

	return &FunctionMetadata{
		Name:                def.Signature.Name,
		Parameters:          resolveParameters(def.Signature),
		Output:              renderOutput(def.Signature.Output),
		ReturnExpression:    classifyReturn(def.Return),
		CodeBlock:           extractCodeBlock(source),
		ReferencedFunctions: referenced,
	}, nil
}

// extractCodeBlock reproduces the function body from the raw source text with
// per-line indentation stripped. The block starts at the match keyword, or,
// when no match block exists, just after the colon that terminates the return
// type declaration. Token spacing and newlines are preserved as written.
func extractCodeBlock(source string) string {
	if idx := indexMatchKeyword(source); idx >= 0 {
		return stripIndentation(source[idx:])
	}

	if arrow := strings.LastIndex(source, "->"); arrow >= 0 {
		if colon := strings.Index(source[arrow:], ":"); colon >= 0 {
			return stripIndentation(strings.TrimSpace(source[arrow+colon+1:]))
		}
	}

	return source
}

// indexMatchKeyword finds the first occurrence of the match keyword as a
// whole word, so identifiers containing "match" do not shift the block start
func indexMatchKeyword(source string) int {
	offset := 0
	for {
		idx := strings.Index(source[offset:], "match")
		if idx < 0 {
			return -1
		}
		abs := offset + idx

		beforeOK := abs == 0 || !isWordRune(rune(source[abs-1]))
		afterOK := abs+5 >= len(source) || !isWordRune(rune(source[abs+5]))
		if beforeOK && afterOK {
			return abs
		}

		offset = abs + 5
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// stripIndentation removes leading whitespace from every line while
// preserving line boundaries and all other spacing
func stripIndentation(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimLeft(line, " \t")
	}
	return strings.Join(lines, "\n")
}
