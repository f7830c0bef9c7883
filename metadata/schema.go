package metadata

// FunctionMetadata is the normalized record extracted from one function
// definition. All fields are derived from the AST except CodeBlock, which is
// a presentation transform over the raw source text.
type FunctionMetadata struct {
	Name                string      `json:"name"`                 // Function name from the signature
	Parameters          []Parameter `json:"parameters"`           // Ordered parameter list (positional calling order)
	Output              string      `json:"output"`               // Rendered output shape ("double", "a, b", "{ person }")
	ReturnExpression    *string     `json:"return_expression"`    // Canonical return expression, nil if unclassifiable
	CodeBlock           string      `json:"code_block"`           // Re-indented body text from the match keyword onward
	ReferencedFunctions []string    `json:"referenced_functions"` // Called function names, unique, first-seen order
}

// Parameter captures one typed parameter of a function signature
type Parameter struct {
	Name     string `json:"name"`      // Variable name without the $ sigil
	TypeName string `json:"type_name"` // Builtin token (lowercased) or schema label
}

// unknownSentinel marks type references and output shapes that could not be
// resolved; extraction favors completeness over strictness.
const unknownSentinel = "unknown"
