package lexer

// keywords maps keyword strings to their token types for O(1) lookup
var keywords = map[string]TokenType{
	"fun":    TOKEN_FUN,
	"match":  TOKEN_MATCH,
	"return": TOKEN_RETURN,
	"let":    TOKEN_LET,
	"isa":    TOKEN_ISA,
	"has":    TOKEN_HAS,
	"links":  TOKEN_LINKS,
	"first":  TOKEN_FIRST,
	"last":   TOKEN_LAST,
	"not":    TOKEN_NOT,
	"true":   TOKEN_TRUE,
	"false":  TOKEN_FALSE,
}

// builtinValueTypes is the closed set of builtin value type names.
// They lex as TOKEN_BUILTIN with the type name in the lexeme.
var builtinValueTypes = map[string]bool{
	"boolean":  true,
	"integer":  true,
	"long":     true,
	"double":   true,
	"decimal":  true,
	"string":   true,
	"date":     true,
	"datetime": true,
	"duration": true,
}

// IsBuiltinValueType reports whether name is a builtin value type keyword
func IsBuiltinValueType(name string) bool {
	return builtinValueTypes[name]
}
