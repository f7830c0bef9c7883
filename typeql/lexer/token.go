package lexer

import "fmt"

// TokenType represents the type of token in a TypeQL function definition
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_ERROR
	TOKEN_COMMENT

	// Keywords
	TOKEN_FUN
	TOKEN_MATCH
	TOKEN_RETURN
	TOKEN_LET
	TOKEN_ISA
	TOKEN_HAS
	TOKEN_LINKS
	TOKEN_FIRST
	TOKEN_LAST
	TOKEN_NOT

	// Builtin value types (boolean, integer, long, double, ...).
	// The concrete type name is carried in the token lexeme.
	TOKEN_BUILTIN

	// Literals
	TOKEN_IDENTIFIER
	TOKEN_VARIABLE // $name (lexeme includes the sigil, literal holds the bare name)
	TOKEN_INT_LITERAL
	TOKEN_FLOAT_LITERAL
	TOKEN_STRING_LITERAL
	TOKEN_TRUE
	TOKEN_FALSE

	// Operators - single character
	TOKEN_COLON     // :
	TOKEN_SEMICOLON // ;
	TOKEN_COMMA     // ,
	TOKEN_PLUS      // +
	TOKEN_MINUS     // -
	TOKEN_STAR      // *
	TOKEN_SLASH     // /
	TOKEN_PERCENT   // %
	TOKEN_EQUAL     // =

	// Operators - comparison
	TOKEN_EQUAL_EQUAL   // ==
	TOKEN_BANG_EQUAL    // !=
	TOKEN_LESS          // <
	TOKEN_LESS_EQUAL    // <=
	TOKEN_GREATER       // >
	TOKEN_GREATER_EQUAL // >=

	// Delimiters
	TOKEN_LPAREN // (
	TOKEN_RPAREN // )
	TOKEN_LBRACE // {
	TOKEN_RBRACE // }
	TOKEN_ARROW  // ->
)

// Token represents a single lexical token
type Token struct {
	Type    TokenType
	Lexeme  string      // The raw text of the token
	Literal interface{} // Parsed literal value (for numbers, strings, variables)
	Line    int         // Line number (1-indexed)
	Column  int         // Column number (1-indexed)
	File    string      // Source file path
	Start   int         // Start offset in source (rune index)
	End     int         // End offset in source (rune index)
}

// String returns a string representation of the token for debugging
func (t Token) String() string {
	return fmt.Sprintf("%s '%s' at %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}

// String returns the name of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

var tokenNames = map[TokenType]string{
	TOKEN_EOF:            "EOF",
	TOKEN_ERROR:          "ERROR",
	TOKEN_COMMENT:        "COMMENT",
	TOKEN_FUN:            "FUN",
	TOKEN_MATCH:          "MATCH",
	TOKEN_RETURN:         "RETURN",
	TOKEN_LET:            "LET",
	TOKEN_ISA:            "ISA",
	TOKEN_HAS:            "HAS",
	TOKEN_LINKS:          "LINKS",
	TOKEN_FIRST:          "FIRST",
	TOKEN_LAST:           "LAST",
	TOKEN_NOT:            "NOT",
	TOKEN_BUILTIN:        "BUILTIN",
	TOKEN_IDENTIFIER:     "IDENTIFIER",
	TOKEN_VARIABLE:       "VARIABLE",
	TOKEN_INT_LITERAL:    "INT_LITERAL",
	TOKEN_FLOAT_LITERAL:  "FLOAT_LITERAL",
	TOKEN_STRING_LITERAL: "STRING_LITERAL",
	TOKEN_TRUE:           "TRUE",
	TOKEN_FALSE:          "FALSE",
	TOKEN_COLON:          "COLON",
	TOKEN_SEMICOLON:      "SEMICOLON",
	TOKEN_COMMA:          "COMMA",
	TOKEN_PLUS:           "PLUS",
	TOKEN_MINUS:          "MINUS",
	TOKEN_STAR:           "STAR",
	TOKEN_SLASH:          "SLASH",
	TOKEN_PERCENT:        "PERCENT",
	TOKEN_EQUAL:          "EQUAL",
	TOKEN_EQUAL_EQUAL:    "EQUAL_EQUAL",
	TOKEN_BANG_EQUAL:     "BANG_EQUAL",
	TOKEN_LESS:           "LESS",
	TOKEN_LESS_EQUAL:     "LESS_EQUAL",
	TOKEN_GREATER:        "GREATER",
	TOKEN_GREATER_EQUAL:  "GREATER_EQUAL",
	TOKEN_LPAREN:         "LPAREN",
	TOKEN_RPAREN:         "RPAREN",
	TOKEN_LBRACE:         "LBRACE",
	TOKEN_RBRACE:         "RBRACE",
	TOKEN_ARROW:          "ARROW",
}

// LexError represents a lexical error with location information
type LexError struct {
	Message string
	Line    int
	Column  int
	File    string
}

// Error implements the error interface
func (e LexError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}
