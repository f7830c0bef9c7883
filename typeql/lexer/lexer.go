package lexer

import (
	"strconv"
	"unicode"
)

// Lexer tokenizes TypeQL function definition source text
type Lexer struct {
	source      []rune // Source code as runes for Unicode support
	start       int    // Start position of current token
	current     int    // Current position in source
	line        int    // Current line number
	column      int    // Current column number
	startColumn int    // Column where current token started
	file        string // Source file path
	tokens      []Token
	errors      []LexError
}

// New creates a new Lexer for the given source code
func New(source, file string) *Lexer {
	return &Lexer{
		source:      []rune(source),
		start:       0,
		current:     0,
		line:        1,
		column:      1,
		startColumn: 1,
		file:        file,
		tokens:      make([]Token, 0, len(source)/8),
		errors:      make([]LexError, 0),
	}
}

// ScanTokens scans all tokens from the source and returns them with any errors
func (l *Lexer) ScanTokens() ([]Token, []LexError) {
	for !l.isAtEnd() {
		l.start = l.current
		l.startColumn = l.column
		l.scanToken()
	}

	l.tokens = append(l.tokens, Token{
		Type:   TOKEN_EOF,
		Lexeme: "",
		Line:   l.line,
		Column: l.column,
		File:   l.file,
		Start:  l.current,
		End:    l.current,
	})

	return l.tokens, l.errors
}

// scanToken scans a single token
func (l *Lexer) scanToken() {
	r := l.advance()

	switch r {
	case '(':
		l.addToken(TOKEN_LPAREN, nil)
	case ')':
		l.addToken(TOKEN_RPAREN, nil)
	case '{':
		l.addToken(TOKEN_LBRACE, nil)
	case '}':
		l.addToken(TOKEN_RBRACE, nil)
	case ',':
		l.addToken(TOKEN_COMMA, nil)
	case ':':
		l.addToken(TOKEN_COLON, nil)
	case ';':
		l.addToken(TOKEN_SEMICOLON, nil)
	case '+':
		l.addToken(TOKEN_PLUS, nil)
	case '*':
		l.addToken(TOKEN_STAR, nil)
	case '/':
		l.addToken(TOKEN_SLASH, nil)
	case '%':
		l.addToken(TOKEN_PERCENT, nil)

	case '-':
		if l.match('>') {
			l.addToken(TOKEN_ARROW, nil)
		} else {
			l.addToken(TOKEN_MINUS, nil)
		}
	case '=':
		if l.match('=') {
			l.addToken(TOKEN_EQUAL_EQUAL, nil)
		} else {
			l.addToken(TOKEN_EQUAL, nil)
		}
	case '!':
		if l.match('=') {
			l.addToken(TOKEN_BANG_EQUAL, nil)
		} else {
			l.addError("Unexpected character: !")
		}
	case '<':
		if l.match('=') {
			l.addToken(TOKEN_LESS_EQUAL, nil)
		} else {
			l.addToken(TOKEN_LESS, nil)
		}
	case '>':
		if l.match('=') {
			l.addToken(TOKEN_GREATER_EQUAL, nil)
		} else {
			l.addToken(TOKEN_GREATER, nil)
		}

	case '$':
		l.scanVariable()

	case '#':
		l.scanComment()

	case '"':
		l.scanString()

	case ' ', '\r', '\t':
		// Ignore whitespace

	case '\n':
		l.line++
		l.column = 1

	default:
		if l.isDigit(r) {
			l.scanNumber()
		} else if l.isAlpha(r) {
			l.scanIdentifier()
		} else {
			l.addError("Unexpected character: " + string(r))
		}
	}
}

// scanVariable scans a $-prefixed variable reference
func (l *Lexer) scanVariable() {
	if !l.isAlpha(l.peek()) {
		l.addError("Expected variable name after '$'")
		return
	}

	for l.isAlphaNumeric(l.peek()) || (l.peek() == '-' && l.isAlphaNumeric(l.peekNext())) {
		l.advance()
	}

	// Literal carries the bare name, lexeme keeps the sigil
	name := string(l.source[l.start+1 : l.current])
	l.addToken(TOKEN_VARIABLE, name)
}

// scanComment scans a single-line comment starting with #
func (l *Lexer) scanComment() {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
}

// scanString scans a string literal, handling escape sequences
func (l *Lexer) scanString() {
	var builder []rune

	for !l.isAtEnd() && l.peek() != '"' {
		if l.peek() == '\n' {
			l.line++
			l.column = 1
		}

		if l.peek() == '\\' {
			l.advance() // consume backslash
			if l.isAtEnd() {
				l.addError("Unterminated string")
				return
			}

			escaped := l.advance()
			switch escaped {
			case 'n':
				builder = append(builder, '\n')
			case 't':
				builder = append(builder, '\t')
			case '\\':
				builder = append(builder, '\\')
			case '"':
				builder = append(builder, '"')
			default:
				builder = append(builder, '\\', escaped)
			}
		} else {
			builder = append(builder, l.advance())
		}
	}

	if l.isAtEnd() {
		l.addError("Unterminated string")
		return
	}

	// Consume closing quote
	l.advance()

	l.addToken(TOKEN_STRING_LITERAL, string(builder))
}

// scanNumber scans an integer or float literal
func (l *Lexer) scanNumber() {
	for l.isDigit(l.peek()) {
		l.advance()
	}

	isFloat := false
	if l.peek() == '.' && l.isDigit(l.peekNext()) {
		isFloat = true
		l.advance() // consume '.'
		for l.isDigit(l.peek()) {
			l.advance()
		}
	}

	lexeme := string(l.source[l.start:l.current])

	if isFloat {
		value, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			l.addError("Invalid float literal: " + err.Error())
			return
		}
		l.addToken(TOKEN_FLOAT_LITERAL, value)
	} else {
		value, err := strconv.ParseInt(lexeme, 10, 64)
		if err != nil {
			l.addError("Invalid integer literal: " + err.Error())
			return
		}
		l.addToken(TOKEN_INT_LITERAL, value)
	}
}

// scanIdentifier scans an identifier, keyword, or builtin value type.
// TypeQL labels may contain dashes (e.g. datetime-tz), so dashes are
// accepted when followed by an alphanumeric character.
func (l *Lexer) scanIdentifier() {
	for l.isAlphaNumeric(l.peek()) || (l.peek() == '-' && l.isAlphaNumeric(l.peekNext())) {
		l.advance()
	}

	lexeme := string(l.source[l.start:l.current])

	if tokenType, isKeyword := keywords[lexeme]; isKeyword {
		l.addToken(tokenType, nil)
		return
	}

	if builtinValueTypes[lexeme] {
		l.addToken(TOKEN_BUILTIN, nil)
		return
	}

	l.addToken(TOKEN_IDENTIFIER, lexeme)
}

// Helper methods

// isAtEnd checks if we've reached the end of the source
func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// advance consumes and returns the current character
func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	r := l.source[l.current]
	l.current++
	l.column++
	return r
}

// match checks if the current character matches the expected character
// If it matches, consumes it and returns true
func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() {
		return false
	}
	if l.source[l.current] != expected {
		return false
	}
	l.current++
	l.column++
	return true
}

// peek returns the current character without consuming it
func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

// peekNext returns the next character without consuming it
func (l *Lexer) peekNext() rune {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

// isDigit checks if a rune is a digit
func (l *Lexer) isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isAlpha checks if a rune is alphabetic or underscore
func (l *Lexer) isAlpha(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

// isAlphaNumeric checks if a rune is alphanumeric or underscore
func (l *Lexer) isAlphaNumeric(r rune) bool {
	return l.isAlpha(r) || l.isDigit(r)
}

// addToken adds a token to the token list
func (l *Lexer) addToken(tokenType TokenType, literal interface{}) {
	lexeme := string(l.source[l.start:l.current])
	l.tokens = append(l.tokens, Token{
		Type:    tokenType,
		Lexeme:  lexeme,
		Literal: literal,
		Line:    l.line,
		Column:  l.startColumn,
		File:    l.file,
		Start:   l.start,
		End:     l.current,
	})
}

// addError adds an error to the error list
func (l *Lexer) addError(message string) {
	l.errors = append(l.errors, LexError{
		Message: message,
		Line:    l.line,
		Column:  l.column,
		File:    l.file,
	})
}
