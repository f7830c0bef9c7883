package parser

import (
	"fmt"
	"strings"

	"github.com/typeql-tools/funcmeta/typeql/lexer"
)

// Parser transforms token streams into function definition ASTs
type Parser struct {
	tokens  []lexer.Token
	current int
	errors  []ParseError
	source  []rune // Original source text for attaching verbatim definition slices
}

// New creates a new Parser from a token stream
func New(tokens []lexer.Token) *Parser {
	return &Parser{
		tokens:  tokens,
		current: 0,
		errors:  []ParseError{},
	}
}

// NewWithSource creates a new Parser with access to the original source text.
// This enables each parsed definition to carry its verbatim source slice.
func NewWithSource(tokens []lexer.Token, source string) *Parser {
	p := New(tokens)
	p.source = []rune(source)
	return p
}

// ParseFunction parses exactly one function definition from source text.
// This is the input boundary for metadata extraction: callers receive an
// immutable tree or an error, never a partially valid one.
func ParseFunction(source, file string) (*FunctionDefinition, error) {
	defs, err := ParseDefinitions(source, file)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, ParseError{
			Message:  "no function definition found",
			Location: SourceLocation{File: file, Line: 1, Column: 1},
		}
	}
	return defs[0], nil
}

// ParseDefinitions parses zero or more function definitions from source text
func ParseDefinitions(source, file string) ([]*FunctionDefinition, error) {
	l := lexer.New(source, file)
	tokens, lexErrors := l.ScanTokens()
	if len(lexErrors) > 0 {
		errs := make(ParseErrorList, 0, len(lexErrors))
		for _, le := range lexErrors {
			errs = append(errs, ParseError{
				Message:  le.Message,
				Location: SourceLocation{File: le.File, Line: le.Line, Column: le.Column},
			})
		}
		return nil, errs
	}

	p := NewWithSource(tokens, source)
	defs, parseErrors := p.Parse()
	if len(parseErrors) > 0 {
		return defs, ParseErrorList(parseErrors)
	}
	return defs, nil
}

// Parse parses the token stream and returns the definitions and any errors
func (p *Parser) Parse() ([]*FunctionDefinition, []ParseError) {
	defs := []*FunctionDefinition{}

	for !p.isAtEnd() {
		if p.check(lexer.TOKEN_FUN) {
			if def := p.parseFunction(); def != nil {
				defs = append(defs, def)
			}
		} else {
			p.addError(ParseError{
				Message:  fmt.Sprintf("Unexpected token: %s. Expected 'fun' keyword.", p.peek().Lexeme),
				Location: TokenToLocation(p.peek()),
			})
			p.synchronize()
		}
	}

	return defs, p.errors
}

// parseFunction parses a complete function definition:
//
//	fun name($v: type, ...) -> output: match <stmts> return <ret>;
func (p *Parser) parseFunction() *FunctionDefinition {
	startToken := p.peek()
	p.advance() // consume 'fun'

	sig := p.parseSignature(startToken)
	if sig == nil {
		p.synchronize()
		return nil
	}

	if !p.consume(lexer.TOKEN_COLON, "Expected ':' after function signature") {
		p.synchronize()
		return nil
	}

	def := &FunctionDefinition{
		Signature: sig,
		Body:      []StmtNode{},
		Location:  TokenToLocation(startToken),
	}

	// The match keyword is optional; a function may consist of a bare return
	p.match(lexer.TOKEN_MATCH)

	for !p.isAtEnd() && !p.check(lexer.TOKEN_RETURN) {
		stmt := p.parseStatement()
		if stmt == nil {
			p.synchronize()
			return nil
		}
		def.Body = append(def.Body, stmt)
	}

	ret := p.parseReturn()
	if ret == nil {
		p.synchronize()
		return nil
	}
	def.Return = ret

	if p.source != nil {
		end := p.previous().End
		if end > len(p.source) {
			end = len(p.source)
		}
		def.Source = string(p.source[startToken.Start:end])
	}

	return def
}

// parseSignature parses the function name, argument list, and output shape
func (p *Parser) parseSignature(startToken lexer.Token) *SignatureNode {
	if !p.check(lexer.TOKEN_IDENTIFIER) {
		p.addError(ParseError{
			Message:  "Expected function name after 'fun'",
			Location: TokenToLocation(p.peek()),
		})
		return nil
	}
	name := p.advance().Lexeme

	if !p.consume(lexer.TOKEN_LPAREN, "Expected '(' after function name") {
		return nil
	}

	args := []*ArgumentNode{}
	if !p.check(lexer.TOKEN_RPAREN) {
		for {
			arg := p.parseArgument()
			if arg == nil {
				return nil
			}
			args = append(args, arg)

			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
	}

	if !p.consume(lexer.TOKEN_RPAREN, "Expected ')' after argument list") {
		return nil
	}
	if !p.consume(lexer.TOKEN_ARROW, "Expected '->' after argument list") {
		return nil
	}

	output := p.parseOutput()
	if output == nil {
		return nil
	}

	return &SignatureNode{
		Name:     name,
		Args:     args,
		Output:   output,
		Location: TokenToLocation(startToken),
	}
}

// parseArgument parses a single typed parameter: $var: type
func (p *Parser) parseArgument() *ArgumentNode {
	if !p.check(lexer.TOKEN_VARIABLE) {
		p.addError(ParseError{
			Message:  fmt.Sprintf("Expected parameter variable, got '%s'", p.peek().Lexeme),
			Location: TokenToLocation(p.peek()),
		})
		return nil
	}
	varToken := p.advance()

	if !p.consume(lexer.TOKEN_COLON, "Expected ':' after parameter variable") {
		return nil
	}

	typeRef := p.parseTypeRef()
	if typeRef == nil {
		return nil
	}

	return &ArgumentNode{
		Variable: varToken.Literal.(string),
		Type:     typeRef,
		Location: TokenToLocation(varToken),
	}
}

// parseTypeRef parses a builtin value type or a schema label
func (p *Parser) parseTypeRef() TypeRefNode {
	switch {
	case p.check(lexer.TOKEN_BUILTIN):
		tok := p.advance()
		return &BuiltinType{Token: strings.ToLower(tok.Lexeme)}
	case p.check(lexer.TOKEN_IDENTIFIER):
		tok := p.advance()
		return &LabelType{Name: tok.Lexeme}
	default:
		p.addError(ParseError{
			Message:  fmt.Sprintf("Expected type reference, got '%s'", p.peek().Lexeme),
			Location: TokenToLocation(p.peek()),
		})
		return nil
	}
}

// parseOutput parses the declared output shape: a comma-separated list of
// type references (single row) or a braced list (stream)
func (p *Parser) parseOutput() OutputNode {
	if p.match(lexer.TOKEN_LBRACE) {
		types := []TypeRefNode{}
		for {
			t := p.parseTypeRef()
			if t == nil {
				return nil
			}
			types = append(types, t)
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
		if !p.consume(lexer.TOKEN_RBRACE, "Expected '}' after stream output types") {
			return nil
		}
		return &StreamOutput{Types: types}
	}

	types := []TypeRefNode{}
	for {
		t := p.parseTypeRef()
		if t == nil {
			return nil
		}
		types = append(types, t)
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}
	return &SingleOutput{Types: types}
}

// parseStatement parses one match-block statement
func (p *Parser) parseStatement() StmtNode {
	switch {
	case p.check(lexer.TOKEN_LET):
		return p.parseLet()
	case p.check(lexer.TOKEN_LPAREN):
		// Leading relation tuple: (role: $var, ...) isa relation_type;
		return p.parsePattern("", nil)
	case p.check(lexer.TOKEN_VARIABLE):
		return p.parseVariableStatement()
	default:
		p.addError(ParseError{
			Message:  fmt.Sprintf("Expected statement, got '%s'", p.peek().Lexeme),
			Location: TokenToLocation(p.peek()),
		})
		return nil
	}
}

// parseLet parses: let $a[, $b...] = expr;
func (p *Parser) parseLet() StmtNode {
	letToken := p.advance() // consume 'let'

	vars := []string{}
	for {
		if !p.check(lexer.TOKEN_VARIABLE) {
			p.addError(ParseError{
				Message:  "Expected variable after 'let'",
				Location: TokenToLocation(p.peek()),
			})
			return nil
		}
		vars = append(vars, p.advance().Literal.(string))
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}

	if !p.consume(lexer.TOKEN_EQUAL, "Expected '=' in let binding") {
		return nil
	}

	value := p.parseExpression()
	if value == nil {
		return nil
	}

	if !p.consume(lexer.TOKEN_SEMICOLON, "Expected ';' after let binding") {
		return nil
	}

	return &LetStmt{
		Vars:     vars,
		Value:    value,
		Location: TokenToLocation(letToken),
	}
}

// parseVariableStatement disambiguates statements that begin with a variable:
// a pattern subject ($x isa t, $x (role: ...), $x has attr $v) or a
// standalone comparison ($income >= $min)
func (p *Parser) parseVariableStatement() StmtNode {
	next := p.peekAhead(1).Type
	if next == lexer.TOKEN_ISA || next == lexer.TOKEN_HAS || next == lexer.TOKEN_LINKS {
		subjToken := p.advance()
		return p.parsePattern(subjToken.Literal.(string), &subjToken)
	}
	if next == lexer.TOKEN_LPAREN {
		subjToken := p.advance()
		relation := p.parseRelationTuple()
		if relation == nil {
			return nil
		}
		return p.parsePatternConstraints(subjToken.Literal.(string), relation, subjToken)
	}
	return p.parseComparison()
}

// parsePattern parses a pattern statement with an optional already-consumed subject
func (p *Parser) parsePattern(subject string, subjToken *lexer.Token) StmtNode {
	startToken := p.peek()
	if subjToken != nil {
		startToken = *subjToken
	}

	var relation *RelationTuple
	if p.check(lexer.TOKEN_LPAREN) {
		relation = p.parseRelationTuple()
		if relation == nil {
			return nil
		}
	}

	return p.parsePatternConstraints(subject, relation, startToken)
}

// parsePatternConstraints parses the comma-separated constraint list of a pattern
func (p *Parser) parsePatternConstraints(subject string, relation *RelationTuple, startToken lexer.Token) StmtNode {
	constraints := []ConstraintNode{}
	for {
		c := p.parseConstraint()
		if c == nil {
			return nil
		}
		constraints = append(constraints, c)
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}

	if !p.consume(lexer.TOKEN_SEMICOLON, "Expected ';' after pattern") {
		return nil
	}

	return &PatternStmt{
		Subject:     subject,
		Relation:    relation,
		Constraints: constraints,
		Location:    TokenToLocation(startToken),
	}
}

// parseConstraint parses a single isa/has/links constraint
func (p *Parser) parseConstraint() ConstraintNode {
	switch {
	case p.match(lexer.TOKEN_ISA):
		if !p.check(lexer.TOKEN_IDENTIFIER) {
			p.addError(ParseError{
				Message:  "Expected type name after 'isa'",
				Location: TokenToLocation(p.peek()),
			})
			return nil
		}
		return &IsaConstraint{TypeName: p.advance().Lexeme}

	case p.match(lexer.TOKEN_HAS):
		if !p.check(lexer.TOKEN_IDENTIFIER) {
			p.addError(ParseError{
				Message:  "Expected attribute name after 'has'",
				Location: TokenToLocation(p.peek()),
			})
			return nil
		}
		attr := p.advance().Lexeme
		value := p.parseExpression()
		if value == nil {
			return nil
		}
		return &HasConstraint{Attribute: attr, Value: value}

	case p.match(lexer.TOKEN_LINKS):
		relation := p.parseRelationTuple()
		if relation == nil {
			return nil
		}
		return &LinksConstraint{Relation: relation}

	default:
		p.addError(ParseError{
			Message:  fmt.Sprintf("Expected 'isa', 'has', or 'links', got '%s'", p.peek().Lexeme),
			Location: TokenToLocation(p.peek()),
		})
		return nil
	}
}

// parseRelationTuple parses: (role: $player, ...)
func (p *Parser) parseRelationTuple() *RelationTuple {
	if !p.consume(lexer.TOKEN_LPAREN, "Expected '(' to start relation tuple") {
		return nil
	}

	roles := []RolePlayer{}
	for {
		if !p.check(lexer.TOKEN_IDENTIFIER) {
			p.addError(ParseError{
				Message:  "Expected role name in relation tuple",
				Location: TokenToLocation(p.peek()),
			})
			return nil
		}
		role := p.advance().Lexeme

		if !p.consume(lexer.TOKEN_COLON, "Expected ':' after role name") {
			return nil
		}

		player := p.parseExpression()
		if player == nil {
			return nil
		}
		roles = append(roles, RolePlayer{Role: role, Player: player})

		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}

	if !p.consume(lexer.TOKEN_RPAREN, "Expected ')' after relation tuple") {
		return nil
	}

	return &RelationTuple{Roles: roles}
}

// parseComparison parses a standalone comparison statement
func (p *Parser) parseComparison() StmtNode {
	startToken := p.peek()

	expr := p.parseExpression()
	if expr == nil {
		return nil
	}

	bin, ok := expr.(*BinaryExpr)
	if !ok || !isComparisonOperator(bin.Operator) {
		p.addError(ParseError{
			Message:  "Expected comparison or pattern statement",
			Location: TokenToLocation(startToken),
		})
		return nil
	}

	if !p.consume(lexer.TOKEN_SEMICOLON, "Expected ';' after comparison") {
		return nil
	}

	return &ComparisonStmt{
		Left:     bin.Left,
		Operator: bin.Operator,
		Right:    bin.Right,
		Location: TokenToLocation(startToken),
	}
}

// reduceOperators is the closed set of aggregation operators
var reduceOperators = map[string]bool{
	"sum":    true,
	"count":  true,
	"max":    true,
	"min":    true,
	"mean":   true,
	"median": true,
	"std":    true,
}

// parseReturn parses the return clause: single (with optional selector),
// stream ({ $v }), or reduce (sum($v))
func (p *Parser) parseReturn() ReturnNode {
	retToken := p.peek()
	if !p.consume(lexer.TOKEN_RETURN, "Expected 'return'") {
		return nil
	}
	loc := TokenToLocation(retToken)

	// Stream return: return { $v, ... };
	if p.match(lexer.TOKEN_LBRACE) {
		vars := p.parseVariableList()
		if vars == nil {
			return nil
		}
		if !p.consume(lexer.TOKEN_RBRACE, "Expected '}' after stream return variables") {
			return nil
		}
		if !p.consume(lexer.TOKEN_SEMICOLON, "Expected ';' after return") {
			return nil
		}
		return &StreamReturn{Vars: vars, Location: loc}
	}

	// Reduce return: return sum($v);
	if p.check(lexer.TOKEN_IDENTIFIER) && reduceOperators[p.peek().Lexeme] && p.peekAhead(1).Type == lexer.TOKEN_LPAREN {
		op := p.advance().Lexeme
		p.advance() // consume '('
		if !p.check(lexer.TOKEN_VARIABLE) {
			p.addError(ParseError{
				Message:  fmt.Sprintf("Expected variable in %s(...)", op),
				Location: TokenToLocation(p.peek()),
			})
			return nil
		}
		variable := p.advance().Literal.(string)
		if !p.consume(lexer.TOKEN_RPAREN, "Expected ')' after reduce variable") {
			return nil
		}
		if !p.consume(lexer.TOKEN_SEMICOLON, "Expected ';' after return") {
			return nil
		}
		return &ReduceReturn{Operator: op, Variable: variable, Location: loc}
	}

	// Single return: return [first|last] $v, ...;
	selector := SelectorAny
	if p.match(lexer.TOKEN_FIRST) {
		selector = SelectorFirst
	} else if p.match(lexer.TOKEN_LAST) {
		selector = SelectorLast
	}

	vars := p.parseVariableList()
	if vars == nil {
		return nil
	}
	if !p.consume(lexer.TOKEN_SEMICOLON, "Expected ';' after return") {
		return nil
	}
	return &SingleReturn{Selector: selector, Vars: vars, Location: loc}
}

// parseVariableList parses one or more comma-separated variables
func (p *Parser) parseVariableList() []string {
	vars := []string{}
	for {
		if !p.check(lexer.TOKEN_VARIABLE) {
			p.addError(ParseError{
				Message:  fmt.Sprintf("Expected variable, got '%s'", p.peek().Lexeme),
				Location: TokenToLocation(p.peek()),
			})
			return nil
		}
		vars = append(vars, p.advance().Literal.(string))
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}
	return vars
}

// Helper methods for token manipulation

// isAtEnd checks if we're at the end of the token stream
func (p *Parser) isAtEnd() bool {
	if p.current >= len(p.tokens) {
		return true
	}
	return p.tokens[p.current].Type == lexer.TOKEN_EOF
}

// peek returns the current token without consuming it
func (p *Parser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // Return EOF
	}
	return p.tokens[p.current]
}

// peekAhead returns the token n positions ahead without consuming it
func (p *Parser) peekAhead(n int) lexer.Token {
	if p.current+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current+n]
}

// previous returns the previous token
func (p *Parser) previous() lexer.Token {
	if p.current > 0 {
		return p.tokens[p.current-1]
	}
	return p.tokens[0]
}

// advance consumes and returns the current token
func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// check checks if the current token is of the given type
func (p *Parser) check(tokenType lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tokenType
}

// match checks if the current token matches any of the given types
// If it matches, consumes the token and returns true
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, tokenType := range types {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}

// consume expects the current token to be of the given type, consuming it if
// so and recording an error otherwise
func (p *Parser) consume(tokenType lexer.TokenType, message string) bool {
	if p.check(tokenType) {
		p.advance()
		return true
	}
	p.addError(ParseError{
		Message:  message,
		Location: TokenToLocation(p.peek()),
	})
	return false
}

// addError records a parse error
func (p *Parser) addError(err ParseError) {
	p.errors = append(p.errors, err)
}

// synchronize skips tokens until the start of the next function definition,
// so one malformed definition does not abort its siblings
func (p *Parser) synchronize() {
	for !p.isAtEnd() && !p.check(lexer.TOKEN_FUN) {
		p.advance()
	}
}
