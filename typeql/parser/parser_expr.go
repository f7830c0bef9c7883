package parser

import (
	"fmt"

	"github.com/typeql-tools/funcmeta/typeql/lexer"
)

// Operator precedence levels (higher number = higher precedence)
const (
	PREC_NONE       = iota
	PREC_COMPARISON // < <= > >= == !=
	PREC_TERM       // + -
	PREC_FACTOR     // * / %
	PREC_PRIMARY    // literals, variables, calls, grouping
)

// parseExpression parses an expression with the minimum precedence
func (p *Parser) parseExpression() ExprNode {
	return p.parseExpressionWithPrecedence(PREC_NONE)
}

// parseExpressionWithPrecedence implements operator precedence climbing
func (p *Parser) parseExpressionWithPrecedence(minPrec int) ExprNode {
	left := p.parsePrimaryExpression()
	if left == nil {
		return nil
	}

	for {
		precedence := operatorPrecedence(p.peek().Type)
		if precedence == PREC_NONE || precedence < minPrec {
			break
		}

		opToken := p.advance()
		right := p.parseExpressionWithPrecedence(precedence + 1)
		if right == nil {
			p.addError(ParseError{
				Message:  fmt.Sprintf("Expected expression after '%s'", opToken.Lexeme),
				Location: TokenToLocation(opToken),
			})
			return nil
		}

		left = &BinaryExpr{
			Left:     left,
			Operator: opToken.Lexeme,
			Right:    right,
			Location: TokenToLocation(opToken),
		}
	}

	return left
}

// parsePrimaryExpression parses variables, literals, calls, and grouping
func (p *Parser) parsePrimaryExpression() ExprNode {
	startToken := p.peek()
	loc := TokenToLocation(startToken)

	switch {
	case p.check(lexer.TOKEN_VARIABLE):
		tok := p.advance()
		return &VariableExpr{Name: tok.Literal.(string), Location: loc}

	case p.check(lexer.TOKEN_INT_LITERAL), p.check(lexer.TOKEN_FLOAT_LITERAL), p.check(lexer.TOKEN_STRING_LITERAL):
		tok := p.advance()
		return &LiteralExpr{Value: tok.Literal, Location: loc}

	case p.check(lexer.TOKEN_TRUE):
		p.advance()
		return &LiteralExpr{Value: true, Location: loc}

	case p.check(lexer.TOKEN_FALSE):
		p.advance()
		return &LiteralExpr{Value: false, Location: loc}

	case p.check(lexer.TOKEN_IDENTIFIER) && p.peekAhead(1).Type == lexer.TOKEN_LPAREN:
		return p.parseCallExpression()

	case p.match(lexer.TOKEN_LPAREN):
		expr := p.parseExpression()
		if expr == nil {
			return nil
		}
		if !p.consume(lexer.TOKEN_RPAREN, "Expected ')' after expression") {
			return nil
		}
		return expr

	default:
		p.addError(ParseError{
			Message:  fmt.Sprintf("Expected expression, got '%s'", startToken.Lexeme),
			Location: loc,
		})
		return nil
	}
}

// parseCallExpression parses a function invocation: name(arg, ...)
func (p *Parser) parseCallExpression() ExprNode {
	nameToken := p.advance()
	p.advance() // consume '('

	args := []ExprNode{}
	if !p.check(lexer.TOKEN_RPAREN) {
		for {
			arg := p.parseExpression()
			if arg == nil {
				return nil
			}
			args = append(args, arg)
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
	}

	if !p.consume(lexer.TOKEN_RPAREN, "Expected ')' after call arguments") {
		return nil
	}

	return &CallExpr{
		Function:  nameToken.Lexeme,
		Arguments: args,
		Location:  TokenToLocation(nameToken),
	}
}

// operatorPrecedence maps infix token types to precedence levels
func operatorPrecedence(tt lexer.TokenType) int {
	switch tt {
	case lexer.TOKEN_EQUAL_EQUAL, lexer.TOKEN_BANG_EQUAL,
		lexer.TOKEN_LESS, lexer.TOKEN_LESS_EQUAL,
		lexer.TOKEN_GREATER, lexer.TOKEN_GREATER_EQUAL:
		return PREC_COMPARISON
	case lexer.TOKEN_PLUS, lexer.TOKEN_MINUS:
		return PREC_TERM
	case lexer.TOKEN_STAR, lexer.TOKEN_SLASH, lexer.TOKEN_PERCENT:
		return PREC_FACTOR
	default:
		return PREC_NONE
	}
}

// isComparisonOperator reports whether op is a comparison operator lexeme
func isComparisonOperator(op string) bool {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
		return true
	default:
		return false
	}
}
