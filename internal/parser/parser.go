// Package parser implements JAL's recursive-descent parser (spec §4.1).
// Grounded on the teacher's internal/parser: a Parser struct holding a
// token cursor, curToken/peekToken helpers, and per-construct
// parseXxx methods — simplified from the teacher's Pratt-table dispatch
// to a direct precedence-climb over a small, fixed operator set, per
// spec §4.1's explicit description ("recursive-descent with
// operator-precedence... between primaries using the table above").
package parser

import (
	"strconv"
	"strings"

	"github.com/jal-lang/jal/internal/ast"
	"github.com/jal-lang/jal/internal/errors"
	"github.com/jal-lang/jal/internal/lexer"
	"github.com/jal-lang/jal/internal/token"
	"github.com/jal-lang/jal/internal/types"
)

// Parser turns a token stream into a Program. Parser errors are fatal and
// immediate (spec §4.1: "There is no recovery") — ParseProgram stops and
// returns the first error it hits.
type Parser struct {
	tokens []token.Token
	pos    int
}

// New builds a Parser over the full token stream produced by l.
func New(l *lexer.Lexer) *Parser {
	return &Parser{tokens: l.Tokenize()}
}

// NewFromTokens builds a Parser directly over an externally supplied token
// stream, matching spec §6's "Token stream contract" (input to core).
func NewFromTokens(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) cur() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return token.Token{Type: token.EOF}
}

func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return token.Token{Type: token.EOF}
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) expect(t token.Type) (token.Token, error) {
	if p.cur().Type != t {
		return token.Token{}, errors.NewUnexpectedToken(t.String(), p.cur().Type.String())
	}
	return p.advance(), nil
}

// ParseProgram parses the full token stream into a Program, then runs the
// advisory type-inference pass described in spec §4.1. It returns the
// first fatal parse error encountered, if any.
func ParseProgram(l *lexer.Lexer) (*ast.Program, error) {
	return New(l).ParseProgram()
}

// ParseProgram parses the parser's token stream into a Program.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for p.cur().Type != token.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Body = append(prog.Body, stmt)
	}
	if err := inferProgram(prog); err != nil {
		return nil, err
	}
	return prog, nil
}

// parseStatement dispatches on the current token, following the keyword/
// lookahead rules of spec §4.1.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur().Type {
	case token.LET, token.CONST:
		return p.parseVariableDeclaration()
	case token.FN:
		return p.parseFunctionDeclaration()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.SCOPE_OPEN:
		return p.parseBlockStatement()
	case token.VARIABLE:
		if p.peek().Type == token.ASSIGN_EQUAL {
			return p.parseAssignmentStatement()
		}
		if p.peek().Type == token.LIST_PUSH {
			return p.parseListPushStatement()
		}
		expr, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if _, isIndex := expr.(*ast.IndexAccess); isIndex && p.cur().Type == token.ASSIGN_EQUAL {
			p.advance() // =
			val, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			return &ast.AssignmentStatement{Target: expr, Value: val}, nil
		}
		return &ast.ExpressionStatement{Expr: expr}, nil
	default:
		expr, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Expr: expr}, nil
	}
}

func (p *Parser) parseVariableDeclaration() (ast.Statement, error) {
	mutable := p.cur().Type == token.LET
	p.advance() // let | const

	nameTok, err := p.expect(token.VARIABLE)
	if err != nil {
		return nil, err
	}

	decl := &ast.VariableDeclaration{Name: nameTok.Literal, Mutable: mutable}

	switch p.cur().Type {
	case token.INFER_TYPE:
		p.advance()
		init, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		decl.Initializer = init
	case token.ASSIGN_COLON:
		p.advance()
		typ, err := p.parseTypeAnnotation()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.ASSIGN_EQUAL); err != nil {
			return nil, err
		}
		init, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		decl.TypeAnnotation = &typ
		decl.Initializer = init
	default:
		return nil, errors.NewUnexpectedToken("INFER_TYPE or ASSIGN_COLON", p.cur().Type.String())
	}

	return decl, nil
}

func (p *Parser) parseTypeAnnotation() (types.TypeAnnotation, error) {
	tok, err := p.expect(token.TYPE)
	if err != nil {
		return types.TypeAnnotation{}, err
	}
	switch tok.Literal {
	case "int":
		return types.IntType(32), nil
	case "i8":
		return types.IntType(8), nil
	case "i16":
		return types.IntType(16), nil
	case "i32":
		return types.IntType(32), nil
	case "i64":
		return types.IntType(64), nil
	case "float":
		return types.FloatType(32), nil
	case "f32":
		return types.FloatType(32), nil
	case "f64":
		return types.FloatType(64), nil
	case "bool":
		return types.BoolType(), nil
	case "string":
		return types.StringType(), nil
	case "void":
		return types.VoidType(), nil
	case "list":
		return types.ListType(types.VoidType()), nil
	default:
		return types.TypeAnnotation{}, &errors_ParseError{msg: "unknown type name: " + tok.Literal}
	}
}

// errors_ParseError is the parser's ad hoc error for an unknown type name or
// a malformed literal; callers see it only through the error interface.
type errors_ParseError struct{ msg string }

func (e *errors_ParseError) Error() string { return e.msg }

func (p *Parser) parseFunctionDeclaration() (ast.Statement, error) {
	p.advance() // fn
	nameTok, err := p.expect(token.VARIABLE)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.FN_OPEN_PARAM); err != nil {
		return nil, err
	}

	var params []ast.Parameter
	for p.cur().Type != token.FN_END_PARAM {
		pname, err := p.expect(token.VARIABLE)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.ASSIGN_COLON); err != nil {
			return nil, err
		}
		ptyp, err := p.parseTypeAnnotation()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Parameter{Name: pname.Literal, Type: ptyp})
		if p.cur().Type == token.COMMA {
			p.advance()
		}
	}
	if _, err := p.expect(token.FN_END_PARAM); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN_COLON); err != nil {
		return nil, err
	}
	retType, err := p.parseTypeAnnotation()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDeclaration{
		Name:       nameTok.Literal,
		Params:     params,
		ReturnType: retType,
		Body:       body.(*ast.BlockStatement),
	}, nil
}

func (p *Parser) parseReturnStatement() (ast.Statement, error) {
	p.advance() // return
	if p.cur().Type == token.SCOPE_END || p.cur().Type == token.EOF {
		return &ast.ReturnStatement{}, nil
	}
	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Argument: expr}, nil
}

func (p *Parser) parseIfStatement() (ast.Statement, error) {
	p.advance() // if
	if _, err := p.expect(token.FN_OPEN_PARAM); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.FN_END_PARAM); err != nil {
		return nil, err
	}
	cons, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	ifStmt := &ast.IfStatement{Condition: cond, Consequent: cons.(*ast.BlockStatement)}
	if p.cur().Type == token.ELSE {
		p.advance()
		alt, err := p.parseBlockStatement()
		if err != nil {
			return nil, err
		}
		ifStmt.Alternate = alt.(*ast.BlockStatement)
	}
	return ifStmt, nil
}

func (p *Parser) parseWhileStatement() (ast.Statement, error) {
	p.advance() // while
	if _, err := p.expect(token.FN_OPEN_PARAM); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.FN_END_PARAM); err != nil {
		return nil, err
	}
	body, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Condition: cond, Body: body.(*ast.BlockStatement)}, nil
}

func (p *Parser) parseForStatement() (ast.Statement, error) {
	p.advance() // for
	nameTok, err := p.expect(token.VARIABLE)
	if err != nil {
		return nil, err
	}
	var isIndex bool
	switch p.cur().Type {
	case token.OF:
		isIndex = true
		p.advance()
	case token.IN:
		isIndex = false
		p.advance()
	default:
		return nil, errors.NewUnexpectedToken("OF or IN", p.cur().Type.String())
	}
	iterable, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	return &ast.ForStatement{Variable: nameTok.Literal, IsIndex: isIndex, Iterable: iterable, Body: body.(*ast.BlockStatement)}, nil
}

func (p *Parser) parseBlockStatement() (ast.Statement, error) {
	if _, err := p.expect(token.SCOPE_OPEN); err != nil {
		return nil, err
	}
	block := &ast.BlockStatement{}
	for p.cur().Type != token.SCOPE_END {
		if p.cur().Type == token.EOF {
			return nil, errors.NewUnexpectedToken("SCOPE_END", "EOF")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Body = append(block.Body, stmt)
	}
	p.advance() // }
	return block, nil
}

func (p *Parser) parseAssignmentStatement() (ast.Statement, error) {
	target, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN_EQUAL); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return &ast.AssignmentStatement{Target: target, Value: value}, nil
}

func (p *Parser) parseListPushStatement() (ast.Statement, error) {
	target, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LIST_PUSH); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return &ast.ListPushStatement{Target: target, Value: value}, nil
}

// Precedence levels, per spec §4.1's table plus the recommended resolution
// of the Open Question on comparison precedence (spec §9: assign
// comparisons a level below arithmetic so `a + b < c * d` parses as
// `(a+b) < (c*d)`).
const (
	precLowest = iota
	precComparison // == != < <= > >=   (level 1)
	precAdditive   // + -               (level 2)
	precMultiplicative
)

var binaryPrecedence = map[token.Type]int{
	token.EQUAL_EQUAL:   precComparison,
	token.NOT_EQUAL:     precComparison,
	token.LESS_THAN:     precComparison,
	token.LESS_EQUAL:    precComparison,
	token.GREATER_THAN:  precComparison,
	token.GREATER_EQUAL: precComparison,
	token.PLUS:          precAdditive,
	token.MINUS:         precAdditive,
	token.MULTIPLY:      precMultiplicative,
	token.DIVIDE:        precMultiplicative,
	token.MOD:           precMultiplicative,
}

var binaryOpText = map[token.Type]string{
	token.EQUAL_EQUAL:   "==",
	token.NOT_EQUAL:     "!=",
	token.LESS_THAN:     "<",
	token.LESS_EQUAL:    "<=",
	token.GREATER_THAN:  ">",
	token.GREATER_EQUAL: ">=",
	token.PLUS:          "+",
	token.MINUS:         "-",
	token.MULTIPLY:      "*",
	token.DIVIDE:        "/",
	token.MOD:           "%",
}

// parseExpression is the left-associative precedence climb described in
// spec §4.1.
func (p *Parser) parseExpression(minPrec int) (ast.Expression, error) {
	left, err := p.parsePrimaryWithSuffixes()
	if err != nil {
		return nil, err
	}
	for {
		prec, ok := binaryPrecedence[p.cur().Type]
		if !ok || prec <= minPrec {
			return left, nil
		}
		opTok := p.advance()
		right, err := p.parseExpression(prec)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Left: left, Op: binaryOpText[opTok.Type], Right: right}
	}
}

// parsePrimaryWithSuffixes parses a primary expression followed by zero or
// more left-to-right index-access suffixes (spec §4.1).
func (p *Parser) parsePrimaryWithSuffixes() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == token.BRACKET_OPEN {
		p.advance()
		idx, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.BRACKET_CLOSE); err != nil {
			return nil, err
		}
		expr = &ast.IndexAccess{Object: expr, Index: idx}
	}
	return expr, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.cur()
	switch tok.Type {
	case token.VALUE:
		p.advance()
		return parseLiteral(tok.Literal)
	case token.MINUS:
		p.advance()
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpression{Left: &ast.Literal{Value: int64(0)}, Op: "-", Right: operand}, nil
	case token.FN_OPEN_PARAM:
		p.advance()
		expr, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.FN_END_PARAM); err != nil {
			return nil, err
		}
		return expr, nil
	case token.BRACKET_OPEN:
		return p.parseListExpression()
	case token.VARIABLE:
		p.advance()
		if p.cur().Type == token.FN_OPEN_PARAM {
			return p.parseCallArgs(tok.Literal)
		}
		return &ast.Variable{Name: tok.Literal}, nil
	default:
		return nil, errors.NewUnexpectedToken("expression", tok.Type.String())
	}
}

func (p *Parser) parseCallArgs(callee string) (ast.Expression, error) {
	p.advance() // (
	var args []ast.Expression
	for p.cur().Type != token.FN_END_PARAM {
		arg, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur().Type == token.COMMA {
			p.advance()
		}
	}
	if _, err := p.expect(token.FN_END_PARAM); err != nil {
		return nil, err
	}
	return &ast.FunctionCallExpression{Callee: callee, Args: args}, nil
}

func (p *Parser) parseListExpression() (ast.Expression, error) {
	p.advance() // [
	var elems []ast.Expression
	for p.cur().Type != token.BRACKET_CLOSE {
		e, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.cur().Type == token.COMMA {
			p.advance()
		}
	}
	if _, err := p.expect(token.BRACKET_CLOSE); err != nil {
		return nil, err
	}
	return &ast.ListExpression{Elements: elems}, nil
}

// parseLiteral classifies a VALUE token's lexeme into a Literal node. A
// leading '"' marks a (lexer-requoted) string; "true"/"false"/"null" are
// the reserved value keywords; anything else is a number.
func parseLiteral(lit string) (ast.Expression, error) {
	switch lit {
	case "true":
		return &ast.Literal{Value: true}, nil
	case "false":
		return &ast.Literal{Value: false}, nil
	case "null":
		return &ast.Literal{Value: nil}, nil
	}
	if strings.HasPrefix(lit, "\"") {
		unquoted, err := strconv.Unquote(lit)
		if err != nil {
			return nil, &errors_ParseError{msg: "malformed string literal: " + lit}
		}
		return &ast.Literal{Value: unquoted}, nil
	}
	if strings.Contains(lit, ".") {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, &errors_ParseError{msg: "malformed number literal: " + lit}
		}
		return &ast.Literal{Value: f}, nil
	}
	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return nil, &errors_ParseError{msg: "malformed number literal: " + lit}
	}
	return &ast.Literal{Value: n}, nil
}
