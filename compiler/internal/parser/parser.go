// Package parser implements a recursive-descent parser that turns a
// token stream from internal/lexer into the AST defined in
// internal/ast, following the structure of the teacher's
// Parser{lx, tok}/next/at/accept/expect helpers. Unlike the teacher's
// line-oriented Stage-0 parser (which reads whole statements as
// opaque text between NEWLINE tokens), this parser builds a real
// expression tree with operator precedence, since Tiger's grammar has
// no statement/expression distinction at all: everything is an
// expression.
package parser

import (
	"fmt"

	"github.com/tigerlang/tigerc/compiler/internal/ast"
	"github.com/tigerlang/tigerc/compiler/internal/lexer"
	"github.com/tigerlang/tigerc/compiler/internal/symbol"
)

type Parser struct {
	lx    *lexer.Lexer
	tok   lexer.Token
	names *symbol.Table
}

func New(src string, names *symbol.Table) *Parser {
	p := &Parser{lx: lexer.New(src), names: names}
	p.next()
	return p
}

func (p *Parser) next()                       { p.tok = p.lx.Next() }
func (p *Parser) at(k lexer.TokKind) bool      { return p.tok.Kind == k }
func (p *Parser) pos() ast.Pos                 { return ast.Pos(p.tok.Pos) }
func (p *Parser) accept(k lexer.TokKind) bool {
	if p.at(k) {
		p.next()
		return true
	}
	return false
}
func (p *Parser) expect(k lexer.TokKind) (lexer.Token, error) {
	if !p.at(k) {
		return p.tok, fmt.Errorf("parse error: expected %v, got %v (%q) at byte %d", k, p.tok.Kind, p.tok.Lex, p.tok.Pos)
	}
	t := p.tok
	p.next()
	return t, nil
}

// Parse parses a whole program: Tiger has no declarations outside a
// single top-level expression (spec.md's Program).
func (p *Parser) Parse() (*ast.Program, error) {
	e, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.TokEOF) {
		return nil, fmt.Errorf("parse error: unexpected trailing token %v at byte %d", p.tok.Kind, p.tok.Pos)
	}
	return &ast.Program{Body: e}, nil
}

/*** EXPRESSIONS, lowest to highest precedence ***/

func (p *Parser) parseExp() (ast.Exp, error) {
	return p.parseOr()
}

// a | b desugars to `if a then 1 else b`, matching the reference
// language's short-circuit boolean-or encoding (spec.md's Oper union
// has no OR operator of its own).
func (p *Parser) parseOr() (ast.Exp, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.TokOr) {
		at := p.pos()
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.IfExp{Test: left, Then: &ast.IntExp{Value: 1, At: at}, Else: right, At: at}
	}
	return left, nil
}

// a & b desugars to `if a then b else 0`.
func (p *Parser) parseAnd() (ast.Exp, error) {
	left, err := p.parseCompare()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.TokAnd) {
		at := p.pos()
		p.next()
		right, err := p.parseCompare()
		if err != nil {
			return nil, err
		}
		left = &ast.IfExp{Test: left, Then: right, Else: &ast.IntExp{Value: 0, At: at}, At: at}
	}
	return left, nil
}

var compareOps = map[lexer.TokKind]ast.Oper{
	lexer.TokEq:  ast.Eq,
	lexer.TokNeq: ast.Neq,
	lexer.TokLt:  ast.Lt,
	lexer.TokLe:  ast.Le,
	lexer.TokGt:  ast.Gt,
	lexer.TokGe:  ast.Ge,
}

// Tiger's comparisons are non-associative in the reference grammar;
// this parser accepts a chain left-to-right rather than rejecting a
// second comparison, which only matters for pathological input no
// well-formed program produces.
func (p *Parser) parseCompare() (ast.Exp, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := compareOps[p.tok.Kind]
		if !ok {
			return left, nil
		}
		at := p.pos()
		p.next()
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		left = &ast.OpExp{Left: left, Oper: op, Right: right, At: at}
	}
}

func (p *Parser) parseAdd() (ast.Exp, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.TokPlus) || p.at(lexer.TokMinus) {
		op := ast.Plus
		if p.at(lexer.TokMinus) {
			op = ast.Minus
		}
		at := p.pos()
		p.next()
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = &ast.OpExp{Left: left, Oper: op, Right: right, At: at}
	}
	return left, nil
}

func (p *Parser) parseMul() (ast.Exp, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.TokStar) || p.at(lexer.TokSlash) {
		op := ast.Times
		if p.at(lexer.TokSlash) {
			op = ast.Divide
		}
		at := p.pos()
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.OpExp{Left: left, Oper: op, Right: right, At: at}
	}
	return left, nil
}

// Unary minus desugars to `0 - e`, the classic Tiger encoding (there
// is no dedicated unary-minus AST node).
func (p *Parser) parseUnary() (ast.Exp, error) {
	if p.at(lexer.TokMinus) {
		at := p.pos()
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.OpExp{Left: &ast.IntExp{Value: 0, At: at}, Oper: ast.Minus, Right: operand, At: at}, nil
	}
	return p.parsePrimaryWithAssign()
}

// parsePrimaryWithAssign handles the one place an lvalue and a full
// expression fork: `lvalue := exp`. Every other primary form parses
// straight through.
func (p *Parser) parsePrimaryWithAssign() (ast.Exp, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if v, ok := asLValueExp(e); ok && p.at(lexer.TokAssign) {
		at := p.pos()
		p.next()
		rhs, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		return &ast.AssignExp{Var: v, Exp: rhs, At: at}, nil
	}
	return e, nil
}

func asLValueExp(e ast.Exp) (ast.Var, bool) {
	ve, ok := e.(*ast.VarExp)
	if !ok {
		return nil, false
	}
	return ve.Var, true
}

func (p *Parser) parsePrimary() (ast.Exp, error) {
	at := p.pos()
	switch {
	case p.at(lexer.TokNil):
		p.next()
		return &ast.NilExp{At: at}, nil

	case p.at(lexer.TokInt):
		lex := p.tok.Lex
		p.next()
		return &ast.IntExp{Value: parseIntLiteral(lex), At: at}, nil

	case p.at(lexer.TokStr):
		lex := p.tok.Lex
		p.next()
		return &ast.StringExp{Value: lex, At: at}, nil

	case p.at(lexer.TokBreak):
		p.next()
		return &ast.BreakExp{At: at}, nil

	case p.at(lexer.TokLParen):
		return p.parseSeq()

	case p.at(lexer.TokIf):
		return p.parseIf()

	case p.at(lexer.TokWhile):
		return p.parseWhile()

	case p.at(lexer.TokFor):
		return p.parseFor()

	case p.at(lexer.TokLet):
		return p.parseLet()

	case p.at(lexer.TokIdent):
		return p.parseIdentLed()

	default:
		return nil, fmt.Errorf("parse error: unexpected token %v at byte %d", p.tok.Kind, p.tok.Pos)
	}
}

// parseSeq parses a parenthesized sequence `(e1; e2; ...; en)`,
// including the empty `()` (UNIT) and singleton `(e)` (just e, not
// wrapped) cases.
func (p *Parser) parseSeq() (ast.Exp, error) {
	at := p.pos()
	if _, err := p.expect(lexer.TokLParen); err != nil {
		return nil, err
	}
	if p.accept(lexer.TokRParen) {
		return &ast.SeqExp{At: at}, nil
	}
	var entries []ast.SeqEntry
	for {
		eat := p.pos()
		e, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.SeqEntry{Exp: e, At: eat})
		if p.accept(lexer.TokSemicolon) {
			continue
		}
		break
	}
	if _, err := p.expect(lexer.TokRParen); err != nil {
		return nil, err
	}
	if len(entries) == 1 {
		return entries[0].Exp, nil
	}
	return &ast.SeqExp{Entries: entries, At: at}, nil
}

func (p *Parser) parseIf() (ast.Exp, error) {
	at := p.pos()
	if _, err := p.expect(lexer.TokIf); err != nil {
		return nil, err
	}
	test, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokThen); err != nil {
		return nil, err
	}
	then, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	var elseExp ast.Exp
	if p.accept(lexer.TokElse) {
		elseExp, err = p.parseExp()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfExp{Test: test, Then: then, Else: elseExp, At: at}, nil
}

func (p *Parser) parseWhile() (ast.Exp, error) {
	at := p.pos()
	if _, err := p.expect(lexer.TokWhile); err != nil {
		return nil, err
	}
	test, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokDo); err != nil {
		return nil, err
	}
	body, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	return &ast.WhileExp{Test: test, Body: body, At: at}, nil
}

func (p *Parser) parseFor() (ast.Exp, error) {
	at := p.pos()
	if _, err := p.expect(lexer.TokFor); err != nil {
		return nil, err
	}
	idTok, err := p.expect(lexer.TokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokAssign); err != nil {
		return nil, err
	}
	lo, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokTo); err != nil {
		return nil, err
	}
	hi, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokDo); err != nil {
		return nil, err
	}
	body, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	name := ast.Name{Sym: p.names.Intern(idTok.Lex), At: ast.Pos(idTok.Pos)}
	return &ast.ForExp{Var: name, Lo: lo, Hi: hi, Body: body, At: at}, nil
}

func (p *Parser) parseLet() (ast.Exp, error) {
	at := p.pos()
	if _, err := p.expect(lexer.TokLet); err != nil {
		return nil, err
	}
	decs, err := p.parseDecs()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokIn); err != nil {
		return nil, err
	}
	var body ast.Exp = &ast.SeqExp{At: p.pos()}
	if !p.at(lexer.TokEnd) {
		body, err = p.parseLetBody()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.TokEnd); err != nil {
		return nil, err
	}
	return &ast.LetExp{Decs: decs, Body: body, At: at}, nil
}

// parseLetBody parses the `exp1; ...; expn` sequence between `in` and
// `end` without the surrounding parens parseSeq expects.
func (p *Parser) parseLetBody() (ast.Exp, error) {
	at := p.pos()
	var entries []ast.SeqEntry
	for {
		eat := p.pos()
		e, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.SeqEntry{Exp: e, At: eat})
		if p.accept(lexer.TokSemicolon) {
			continue
		}
		break
	}
	if len(entries) == 1 {
		return entries[0].Exp, nil
	}
	return &ast.SeqExp{Entries: entries, At: at}, nil
}

// parseIdentLed resolves the four ways an expression can start with an
// identifier: a bare/chained lvalue, a function call, a record
// literal, or an array creation. A record literal is recognised by the
// `{` right after the identifier; an array creation is only
// distinguishable from a subscript lvalue by lookahead past `[ exp ]`.
func (p *Parser) parseIdentLed() (ast.Exp, error) {
	idTok, err := p.expect(lexer.TokIdent)
	if err != nil {
		return nil, err
	}
	at := ast.Pos(idTok.Pos)
	sym := p.names.Intern(idTok.Lex)

	if p.at(lexer.TokLParen) {
		return p.parseCall(sym, at)
	}
	if p.at(lexer.TokLBrace) {
		return p.parseRecord(sym, at)
	}
	if p.at(lexer.TokLBrack) {
		return p.parseBracketLed(sym, at)
	}

	v, err := p.parseVarTail(&ast.SimpleVar{Sym: sym, At: at})
	if err != nil {
		return nil, err
	}
	return &ast.VarExp{Var: v, At: at}, nil
}

func (p *Parser) parseCall(fn symbol.Symbol, at ast.Pos) (ast.Exp, error) {
	if _, err := p.expect(lexer.TokLParen); err != nil {
		return nil, err
	}
	var args []ast.Exp
	if !p.at(lexer.TokRParen) {
		for {
			arg, err := p.parseExp()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.accept(lexer.TokComma) {
				continue
			}
			break
		}
	}
	if _, err := p.expect(lexer.TokRParen); err != nil {
		return nil, err
	}
	return &ast.CallExp{Func: fn, Args: args, At: at}, nil
}

func (p *Parser) parseRecord(typ symbol.Symbol, at ast.Pos) (ast.Exp, error) {
	if _, err := p.expect(lexer.TokLBrace); err != nil {
		return nil, err
	}
	var fields []ast.FieldInit
	if !p.at(lexer.TokRBrace) {
		for {
			fieldAt := p.pos()
			fieldTok, err := p.expect(lexer.TokIdent)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TokEq); err != nil {
				return nil, err
			}
			val, err := p.parseExp()
			if err != nil {
				return nil, err
			}
			fields = append(fields, ast.FieldInit{
				Sym: ast.Name{Sym: p.names.Intern(fieldTok.Lex), At: fieldAt},
				Exp: val,
				At:  fieldAt,
			})
			if p.accept(lexer.TokComma) {
				continue
			}
			break
		}
	}
	if _, err := p.expect(lexer.TokRBrace); err != nil {
		return nil, err
	}
	return &ast.RecordExp{Type: typ, Fields: fields, At: at}, nil
}

// parseBracketLed disambiguates `id[exp]` (a subscript lvalue, the
// start of a chained lvalue expression) from `id[exp] of init` (array
// creation) by looking past the closing bracket for `of`.
func (p *Parser) parseBracketLed(typ symbol.Symbol, at ast.Pos) (ast.Exp, error) {
	if _, err := p.expect(lexer.TokLBrack); err != nil {
		return nil, err
	}
	size, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokRBrack); err != nil {
		return nil, err
	}
	if p.accept(lexer.TokOf) {
		init, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		return &ast.ArrayExp{Type: typ, Size: size, Init: init, At: at}, nil
	}

	v, err := p.parseVarTail(&ast.SubscriptVar{Base: &ast.SimpleVar{Sym: typ, At: at}, Index: size, At: at})
	if err != nil {
		return nil, err
	}
	return &ast.VarExp{Var: v, At: at}, nil
}

// parseVarTail consumes any trailing `.field` / `[exp]` chain onto an
// already-parsed lvalue base.
func (p *Parser) parseVarTail(base ast.Var) (ast.Var, error) {
	for {
		switch {
		case p.at(lexer.TokDot):
			at := p.pos()
			p.next()
			fieldTok, err := p.expect(lexer.TokIdent)
			if err != nil {
				return nil, err
			}
			base = &ast.FieldVar{Base: base, Sym: p.names.Intern(fieldTok.Lex), At: at}
		case p.at(lexer.TokLBrack):
			at := p.pos()
			p.next()
			idx, err := p.parseExp()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TokRBrack); err != nil {
				return nil, err
			}
			base = &ast.SubscriptVar{Base: base, Index: idx, At: at}
		default:
			return base, nil
		}
	}
}

func parseIntLiteral(s string) int64 {
	var v int64
	for _, r := range s {
		v = v*10 + int64(r-'0')
	}
	return v
}

/*** DECLARATIONS ***/

// parseDecs parses the declaration sequence between `let` and `in`,
// grouping consecutive type declarations and consecutive function
// declarations into the single TypeDec/FunctionDec blocks spec.md
// §4.1/§4.2 operate on (mutually recursive groups must be resolved
// together, so adjacent same-kind declarations are not separate decs).
func (p *Parser) parseDecs() ([]ast.Dec, error) {
	var decs []ast.Dec
	for {
		switch {
		case p.at(lexer.TokType):
			block, err := p.parseTypeDecBlock()
			if err != nil {
				return nil, err
			}
			decs = append(decs, block)
		case p.at(lexer.TokFunction):
			block, err := p.parseFunctionDecBlock()
			if err != nil {
				return nil, err
			}
			decs = append(decs, block)
		case p.at(lexer.TokVar):
			d, err := p.parseVarDec()
			if err != nil {
				return nil, err
			}
			decs = append(decs, d)
		default:
			return decs, nil
		}
	}
}

func (p *Parser) parseTypeDecBlock() (*ast.TypeDec, error) {
	at := p.pos()
	var types []ast.Typedec
	for p.at(lexer.TokType) {
		tat := p.pos()
		p.next()
		nameTok, err := p.expect(lexer.TokIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokEq); err != nil {
			return nil, err
		}
		body, err := p.parseTyBody()
		if err != nil {
			return nil, err
		}
		types = append(types, ast.Typedec{
			Name: ast.Name{Sym: p.names.Intern(nameTok.Lex), At: ast.Pos(nameTok.Pos)},
			Body: body,
			At:   tat,
		})
	}
	return &ast.TypeDec{Types: types, At: at}, nil
}

func (p *Parser) parseTyBody() (ast.TyBody, error) {
	at := p.pos()
	switch {
	case p.at(lexer.TokArray):
		p.next()
		if _, err := p.expect(lexer.TokOf); err != nil {
			return nil, err
		}
		idTok, err := p.expect(lexer.TokIdent)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayTy{Sym: p.names.Intern(idTok.Lex), At: at}, nil

	case p.at(lexer.TokLBrace):
		p.next()
		fields, err := p.parseTyFields(lexer.TokRBrace)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokRBrace); err != nil {
			return nil, err
		}
		return &ast.RecordTy{Fields: fields}, nil

	case p.at(lexer.TokIdent):
		idTok, err := p.expect(lexer.TokIdent)
		if err != nil {
			return nil, err
		}
		return &ast.NameTy{Sym: p.names.Intern(idTok.Lex), At: at}, nil

	default:
		return nil, fmt.Errorf("parse error: expected a type body at byte %d", p.tok.Pos)
	}
}

func (p *Parser) parseTyFields(closer lexer.TokKind) ([]ast.Field, error) {
	var fields []ast.Field
	if p.at(closer) {
		return fields, nil
	}
	for {
		nameTok, err := p.expect(lexer.TokIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokColon); err != nil {
			return nil, err
		}
		typTok, err := p.expect(lexer.TokIdent)
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.Field{
			Name: ast.Name{Sym: p.names.Intern(nameTok.Lex), At: ast.Pos(nameTok.Pos)},
			Type: p.names.Intern(typTok.Lex),
		})
		if p.accept(lexer.TokComma) {
			continue
		}
		break
	}
	return fields, nil
}

func (p *Parser) parseFunctionDecBlock() (*ast.FunctionDec, error) {
	at := p.pos()
	var funs []ast.FunDec
	for p.at(lexer.TokFunction) {
		p.next()
		nameTok, err := p.expect(lexer.TokIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokLParen); err != nil {
			return nil, err
		}
		params, err := p.parseTyFields(lexer.TokRParen)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokRParen); err != nil {
			return nil, err
		}
		var result *ast.Name
		if p.accept(lexer.TokColon) {
			typTok, err := p.expect(lexer.TokIdent)
			if err != nil {
				return nil, err
			}
			r := ast.Name{Sym: p.names.Intern(typTok.Lex), At: ast.Pos(typTok.Pos)}
			result = &r
		}
		if _, err := p.expect(lexer.TokEq); err != nil {
			return nil, err
		}
		body, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		funs = append(funs, ast.FunDec{
			Name:   ast.Name{Sym: p.names.Intern(nameTok.Lex), At: ast.Pos(nameTok.Pos)},
			Params: params,
			Result: result,
			Body:   body,
		})
	}
	return &ast.FunctionDec{Funs: funs, At: at}, nil
}

func (p *Parser) parseVarDec() (*ast.VarDec, error) {
	at := p.pos()
	if _, err := p.expect(lexer.TokVar); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.TokIdent)
	if err != nil {
		return nil, err
	}
	var typ *symbol.Symbol
	if p.accept(lexer.TokColon) {
		typTok, err := p.expect(lexer.TokIdent)
		if err != nil {
			return nil, err
		}
		s := p.names.Intern(typTok.Lex)
		typ = &s
	}
	if _, err := p.expect(lexer.TokAssign); err != nil {
		return nil, err
	}
	init, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	return &ast.VarDec{
		Name: ast.Name{Sym: p.names.Intern(nameTok.Lex), At: ast.Pos(nameTok.Pos)},
		Type: typ,
		Init: init,
		At:   at,
	}, nil
}
