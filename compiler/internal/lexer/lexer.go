package lexer

import (
	"strings"
	"unicode"

	"github.com/smasher164/xid"
	"github.com/tigerlang/tigerc/compiler/internal/diag"
)

// Lexer scans Tiger source into tokens. Unlike the line-oriented
// Stage-0 lexer this is grounded on, Tiger has no significant
// indentation: blocks are delimited by keywords (let...in...end) and
// parens, so there is no INDENT/DEDENT/NEWLINE bookkeeping here at all.
type Lexer struct {
	src []rune
	// byteOff[i] is the byte offset of src[i] in the original string,
	// so Pos values survive multi-byte UTF-8 runes.
	byteOff []int
	i       int
}

func New(src string) *Lexer {
	runes := []rune(src)
	offsets := make([]int, len(runes)+1)
	b := 0
	for i, r := range runes {
		offsets[i] = b
		b += len(string(r))
	}
	offsets[len(runes)] = b
	return &Lexer{src: runes, byteOff: offsets}
}

func (lx *Lexer) pos() diag.Pos { return diag.Pos(lx.byteOff[lx.i]) }

func (lx *Lexer) peek() (rune, bool) {
	if lx.i >= len(lx.src) {
		return 0, false
	}
	return lx.src[lx.i], true
}

func (lx *Lexer) peekAt(offset int) (rune, bool) {
	j := lx.i + offset
	if j < 0 || j >= len(lx.src) {
		return 0, false
	}
	return lx.src[j], true
}

func (lx *Lexer) advance() (rune, bool) {
	ch, ok := lx.peek()
	if !ok {
		return 0, false
	}
	lx.i++
	return ch, true
}

func (lx *Lexer) match(expect rune) bool {
	ch, ok := lx.peek()
	if ok && ch == expect {
		lx.advance()
		return true
	}
	return false
}

func (lx *Lexer) atEOF() bool { return lx.i >= len(lx.src) }

func (lx *Lexer) make(kind TokKind, lex string, pos diag.Pos) Token {
	return Token{Kind: kind, Lex: lex, Pos: pos}
}

// Next returns the next token. It never panics on malformed input; an
// unrecognized byte is skipped and lexing resumes, matching the
// teacher's lenient Stage-0 policy of not treating lexical noise as
// fatal.
func (lx *Lexer) Next() Token {
	lx.skipSpaceAndComments()

	startPos := lx.pos()

	if lx.atEOF() {
		return lx.make(TokEOF, "", startPos)
	}

	ch, _ := lx.peek()

	if xid.Start(ch) {
		lex := lx.scanIdent()
		if kind, ok := keywordKind(lex); ok {
			return lx.make(kind, lex, startPos)
		}
		return lx.make(TokIdent, lex, startPos)
	}

	if unicode.IsDigit(ch) {
		lex := lx.scanNumber()
		return lx.make(TokInt, lex, startPos)
	}

	if ch == '"' {
		lex := lx.scanString()
		return lx.make(TokStr, lex, startPos)
	}

	switch {
	case lx.match(':'):
		if lx.match('=') {
			return lx.make(TokAssign, ":=", startPos)
		}
		return lx.make(TokColon, ":", startPos)
	case lx.match('<'):
		if lx.match('>') {
			return lx.make(TokNeq, "<>", startPos)
		}
		if lx.match('=') {
			return lx.make(TokLe, "<=", startPos)
		}
		return lx.make(TokLt, "<", startPos)
	case lx.match('>'):
		if lx.match('=') {
			return lx.make(TokGe, ">=", startPos)
		}
		return lx.make(TokGt, ">", startPos)
	case lx.match('+'):
		return lx.make(TokPlus, "+", startPos)
	case lx.match('-'):
		return lx.make(TokMinus, "-", startPos)
	case lx.match('*'):
		return lx.make(TokStar, "*", startPos)
	case lx.match('/'):
		return lx.make(TokSlash, "/", startPos)
	case lx.match('='):
		return lx.make(TokEq, "=", startPos)
	case lx.match('&'):
		return lx.make(TokAnd, "&", startPos)
	case lx.match('|'):
		return lx.make(TokOr, "|", startPos)
	case lx.match('('):
		return lx.make(TokLParen, "(", startPos)
	case lx.match(')'):
		return lx.make(TokRParen, ")", startPos)
	case lx.match('['):
		return lx.make(TokLBrack, "[", startPos)
	case lx.match(']'):
		return lx.make(TokRBrack, "]", startPos)
	case lx.match('{'):
		return lx.make(TokLBrace, "{", startPos)
	case lx.match('}'):
		return lx.make(TokRBrace, "}", startPos)
	case lx.match('.'):
		return lx.make(TokDot, ".", startPos)
	case lx.match(','):
		return lx.make(TokComma, ",", startPos)
	case lx.match(';'):
		return lx.make(TokSemicolon, ";", startPos)
	}

	// Unrecognized byte: skip and keep going.
	lx.advance()
	return lx.Next()
}

// skipSpaceAndComments eats whitespace and Tiger's nestable /* ... */
// comments (spec.md's grammar carries no line comment syntax).
func (lx *Lexer) skipSpaceAndComments() {
	for {
		if ch, ok := lx.peek(); ok && unicode.IsSpace(ch) {
			lx.advance()
			continue
		}
		if ch, ok := lx.peek(); ok && ch == '/' {
			if ch2, ok2 := lx.peekAt(1); ok2 && ch2 == '*' {
				lx.advance()
				lx.advance()
				depth := 1
				for depth > 0 && !lx.atEOF() {
					c, _ := lx.peek()
					if c == '/' {
						if c2, ok2 := lx.peekAt(1); ok2 && c2 == '*' {
							lx.advance()
							lx.advance()
							depth++
							continue
						}
					}
					if c == '*' {
						if c2, ok2 := lx.peekAt(1); ok2 && c2 == '/' {
							lx.advance()
							lx.advance()
							depth--
							continue
						}
					}
					lx.advance()
				}
				continue
			}
		}
		break
	}
}

func isIdentPart(r rune) bool {
	return r == '_' || xid.Continue(r)
}

func (lx *Lexer) scanIdent() string {
	start := lx.i
	for {
		r, ok := lx.peek()
		if !ok || !isIdentPart(r) {
			break
		}
		lx.advance()
	}
	return string(lx.src[start:lx.i])
}

func (lx *Lexer) scanNumber() string {
	start := lx.i
	for {
		r, ok := lx.peek()
		if !ok || !unicode.IsDigit(r) {
			break
		}
		lx.advance()
	}
	return string(lx.src[start:lx.i])
}

// scanString produces the decoded string value, decoding the escapes
// \n \t \" and \\. Any other escape, including Tiger's \ddd and \^C
// forms, is not decoded: the backslash is dropped and the character
// after it is kept as is, rather than being treated as fatal.
func (lx *Lexer) scanString() string {
	lx.advance() // opening quote
	var b strings.Builder
	for {
		r, ok := lx.peek()
		if !ok || r == '\n' {
			break
		}
		if r == '"' {
			lx.advance()
			break
		}
		if r == '\\' {
			lx.advance()
			esc, ok := lx.peek()
			if !ok {
				break
			}
			switch esc {
			case 'n':
				b.WriteByte('\n')
				lx.advance()
			case 't':
				b.WriteByte('\t')
				lx.advance()
			case '"':
				b.WriteByte('"')
				lx.advance()
			case '\\':
				b.WriteByte('\\')
				lx.advance()
			default:
				b.WriteRune(esc)
				lx.advance()
			}
			continue
		}
		b.WriteRune(r)
		lx.advance()
	}
	return b.String()
}

// keywordKind maps identifiers to Tiger's reserved words.
func keywordKind(s string) (TokKind, bool) {
	switch s {
	case "array":
		return TokArray, true
	case "break":
		return TokBreak, true
	case "do":
		return TokDo, true
	case "else":
		return TokElse, true
	case "end":
		return TokEnd, true
	case "for":
		return TokFor, true
	case "function":
		return TokFunction, true
	case "if":
		return TokIf, true
	case "in":
		return TokIn, true
	case "let":
		return TokLet, true
	case "nil":
		return TokNil, true
	case "of":
		return TokOf, true
	case "then":
		return TokThen, true
	case "to":
		return TokTo, true
	case "type":
		return TokType, true
	case "var":
		return TokVar, true
	case "while":
		return TokWhile, true
	default:
		return 0, false
	}
}
