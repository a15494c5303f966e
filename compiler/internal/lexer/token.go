package lexer

import "github.com/tigerlang/tigerc/compiler/internal/diag"

// TokKind enumerates the token kinds the lexer produces.
type TokKind int

const (
	TokEOF TokKind = iota

	// Literals/identifiers
	TokIdent
	TokInt
	TokStr

	// Keywords
	TokArray
	TokBreak
	TokDo
	TokElse
	TokEnd
	TokFor
	TokFunction
	TokIf
	TokIn
	TokLet
	TokNil
	TokOf
	TokThen
	TokTo
	TokType
	TokVar
	TokWhile

	// Punctuation
	TokComma     // ,
	TokColon     // :
	TokSemicolon // ;
	TokLParen    // (
	TokRParen    // )
	TokLBrack    // [
	TokRBrack    // ]
	TokLBrace    // {
	TokRBrace    // }
	TokDot       // .

	// Operators
	TokPlus   // +
	TokMinus  // -
	TokStar   // *
	TokSlash  // /
	TokEq     // =
	TokNeq    // <>
	TokLt     // <
	TokLe     // <=
	TokGt     // >
	TokGe     // >=
	TokAnd    // &
	TokOr     // |
	TokAssign // :=
)

// Token is a single lexeme with its source position. Pos is the byte
// offset of the token's first character, matching ast.Pos/diag.Pos.
type Token struct {
	Kind TokKind
	Lex  string
	Pos  diag.Pos
}

var tokKindNames = map[TokKind]string{
	TokEOF: "EOF", TokIdent: "IDENT", TokInt: "INT", TokStr: "STR",
	TokArray: "array", TokBreak: "break", TokDo: "do", TokElse: "else",
	TokEnd: "end", TokFor: "for", TokFunction: "function", TokIf: "if",
	TokIn: "in", TokLet: "let", TokNil: "nil", TokOf: "of", TokThen: "then",
	TokTo: "to", TokType: "type", TokVar: "var", TokWhile: "while",
	TokComma: ",", TokColon: ":", TokSemicolon: ";", TokLParen: "(",
	TokRParen: ")", TokLBrack: "[", TokRBrack: "]", TokLBrace: "{",
	TokRBrace: "}", TokDot: ".", TokPlus: "+", TokMinus: "-", TokStar: "*",
	TokSlash: "/", TokEq: "=", TokNeq: "<>", TokLt: "<", TokLe: "<=",
	TokGt: ">", TokGe: ">=", TokAnd: "&", TokOr: "|", TokAssign: ":=",
}

// String renders a TokKind as its Tiger surface-syntax spelling (or a
// short tag for EOF/IDENT/INT/STR), for `tigerc lex`'s token dump.
func (k TokKind) String() string {
	if s, ok := tokKindNames[k]; ok {
		return s
	}
	return "<bad-tok-kind>"
}
