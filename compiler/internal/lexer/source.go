package lexer

// Source is the token stream the parser consumes. Any implementation
// only needs to yield successive tokens via Next().
type Source interface {
	Next() Token
}

// goSource adapts the Go lexer to the Source interface.
type goSource struct {
	lx *Lexer
}

// NewSource returns a Source backed by the Go lexer for src.
func NewSource(src string) Source {
	return &goSource{lx: New(src)}
}

func (s *goSource) Next() Token {
	return s.lx.Next()
}
