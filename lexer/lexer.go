// Package lexer defines lexical analyzer.
package lexer

import (
	"regexp"
	"unicode/utf8"

	"github.com/ava12/lagrum"
	"github.com/ava12/lagrum/source"
)

const (
	// ErrorTokenType is the type for fake tokens capturing broken lexemes (e.g. unterminated literals).
	// The purpose of these tokens is to generate more informative error messages.
	// Lexer will never return a token of this type, an error with message containing token text will be returned instead.
	ErrorTokenType = EoiTokenType - 1

	// ErrorTokenName is the type name for ErrorTokenType.
	ErrorTokenName = "-error-"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that lexer cannot fetch any token at current position.
	// Error message contains the rune at current source position.
	WrongCharError = lagrum.LexicalErrors + iota

	// BadTokenError indicates that lexer has fetched a token of ErrorTokenType.
	BadTokenError
)

// TokenType describes token type for specific capturing group of regular expression.
type TokenType struct {
	// Type contains token type, must be non-negative. ErrorTokenType is treated specially.
	Type int

	// TypeName contains token type name, may be any value.
	TypeName string
}

// Lexer performs lexical analysis of current source in source.Queue using regexp.Regexp.
// Lexer itself is immutable and safe for concurrent use, but it affects queue state.
// Each token type maps to its own regexp capturing group index.
// A match containing no captured groups is treated as insignificant lexeme (e.g. whitespace or comment),
// in this case lexer tries to fetch a token again at new position.
// Every byte of source must belong to some lexeme.
type Lexer struct {
	types []TokenType
	re    *regexp.Regexp
}

// New creates new Lexer.
// Each n-th element of types describes token type for (n+1)-th regexp capturing group.
// A group that has no description or that has negative token type is treated as ErrorTokenType.
func New(re *regexp.Regexp, types []TokenType) *Lexer {
	ts := make([]TokenType, len(types))
	for i, t := range types {
		ts[i].TypeName = t.TypeName
		if t.Type >= 0 {
			ts[i].Type = t.Type
		} else {
			ts[i].Type = ErrorTokenType
			ts[i].TypeName = ErrorTokenName
		}
	}
	return &Lexer{types: ts, re: re}
}

func wrongCharError(s *source.Source, content string, pos int) *lagrum.Error {
	r, _ := utf8.DecodeRuneInString(content[pos:])
	p := source.NewPos(s, pos)
	return lagrum.FormatErrorPos(p, WrongCharError, "wrong char %q (u+%x)", r, r)
}

func wrongTokenError(t *Token) *lagrum.Error {
	return lagrum.FormatErrorPos(t, BadTokenError, "bad token %q", t.Text())
}

func (l *Lexer) matchToken(src *source.Source, content string, pos int) (*Token, int, error) {
	match := l.re.FindStringSubmatchIndex(content[pos:])
	if len(match) == 0 || match[0] != 0 || match[1] <= match[0] {
		return nil, 0, wrongCharError(src, content, pos)
	}

	for i := 2; i < len(match); i += 2 {
		if match[i] < 0 || match[i+1] < 0 {
			continue
		}

		tokenType := ErrorTokenType
		typeName := ErrorTokenName
		if len(l.types) >= (i >> 1) {
			tokenType = l.types[(i>>1)-1].Type
			typeName = l.types[(i>>1)-1].TypeName
		}
		sp := source.NewPos(src, pos+match[i])
		token := NewToken(tokenType, typeName, content[pos+match[i]:pos+match[i+1]], sp)
		if tokenType == ErrorTokenType {
			return nil, 0, wrongTokenError(token)
		}

		return token, match[1], nil
	}

	return nil, match[1], nil
}

// Next fetches token starting at current source position and advances current position.
// Returns nil token and lagrum.Error and does not make any changes if there is a lexical error.
// Returns EoF token and switches to the next source if current source is exhausted.
// Returns EoI token if queue is empty.
func (l *Lexer) Next(q *source.Queue) (*Token, error) {
	for {
		content, pos := q.ContentPos()
		src := q.Source()
		if pos >= len(content) {
			if src == nil {
				return EoiToken(), nil
			}

			q.NextSource()
			return EofToken(src), nil
		}

		tok, advance, e := l.matchToken(src, content, pos)
		q.Skip(advance)
		if tok != nil || e != nil {
			return tok, e
		}
	}
}
