package langdef

import (
	"strings"

	"github.com/ava12/lagrum"
	"github.com/ava12/lagrum/lexer"
)

// Error codes used by langdef:
const (
	// MalformedExpressionError indicates a syntax error in grammar description:
	// unexpected token or end of file, bad escape sequence, bad character range or quantifier.
	MalformedExpressionError = lagrum.GrammarErrors + iota

	// UndefinedRuleError indicates that some rules are referenced but not defined.
	// Error message contains comma-separated names.
	UndefinedRuleError

	// DuplicateRuleError indicates that a rule is defined more than once.
	DuplicateRuleError

	// UnknownClassError indicates [:name:] class item with unknown name.
	UnknownClassError

	// LeftRecursionError indicates rules that can invoke themselves without consuming input.
	LeftRecursionError

	// NoRulesError indicates that grammar description contains no rules.
	NoRulesError
)

func eofError(t *lexer.Token, expected string) *lagrum.Error {
	return lagrum.FormatErrorPos(t, MalformedExpressionError, "unexpected end of file, expecting %s", expected)
}

func unexpectedTokenError(t *lexer.Token, expected string) *lagrum.Error {
	return lagrum.FormatErrorPos(t, MalformedExpressionError, "unexpected %q, expecting %s", t.Text(), expected)
}

func lexicalError(e *lagrum.Error) *lagrum.Error {
	return lagrum.NewError(MalformedExpressionError, e.Message, e.SourceName, e.Line, e.Col)
}

func escapeError(t *lexer.Token, seq string) *lagrum.Error {
	return lagrum.FormatErrorPos(t, MalformedExpressionError, "invalid escape sequence %q in %s", seq, t.Text())
}

func rangeError(t *lexer.Token, low, high rune) *lagrum.Error {
	return lagrum.FormatErrorPos(t, MalformedExpressionError, "invalid character range %q-%q in %s", low, high, t.Text())
}

func emptyClassError(t *lexer.Token) *lagrum.Error {
	return lagrum.FormatErrorPos(t, MalformedExpressionError, "empty character class %s", t.Text())
}

func quantifierError(t *lexer.Token) *lagrum.Error {
	return lagrum.FormatErrorPos(t, MalformedExpressionError, "invalid quantifier %s", t.Text())
}

func emptyRuleNameError(index int) *lagrum.Error {
	return lagrum.FormatError(MalformedExpressionError, "rule #%d has no name", index)
}

func undefinedRuleError(names []string) *lagrum.Error {
	return lagrum.FormatError(UndefinedRuleError, "undefined rules: %s", strings.Join(names, ", "))
}

func duplicateRuleError(t *lexer.Token) *lagrum.Error {
	return lagrum.FormatErrorPos(t, DuplicateRuleError, "rule %q already defined", t.Text())
}

func duplicateRuleNameError(name string) *lagrum.Error {
	return lagrum.FormatError(DuplicateRuleError, "rule %q already defined", name)
}

func unknownClassError(t *lexer.Token, name string) *lagrum.Error {
	return lagrum.FormatErrorPos(t, UnknownClassError, "unknown character class [:%s:]", name)
}

func leftRecursionError(names []string) *lagrum.Error {
	return lagrum.FormatError(LeftRecursionError, "left-recursive rules: %s", strings.Join(names, ", "))
}

func noRulesError() *lagrum.Error {
	return lagrum.FormatError(NoRulesError, "grammar contains no rules")
}
