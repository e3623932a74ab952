// Package sfs contains built-in grammar for Swedish statute text and decoders of recognized entities.
package sfs

import (
	_ "embed"
	"sync"

	"github.com/ava12/lagrum/grammar"
	"github.com/ava12/lagrum/langdef"
	"github.com/ava12/lagrum/segment"
)

//go:embed sfs.peg
var description string

// Rule names used by callers:
const (
	TokenRule         = "token"
	AnnotatedRule     = "annotated"
	NumberRule        = "number"
	YearRule          = "Year"
	LongYearRule      = "LongYear"
	ShortYearRule     = "ShortYear"
	ISODateRule       = "ISODate"
	TextualDateRule   = "TextualDate"
	OrdinalRule       = "Ordinal"
	SectionRefRule    = "SectionRef"
	SectionRangeRule  = "SectionRange"
	SFSNumberRule     = "SFSNumber"
	HyphenRule        = "Hyphen"
	MonthNumberRule   = "MonthNumber"
	MonthNameRule     = "MonthName"
	SectionNumberRule = "SectionNumber"
)

// Description returns grammar description in langdef notation.
func Description() string {
	return description
}

// Grammar returns compiled built-in grammar. The grammar is compiled once and shared.
var Grammar = sync.OnceValues(func() (*grammar.Grammar, error) {
	return langdef.ParseString("sfs.peg", description)
})

// NewSegmenter creates a segmenter for built-in grammar with entity decoders.
// Use segment.WithRule(AnnotatedRule) to get entity spans instead of primitive ones.
func NewSegmenter(opts ...segment.Option) (*segment.Segmenter, error) {
	g, e := Grammar()
	if e != nil {
		return nil, e
	}

	return segment.New(g, append([]segment.Option{segment.WithValues(Values())}, opts...)...)
}
