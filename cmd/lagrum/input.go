package main

import (
	"context"
	"io"
	"os"

	"github.com/ava12/lagrum/grammar"
	"github.com/ava12/lagrum/internal/document"
	"github.com/ava12/lagrum/internal/logutil"
	"github.com/ava12/lagrum/langdef"
	"github.com/ava12/lagrum/parser"
	"github.com/ava12/lagrum/segment"
	"github.com/ava12/lagrum/sfs"
)

const stdinName = "-"

// loadGrammar compiles grammar file or returns built-in grammar if name is empty.
// Built-in grammar comes with entity decoders.
func (a *app) loadGrammar(name string) (*grammar.Grammar, segment.Values, error) {
	if name == "" {
		g, e := sfs.Grammar()
		return g, sfs.Values(), e
	}

	content, e := os.ReadFile(name)
	if e != nil {
		return nil, nil, e
	}

	g, e := langdef.ParseBytes(name, content)
	if e != nil {
		return nil, nil, e
	}

	a.logger.Debug("grammar compiled", "name", name, "rules", g.Len(), "start", g.Start())
	logutil.Trace(a.logger, "nullable rules", "rules", langdef.Nullable(g))
	return g, nil, nil
}

func (a *app) newSegmenter(opts ...segment.Option) (*segment.Segmenter, error) {
	g, values, e := a.loadGrammar(a.cfg.Grammar)
	if e != nil {
		return nil, e
	}

	if values != nil {
		opts = append([]segment.Option{segment.WithValues(values)}, opts...)
	}
	return segment.New(g, opts...)
}

// loadDocuments reads named files or stdin if names is empty.
func (a *app) loadDocuments(ctx context.Context, stdin io.Reader, names []string) ([]*document.Document, error) {
	if len(names) == 0 {
		d, e := document.Read(stdinName, stdin, a.cfg.Encoding, a.cfg.NFC)
		if e != nil {
			return nil, e
		}
		return []*document.Document{d}, nil
	}

	result := make([]*document.Document, 0, len(names))
	for _, name := range names {
		if e := ctx.Err(); e != nil {
			return nil, e
		}

		d, e := document.Load(name, a.cfg.Encoding, a.cfg.NFC)
		if e != nil {
			return nil, e
		}

		a.logger.Debug("document loaded", "name", name, "bytes", len(d.Text))
		result = append(result, d)
	}
	return result, nil
}

// checkSummary warns about documents with too many unclassified spans.
func (a *app) checkSummary(name string, s segment.Summary) {
	ratio := s.OtherRatio()
	if ratio > a.cfg.OtherThreshold {
		a.logger.Warn("too many unclassified spans, check document encoding",
			"document", name, "ratio", ratio, "other", s.OtherSpans, "spans", s.Spans, "encoding", a.cfg.Encoding)
	} else {
		a.logger.Debug("document segmented", "document", name, "spans", s.Spans, "other", s.OtherSpans)
	}
}

func (a *app) traceStats(ctx context.Context, name string, st parser.Stats) {
	logutil.TraceContext(ctx, a.logger, "matching stats", "document", name,
		"evaluations", st.Evaluations, "memo_hits", st.MemoHits, "memo_entries", st.MemoEntries)
}
