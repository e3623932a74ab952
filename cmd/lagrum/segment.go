package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ava12/lagrum/segment"
)

type spanRecord struct {
	Document string `json:"document"`
	segment.Span
}

type summaryRecord struct {
	Document string `json:"document"`
	segment.Summary
}

func segmentCmd(a *app) *cobra.Command {
	var summary bool
	cmd := &cobra.Command{
		Use:   "segment [file...]",
		Short: "Split documents into classified spans",
		Long: `Split documents into classified spans.

Every byte of a document belongs to exactly one span. Spans are categorized by the first
rule matched by the start rule (--rule, default is the grammar start rule), text that
cannot be matched becomes "other" spans one character long.

Example:
  lagrum segment --encoding windows-1252 sfs-1994-1000.txt
  lagrum segment --rule annotated --json sfs-1994-1000.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []segment.Option
			if a.cfg.Rule != "" {
				opts = append(opts, segment.WithRule(a.cfg.Rule))
			}
			s, e := a.newSegmenter(opts...)
			if e != nil {
				return e
			}

			docs, e := a.loadDocuments(cmd.Context(), cmd.InOrStdin(), args)
			if e != nil {
				return e
			}

			texts := make([]string, len(docs))
			for i, d := range docs {
				texts[i] = d.Text
			}
			results, stats, e := s.Batch(cmd.Context(), texts, a.cfg.WorkerCount())
			if e != nil {
				return e
			}

			w := cmd.OutOrStdout()
			asJSON := a.useJSON(w)
			for i, spans := range results {
				sum := segment.Summarize(spans)
				a.checkSummary(docs[i].Name, sum)
				a.traceStats(cmd.Context(), docs[i].Name, stats[i])

				switch {
				case summary && asJSON:
					e = json.NewEncoder(w).Encode(summaryRecord{docs[i].Name, sum})
				case summary:
					writeSummaryTable(w, docs[i].Name, sum)
				case asJSON:
					e = writeSpansJSON(w, docs[i].Name, spans)
				default:
					writeSpansTable(w, docs[i].Name, spans, len(docs) > 1)
				}
				if e != nil {
					return e
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&summary, "summary", false, "output span counts per category instead of spans")
	return cmd
}

func writeSpansJSON(w io.Writer, name string, spans []segment.Span) error {
	enc := json.NewEncoder(w)
	for _, s := range spans {
		if e := enc.Encode(spanRecord{name, s}); e != nil {
			return e
		}
	}
	return nil
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	return table
}

func formatValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func writeSpansTable(w io.Writer, name string, spans []segment.Span, showName bool) {
	if showName {
		fmt.Fprintf(w, "%s:\n", name)
	}

	table := newTable(w, "POS", "CATEGORY", "TEXT", "VALUE")
	for _, s := range spans {
		table.Append([]string{
			fmt.Sprintf("%d:%d", s.Line, s.Col),
			s.Category,
			strconv.Quote(s.Text),
			formatValue(s.Value),
		})
	}
	table.Render()
}

func writeSummaryTable(w io.Writer, name string, s segment.Summary) {
	fmt.Fprintf(w, "%s: %d spans, %d bytes, %.1f%% other\n", name, s.Spans, s.Bytes, s.OtherRatio()*100)
	table := newTable(w, "CATEGORY", "SPANS")
	for _, c := range s.CategoryNames() {
		table.Append([]string{c, strconv.Itoa(s.Categories[c])})
	}
	table.Render()
}
