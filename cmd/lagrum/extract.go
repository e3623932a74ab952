package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ava12/lagrum/segment"
)

type entityRecord struct {
	Document string `json:"document"`
	segment.Entity
}

func extractCmd(a *app) *cobra.Command {
	var breakable []string
	cmd := &cobra.Command{
		Use:   "extract --rule <name> [file...]",
		Short: "Find entities matched by a grammar rule",
		Long: `Find non-overlapping matches of a grammar rule.

The rule is tried at each span start produced by the grammar start rule. A match is accepted
if it ends at a span boundary or inside a breakable span (punctuation and whitespace by default).

Example:
  lagrum extract --rule SectionRef sfs-1994-1000.txt
  lagrum extract --rule ISODate --json *.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Rule == "" {
				return errors.New("--rule flag is required")
			}

			var opts []segment.Option
			if cmd.Flags().Changed("breakable") {
				opts = append(opts, segment.WithBreakable(breakable...))
			}
			s, e := a.newSegmenter(opts...)
			if e != nil {
				return e
			}

			docs, e := a.loadDocuments(cmd.Context(), cmd.InOrStdin(), args)
			if e != nil {
				return e
			}

			w := cmd.OutOrStdout()
			asJSON := a.useJSON(w)
			for _, d := range docs {
				if e := cmd.Context().Err(); e != nil {
					return e
				}

				spans, stats, e := s.SegmentStats(cmd.Context(), d.Text)
				if e != nil {
					return e
				}
				a.checkSummary(d.Name, segment.Summarize(spans))
				a.traceStats(cmd.Context(), d.Name, stats)

				entities, e := s.ExtractSpans(d.Text, spans, a.cfg.Rule)
				if e != nil {
					return fmt.Errorf("%s: %w", d.Name, e)
				}
				a.logger.Debug("entities extracted", "document", d.Name, "rule", a.cfg.Rule, "count", len(entities))

				if asJSON {
					e = writeEntitiesJSON(w, d.Name, entities)
				} else {
					writeEntitiesTable(w, d.Name, entities)
				}
				if e != nil {
					return e
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&breakable, "breakable", nil, "span categories a match may end inside of")
	return cmd
}

func writeEntitiesJSON(w io.Writer, name string, entities []segment.Entity) error {
	enc := json.NewEncoder(w)
	for _, ent := range entities {
		if e := enc.Encode(entityRecord{name, ent}); e != nil {
			return e
		}
	}
	return nil
}

func writeEntitiesTable(w io.Writer, name string, entities []segment.Entity) {
	table := newTable(w, "DOCUMENT", "POS", "TEXT", "VALUE")
	for _, ent := range entities {
		table.Append([]string{
			name,
			fmt.Sprintf("%d:%d", ent.Line, ent.Col),
			strconv.Quote(ent.Text),
			formatValue(ent.Value),
		})
	}
	table.Render()
}
