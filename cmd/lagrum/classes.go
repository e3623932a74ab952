package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/ava12/lagrum/charclass"
)

type classRecord struct {
	Codepoint string `json:"codepoint"`
	Char      string `json:"char"`
	Category  string `json:"category"`
	Note      string `json:"note,omitempty"`
}

func newClassRecord(r rune) classRecord {
	result := classRecord{
		Codepoint: fmt.Sprintf("U+%04X", r),
		Char:      charclass.EscapeRune(r),
		Category:  charclass.Classify(r).String(),
	}
	if e, has := charclass.Lookup(r); has {
		result.Note = e.Note
	}
	return result
}

func classesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classes [text...]",
		Short: "List individually classified codepoints or classify text",
		Long: `Without arguments list codepoints added to character classes outside of their base ranges,
with notes telling where they come from. With arguments classify every character of the text.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var records []classRecord
			if len(args) == 0 {
				entries := append([]charclass.Entry(nil), charclass.Inventory...)
				sort.SliceStable(entries, func(i, j int) bool {
					if entries[i].Category != entries[j].Category {
						return entries[i].Category < entries[j].Category
					}
					return entries[i].Rune < entries[j].Rune
				})
				for _, e := range entries {
					records = append(records, newClassRecord(e.Rune))
				}
			} else {
				text := strings.Join(args, " ")
				for i, r := range text {
					if r == utf8.RuneError {
						if _, size := utf8.DecodeRuneInString(text[i:]); size == 1 {
							records = append(records, classRecord{
								Codepoint: fmt.Sprintf("0x%02X", text[i]),
								Char:      fmt.Sprintf(`\x%02x`, text[i]),
								Category:  charclass.Other.String(),
								Note:      "invalid UTF-8 byte",
							})
							continue
						}
					}
					records = append(records, newClassRecord(r))
				}
			}

			w := cmd.OutOrStdout()
			if a.useJSON(w) {
				return writeClassesJSON(w, records)
			}

			table := newTable(w, "CODEPOINT", "CHAR", "CATEGORY", "NOTE")
			for _, r := range records {
				table.Append([]string{r.Codepoint, r.Char, r.Category, r.Note})
			}
			table.Render()
			return nil
		},
	}
}

func writeClassesJSON(w io.Writer, records []classRecord) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if e := enc.Encode(r); e != nil {
			return e
		}
	}
	return nil
}
