package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ava12/lagrum/langdef"
	"github.com/ava12/lagrum/sfs"
)

func grammarCmd(a *app) *cobra.Command {
	var source bool
	cmd := &cobra.Command{
		Use:   "grammar [file]",
		Short: "Compile grammar description and print normalized grammar",
		Long: `Compile grammar description and print normalized grammar or its JSON form.
Without file the --grammar file or the built-in grammar is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.cfg.Grammar
			if len(args) > 0 {
				name = args[0]
			}

			w := cmd.OutOrStdout()
			if source && name == "" {
				_, e := fmt.Fprint(w, sfs.Description())
				return e
			}

			g, _, e := a.loadGrammar(name)
			if e != nil {
				return e
			}

			if a.json {
				data, e := json.MarshalIndent(g, "", "  ")
				if e != nil {
					return e
				}
				_, e = fmt.Fprintln(w, string(data))
				return e
			}

			fmt.Fprint(w, g.String())
			if nullable := langdef.Nullable(g); len(nullable) > 0 {
				fmt.Fprintf(w, "# rules matching empty text: %s\n", strings.Join(nullable, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&source, "source", false, "print built-in grammar description instead of compiled grammar")
	return cmd
}
