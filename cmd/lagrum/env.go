package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func envCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List environment variables and effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vars := a.cfg.AsMap()
			names := make([]string, 0, len(vars))
			for name := range vars {
				names = append(names, name)
			}
			sort.Strings(names)

			w := cmd.OutOrStdout()
			if a.useJSON(w) {
				values := make(map[string]string, len(vars))
				for _, name := range names {
					values[name] = fmt.Sprint(vars[name].Value)
				}
				return json.NewEncoder(w).Encode(values)
			}

			table := newTable(w, "NAME", "VALUE", "DESCRIPTION")
			for _, name := range names {
				v := vars[name]
				table.Append([]string{v.Name, fmt.Sprint(v.Value), v.Description})
			}
			table.Render()
			return nil
		},
	}
}
