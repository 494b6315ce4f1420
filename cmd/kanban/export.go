package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"kanban/internal/persist"
)

var exportFlags struct {
	format string
	keys   bool
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every project and task to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			if exportFlags.keys {
				return listKeys(cmd, a)
			}
			snap := persist.Snapshot{Projects: a.store.Projects(), Tasks: a.store.Tasks()}
			out := cmd.OutOrStdout()
			switch exportFlags.format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			case "yaml", "yml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(snap); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown export format %q (want json or yaml)", exportFlags.format)
			}
		})
	},
}

// listKeys prints every key in the database, marking the ones this board
// reads and writes.
func listKeys(cmd *cobra.Command, a *app) error {
	stored, err := a.db.Keys(cmd.Context())
	if err != nil {
		return err
	}
	used := a.adapter.Keys()
	out := cmd.OutOrStdout()
	for _, k := range stored {
		switch k {
		case used.Projects, used.Tasks:
			fmt.Fprintf(out, "%s\tin use\n", k)
		default:
			fmt.Fprintf(out, "%s\n", k)
		}
	}
	return nil
}

func init() {
	exportCmd.Flags().StringVar(&exportFlags.format, "format", "json", "output format: json or yaml")
	exportCmd.Flags().BoolVar(&exportFlags.keys, "keys", false, "list the stored keys instead of the data")
}
