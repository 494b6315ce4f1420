package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

var globalFlags struct {
	configFile string
	envFile    string
	dbPath     string
	flat       bool
}

var rootCmd = &cobra.Command{
	Use:   "kanban",
	Short: "Local kanban board for projects and tasks",
	Long: `kanban keeps projects and their tasks on a three column board
(To Do, Doing, Done) stored in a local SQLite file.

Run "kanban serve" for the web board, or use the project and task
commands to work with the board from the terminal.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "kanban %s\n", version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&globalFlags.configFile, "config", "", "config file (default $KANBAN_CONFIG or ./kanban.yaml)")
	pf.StringVar(&globalFlags.envFile, "env-file", "", "dotenv file to load (default ./.env)")
	pf.StringVar(&globalFlags.dbPath, "db", "", "path to the sqlite database file")
	pf.BoolVar(&globalFlags.flat, "flat", false, "use the flat to-do list instead of projects")

	rootCmd.AddCommand(versionCmd, serveCmd, boardCmd, exportCmd, projectCmd, taskCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
