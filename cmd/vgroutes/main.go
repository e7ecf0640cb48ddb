package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vgroutes",
		Short: "Route table tooling for Vugu applications",
		Long: `vgroutes generates, checks and serves client-side route tables.

Settings are read from an optional TOML config file and the
BASE_URL, VGROUTES_MODE, VGROUTES_LOG_LEVEL and VGROUTES_LOG_FORMAT
environment variables (a .env file in the working directory is honoured).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		genCmd(),
		checkCmd(),
		serveCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
