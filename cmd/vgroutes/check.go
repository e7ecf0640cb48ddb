package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vugu/vgroutes"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <table.toml>",
		Short: "Validate a route table file and print its routes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			routes, err := vgroutes.LoadTableFile(args[0], vgroutes.ViewNames)
			if err != nil {
				return err
			}
			if err := vgroutes.Validate(routes); err != nil {
				return err
			}
			printTable(cmd.OutOrStdout(), vgroutes.NewTable(routes))
			return nil
		},
	}
	return cmd
}

// printTable writes one line per route, indented by nesting depth.
func printTable(w io.Writer, t vgroutes.Table) {
	if t.Len() == 0 {
		fmt.Fprintln(w, "(no routes)")
		return
	}
	t.Walk(func(fullPath string, rd vgroutes.RouteDescriptor, depth int) bool {
		target := fmt.Sprintf("%v", rd.View)
		if rd.Redirect != "" {
			target = "-> " + rd.Redirect
		}
		name := ""
		if rd.Name != "" {
			name = " (" + rd.Name + ")"
		}
		fmt.Fprintf(w, "%s%-*s %s%s\n", strings.Repeat("  ", depth), 30-2*depth, fullPath, target, name)
		return true
	})
}
