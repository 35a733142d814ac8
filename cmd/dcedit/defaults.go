package main

import (
	"fmt"

	"dcedit/internal/dircolors"

	"github.com/spf13/cobra"
)

// defaultsCmd prints or saves the system color database
func defaultsCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the system default colors",
		Long:  `Print the system dircolors database in dcedit's layout, or write it to a file with --out. A small built-in set is used when dircolors is unavailable.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, fallback := dircolors.LoadSystemDefaults(cmd.Context())
			if fallback {
				fmt.Fprintln(cmd.ErrOrStderr(), warningText("dircolors unavailable, using built-in defaults"))
			}
			if out == "" {
				return dircolors.Write(cmd.OutOrStdout(), doc)
			}
			if err := dircolors.WriteFile(doc, out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successText(fmt.Sprintf("Wrote %d entries to %s", doc.Len(), out)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	return cmd
}
