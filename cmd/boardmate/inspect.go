package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/boardmate/internal/export"
)

func inspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "inspect <pdf>",
		Short:       "Print the page count of an exported PDF",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"state": "none"},
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := export.CountPages(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d pages\n", args[0], n)
			return nil
		},
	}
}
