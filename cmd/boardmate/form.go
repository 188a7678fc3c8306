package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thywilljoshua/boardmate/internal/study"
)

func formCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Show or edit the saved study form",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the saved form as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _ := json.MarshalIndent(a.store.LoadForm(), "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Set one form field: " + strings.Join(study.Fields, "|"),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := a.store.LoadForm()
			if err := form.Set(args[0], args[1]); err != nil {
				return err
			}
			if opts := study.Options(args[0]); opts != nil && !contains(opts, args[1]) {
				a.log.Warn("value is not one of the listed options",
					zap.String("field", args[0]), zap.String("value", args[1]))
			}
			return a.store.SaveForm(form)
		},
	}

	options := &cobra.Command{
		Use:         "options",
		Short:       "List the choices for board, class and subject",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"state": "none"},
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, f := range []string{"board", "class", "subject"} {
				fmt.Fprintf(w, "%s: %s\n", f, strings.Join(study.Options(f), ", "))
			}
			return nil
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.store.SaveForm(study.DefaultForm())
		},
	}

	cmd.AddCommand(show, set, options, reset)
	return cmd
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
