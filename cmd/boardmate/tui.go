package main

import (
	"github.com/spf13/cobra"

	"github.com/thywilljoshua/boardmate/internal/ui"
)

func tuiCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:         "tui",
		Short:       "Open the interactive study form",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"logs": "file"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := a.controller(cmd.Context())
			if err != nil {
				return err
			}
			timeout, _ := a.cfg.RequestTimeout()
			return ui.Run(cmd.Context(), ui.Options{
				Controller: ctrl,
				Exporter:   a.exporter(out),
				Store:      a.store,
				SystemDark: a.systemDark(),
				Timeout:    timeout,
				Logger:     a.log,
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory for PDFs (default: out_dir from config)")
	return cmd
}
