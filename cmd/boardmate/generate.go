package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thywilljoshua/boardmate/internal/export"
	"github.com/thywilljoshua/boardmate/internal/notes"
	"github.com/thywilljoshua/boardmate/internal/render"
	"github.com/thywilljoshua/boardmate/internal/study"
)

// formFlags binds the form fields as optional flags. Only flags the user set
// change the saved form.
type formFlags struct {
	board, class, subject, chapter, weak string
}

func (f *formFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.board, "board", "", "exam board (saved for next time)")
	cmd.Flags().StringVar(&f.class, "class", "", "class / grade")
	cmd.Flags().StringVar(&f.subject, "subject", "", "subject")
	cmd.Flags().StringVar(&f.chapter, "chapter", "", "chapter name")
	cmd.Flags().StringVar(&f.weak, "weak", "", "weak points, free text")
}

func (f *formFlags) apply(cmd *cobra.Command, form *study.FormState) bool {
	changed := false
	for flag, field := range map[string]struct {
		name  string
		value string
	}{
		"board":   {"board", f.board},
		"class":   {"class", f.class},
		"subject": {"subject", f.subject},
		"chapter": {"chapter", f.chapter},
		"weak":    {"weakPoints", f.weak},
	} {
		if cmd.Flags().Changed(flag) {
			_ = form.Set(field.name, field.value)
			changed = true
		}
	}
	return changed
}

// runGeneration applies flags, persists the form, and runs one generation.
func (a *app) runGeneration(cmd *cobra.Command, ff *formFlags) (study.FormState, *study.StudyMaterial, error) {
	form := a.store.LoadForm()
	if ff.apply(cmd, &form) {
		if err := a.store.SaveForm(form); err != nil {
			return form, nil, err
		}
	}

	ctx, cancel := a.requestContext(cmd.Context())
	defer cancel()
	ctrl, err := a.controller(ctx)
	if err != nil {
		return form, nil, err
	}
	out := ctrl.Generate(ctx, form)
	if out.Err != nil {
		return form, nil, errors.New(ctrl.View().Err)
	}
	return form, out.Material, nil
}

func generateCmd(a *app) *cobra.Command {
	var ff formFlags
	var tab string
	var asJSON bool
	var pdf bool
	var out string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate study material for the saved form",
		Long: `Generate study material for the saved form. Any form flag given here
updates the saved form first, so the next run remembers it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var only *render.Tab
			if tab != "" {
				t, err := render.ParseTab(tab)
				if err != nil {
					return err
				}
				only = &t
			}

			form, m, err := a.runGeneration(cmd, &ff)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch {
			case asJSON:
				b, _ := json.MarshalIndent(m, "", "  ")
				fmt.Fprintln(w, string(b))
			case only != nil:
				fmt.Fprintln(w, render.New(a.theme()).Tab(*m, *only))
			default:
				fmt.Fprint(w, render.New(a.theme()).All(*m, form.Title()))
			}

			if pdf {
				return a.writePDF(cmd, m, form.Title(), out)
			}
			return nil
		},
	}
	ff.register(cmd)
	cmd.Flags().StringVar(&tab, "tab", "", "print a single tab: flashcards|definitions|questions|summary|tips")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw study material as JSON")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "also export the notes as a PDF")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory for the PDF (default: out_dir from config)")
	return cmd
}

func exportCmd(a *app) *cobra.Command {
	var ff formFlags
	var out string
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Generate study material and save it as <title>_notes.pdf",
		Long: `Generate study material and save it to a file. The default format is an A4 PDF.
With --format md the notes are written as Markdown and listed in notes.json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "pdf" && format != "md" {
				return fmt.Errorf("unknown format %q (want pdf or md)", format)
			}
			form, m, err := a.runGeneration(cmd, &ff)
			if err != nil {
				return err
			}
			if format == "md" {
				dir := out
				if dir == "" {
					dir = a.cfg.OutDir
				}
				path, err := notes.Write(dir, *m, form, time.Now())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
				return nil
			}
			return a.writePDF(cmd, m, form.Title(), out)
		},
	}
	ff.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (default: out_dir from config)")
	cmd.Flags().StringVar(&format, "format", "pdf", "output format: pdf|md")
	return cmd
}

func (a *app) writePDF(cmd *cobra.Command, m *study.StudyMaterial, title, outDir string) error {
	res, err := a.exporter(outDir).Export(cmd.Context(), export.BuildDocument(m, title), a.theme())
	if err != nil {
		// Already logged by the exporter.
		return errors.New("PDF export failed")
	}
	a.log.Debug("export finished", zap.String("path", res.Path))
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d pages)\n", res.Path, res.Pages())
	return nil
}
