package main

import (
	"fmt"
	"time"

	"dcedit/internal/log"
	"dcedit/internal/preview"
	"dcedit/internal/watch"
	"dcedit/pkg/types"

	"github.com/spf13/cobra"
)

func (a *app) samples() []types.SampleFile {
	if len(a.cfg.Preview.Samples) > 0 {
		return a.cfg.Preview.Samples
	}
	return preview.DefaultSamples()
}

// previewCmd renders sample file names in their configured colors
func (a *app) previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Show sample file names in their colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := a.load(cmd)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), preview.Render(doc, a.samples(), a.previewOptions()))
			return nil
		},
	}
}

// watchCmd re-renders the preview each time the file is saved
func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-render the preview whenever the file changes",
		Long:  `Watch the dircolors file and print a fresh preview every time it is saved. Stop with Ctrl-C.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, path, err := a.load(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			r := preview.NewRenderer(a.previewOptions())
			fmt.Fprint(out, r.Render(doc, a.samples()))

			w, err := watch.New(path, a.cfg.Debounce())
			if err != nil {
				return err
			}
			defer w.Stop()

			ctx := cmd.Context()
			if err := w.Start(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), mutedText("Watching "+w.Path()+" (Ctrl-C to stop)"))

			for {
				select {
				case <-ctx.Done():
					return nil
				case reload, ok := <-w.Reloads():
					if !ok {
						return nil
					}
					if reload.Err != nil {
						fmt.Fprintln(cmd.ErrOrStderr(), errorText(reload.Err.Error()))
						continue
					}
					for _, warning := range reload.Warnings {
						fmt.Fprintln(cmd.ErrOrStderr(), warningText(warning.Error()))
					}
					if _, err := reload.Doc.ClassifyUncategorized(a.cfg.Categories.Rules); err != nil {
						log.LogWithError(err).Warn("category rules not applied")
					}
					fmt.Fprintln(out)
					fmt.Fprintln(out, mutedText("Reloaded at "+reload.Time.Format(time.TimeOnly)))
					fmt.Fprint(out, r.Render(reload.Doc, a.samples()))
				}
			}
		},
	}
}
