package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"dcedit/internal/color"
	"dcedit/internal/dircolors"
	"dcedit/internal/errors"
	"dcedit/internal/preview"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// showCmd lists entries grouped by category
func (a *app) showCmd() *cobra.Command {
	var match string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List entries grouped by category",
		Long:  `List every entry of the dircolors file grouped by category, with a color swatch and a description of each code.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, path, err := a.load(cmd)
			if err != nil {
				return err
			}
			r := preview.NewRenderer(a.previewOptions())
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, mutedText(fileSummary(path, doc)))
			fmt.Fprintln(out)

			if match != "" {
				entries, err := doc.Match(match)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintln(out, mutedText("No entries match "+match))
					return nil
				}
				printEntries(out, r, entries)
				return nil
			}

			cats := doc.Categories()
			for i, name := range doc.CategoryKeys() {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, headerText(categoryTitle(name)))
				var entries []dircolors.Entry
				for _, key := range cats[name] {
					e, _ := doc.Get(key)
					entries = append(entries, e)
				}
				printEntries(out, r, entries)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&match, "match", "m", "", "only show keys matching a glob (e.g. \".mp*\", \"{DIR,LINK}\")")
	return cmd
}

// fileSummary describes the file being edited, e.g.
// "/home/me/.dircolors: 312 entries, 6.1 kB, modified 2 days ago"
func fileSummary(path string, doc *dircolors.Document) string {
	s := fmt.Sprintf("%s: %s entries", path, humanize.Comma(int64(doc.Len())))
	if info, err := os.Stat(path); err == nil {
		s += fmt.Sprintf(", %s, modified %s", humanize.Bytes(uint64(info.Size())), humanize.Time(info.ModTime()))
	}
	return s
}

func categoryTitle(name string) string {
	switch name {
	case "other_extensions":
		return "Other extensions"
	case "other_keys":
		return "Other entries"
	}
	name = strings.TrimSuffix(name, "_extensions")
	return strings.ToUpper(name[:1]) + name[1:]
}

func printEntries(w io.Writer, r *preview.Renderer, entries []dircolors.Entry) {
	keys := make([]string, 0, len(entries))
	codes := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
		codes = append(codes, e.SGR)
	}
	keyWidth := columnWidth(keys)
	codeWidth := columnWidth(codes)

	for _, e := range entries {
		swatch := r.Style(e.SGR).Render(dircolors.DisplayName(e.Key))
		line := fmt.Sprintf("  %s  %s  %s", pad(e.Key, keyWidth), pad(e.SGR, codeWidth), swatch)
		if e.Comment != "" {
			line += "  " + mutedText("# "+e.Comment)
		}
		fmt.Fprintln(w, line)
	}
}

// getCmd prints one entry
func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Show one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := a.load(cmd)
			if err != nil {
				return err
			}
			e, ok := doc.Get(args[0])
			if !ok {
				return errors.NewEntryError("no entry", args[0], errors.InvalidEntry, nil)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, e.Line())
			fmt.Fprintln(out, mutedText(color.Decode(e.SGR).Describe()))
			if dircolors.IsExtension(e.Key) {
				fmt.Fprintln(out, mutedText("Category: "+doc.CategoryOf(e.Key)))
			}
			return nil
		},
	}
}

// setCmd adds or changes an entry
func (a *app) setCmd() *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "set KEY SGR",
		Short: "Add or change an entry",
		Long:  `Set the color code of KEY. The code is validated before the file is touched; an existing comment is kept unless --comment is given.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, sgr := args[0], strings.TrimSpace(args[1])
			if ok, msg := color.Validate(sgr); !ok {
				return errors.NewEntryError(msg, key, errors.InvalidColorCode, nil)
			}

			doc, path, err := a.loadOrNew(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("comment") {
				err = doc.Set(key, sgr, comment)
			} else {
				err = doc.SetColor(key, sgr)
			}
			if err != nil {
				return err
			}
			if err := a.save(doc, path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successText(fmt.Sprintf("Set %s to %s", key, sgr)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&comment, "comment", "c", "", "trailing comment for the entry")
	return cmd
}

// rmCmd removes an entry
func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm KEY",
		Aliases: []string{"remove"},
		Short:   "Remove an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, path, err := a.load(cmd)
			if err != nil {
				return err
			}
			if !doc.Remove(args[0]) {
				return errors.NewEntryError("no entry", args[0], errors.InvalidEntry, nil)
			}
			if err := a.save(doc, path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successText("Removed "+args[0]))
			return nil
		},
	}
}

// moveCmd files an extension under another category
func (a *app) moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move EXT CATEGORY",
		Short: "Move an extension to another category",
		Long: `Move a file extension to another category. The category decides which
section the extension is written to. Use "other" to take it out of every
category.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, path, err := a.load(cmd)
			if err != nil {
				return err
			}
			if err := doc.MoveExtension(args[0], args[1]); err != nil {
				return err
			}
			if err := a.save(doc, path); err != nil {
				return err
			}
			ext := args[0]
			fmt.Fprintln(cmd.OutOrStdout(), successText(fmt.Sprintf("Moved %s to %s", ext, doc.CategoryOf(ext))))
			if doc.CategoryOf(ext) == dircolors.OtherCategory {
				if builtin, ok := dircolors.DefaultCategories().Lookup(ext); ok {
					fmt.Fprintln(cmd.ErrOrStderr(), warningText(fmt.Sprintf(
						"%s is a built-in %s extension and will be filed there again the next time the file is read", ext, builtin)))
				}
			}
			return nil
		},
	}
}

// categoriesCmd lists categories and their keys
func (a *app) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories and the keys filed under them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := a.load(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			cats := doc.Categories()
			names := doc.CategoryKeys()
			width := columnWidth(names)
			for _, name := range names {
				fmt.Fprintf(out, "%s  %s\n", headerText(pad(name, width)), strings.Join(cats[name], " "))
			}

			fmt.Fprintln(out)
			targets := append(doc.CategoryTable().Names(), dircolors.OtherCategory)
			fmt.Fprintln(out, mutedText("Move targets: "+strings.Join(targets, ", ")))
			return nil
		},
	}
}

// schemeCmd applies a preset scheme
func (a *app) schemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scheme [NAME]",
		Short: "Apply a preset color scheme, or list schemes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, name := range color.SchemeNames() {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			scheme, ok := color.Scheme(args[0])
			if !ok {
				return errors.Newf("unknown scheme %q (available: %s)", args[0], strings.Join(color.SchemeNames(), ", "))
			}
			doc, path, err := a.loadOrNew(cmd)
			if err != nil {
				return err
			}
			doc.ApplyScheme(scheme)
			if err := a.save(doc, path); err != nil {
				return err
			}
			fmt.Fprintln(out, successText(fmt.Sprintf("Applied %s (%d entries)", args[0], len(scheme))))
			return nil
		},
	}
}
