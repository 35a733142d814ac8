package main

import (
	"fmt"
	"strconv"
	"strings"

	"dcedit/internal/color"
	"dcedit/internal/errors"
	"dcedit/internal/preview"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// decodeCmd explains a color code
func decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode SGR",
		Short: "Explain a color code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := color.Decode(args[0])
			out := cmd.OutOrStdout()
			r := preview.NewRenderer(preview.Options{Profile: termenv.EnvColorProfile()})

			fmt.Fprintln(out, code.Describe())
			fmt.Fprintln(out, "Sample:  "+r.Style(args[0]).Render("sample.txt"))

			styles := make([]string, 0, len(code.Styles))
			for _, s := range code.Styles {
				styles = append(styles, s.String())
			}
			if len(styles) > 0 {
				fmt.Fprintln(out, "Styles:  "+strings.Join(styles, ", "))
			}
			if code.Foreground != nil {
				fmt.Fprintln(out, "FG:      "+describeColor(*code.Foreground, code.Foreground256))
			}
			if code.Background != nil {
				fmt.Fprintln(out, "BG:      "+describeColor(*code.Background, code.Background256))
			}
			fmt.Fprintln(out, "Mode:    "+code.Mode.String())

			fmt.Fprintln(out)
			for _, m := range []color.Mode{color.Basic16, color.Extended256, color.RGBTrueColor} {
				fmt.Fprintf(out, "%s %s\n", pad(m.String()+":", 11), color.Encode(code, m))
			}
			return nil
		},
	}
}

func describeColor(rgb color.RGB, index *int) string {
	s := fmt.Sprintf("%s %s", rgb, rgb.Hex())
	if index != nil {
		s += fmt.Sprintf(" (palette %d)", *index)
	}
	return s
}

// encodeCmd builds a color code from parts
func (a *app) encodeCmd() *cobra.Command {
	var (
		fg     string
		bg     string
		styles []string
		mode   string
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Build a color code",
		Long: `Build a color code from a foreground, a background and styles.

Colors may be hex ("#ff8000"), a 256-color palette index ("208") or a basic
color name ("red", "bright-blue").`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := a.cfg.DefaultMode()
			if mode != "" {
				m, err := color.ParseMode(mode)
				if err != nil {
					return err
				}
				target = m
			}

			code := &color.ColorCode{Mode: target}
			for _, name := range styles {
				s, err := color.ParseStyle(name)
				if err != nil {
					return err
				}
				code.AddStyle(s)
			}
			if fg != "" {
				if err := applyColor(code, fg, false); err != nil {
					return err
				}
			}
			if bg != "" {
				if err := applyColor(code, bg, true); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), color.Encode(code, target))
			return nil
		},
	}

	cmd.Flags().StringVar(&fg, "fg", "", "foreground color")
	cmd.Flags().StringVar(&bg, "bg", "", "background color")
	cmd.Flags().StringSliceVarP(&styles, "style", "s", nil, "styles: bold, dim, italic, underline, blink, reverse, strikethrough")
	cmd.Flags().StringVar(&mode, "mode", "", "output mode: basic, 256 or rgb (default from config)")
	return cmd
}

// applyColor parses value and sets it as the foreground or background
func applyColor(code *color.ColorCode, value string, background bool) error {
	value = strings.ToLower(strings.TrimSpace(value))

	if n, err := strconv.Atoi(value); err == nil {
		if n < 0 || n > 255 {
			return errors.Newf("palette index %d out of range (0-255)", n)
		}
		if background {
			code.SetBackground256(n)
		} else {
			code.SetForeground256(n)
		}
		return nil
	}

	rgb, ok := namedColor(value)
	if !ok {
		var err error
		if rgb, err = color.HexRGB(value); err != nil {
			return errors.Newf("unknown color %q", value)
		}
	}
	if background {
		code.SetBackground(rgb)
	} else {
		code.SetForeground(rgb)
	}
	return nil
}

func namedColor(name string) (color.RGB, bool) {
	bright := false
	for _, prefix := range []string{"bright-", "bright_", "bright"} {
		if strings.HasPrefix(name, prefix) {
			name = strings.TrimPrefix(name, prefix)
			bright = true
			break
		}
	}
	for i, n := range color.BasicNames {
		if n == name {
			return color.BasicToRGB(i, bright), true
		}
	}
	return color.RGB{}, false
}

// validateCmd checks color codes
func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate SGR...",
		Short: "Check that color codes are well formed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			width := columnWidth(args)
			failed := 0
			for _, sgr := range args {
				if ok, msg := color.Validate(sgr); ok {
					fmt.Fprintf(out, "%s  %s\n", pad(sgr, width), successText("ok"))
				} else {
					failed++
					fmt.Fprintf(out, "%s  %s\n", pad(sgr, width), errorText(msg))
				}
			}
			if failed > 0 {
				return errors.NewEntryError(fmt.Sprintf("%d invalid color code(s)", failed), "", errors.InvalidColorCode, nil)
			}
			return nil
		},
	}
}

// paletteCmd prints the 256-color palette
func paletteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "Show the 256-color palette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			r := lipgloss.NewRenderer(out)
			r.SetColorProfile(termenv.EnvColorProfile())

			palette := color.Palette256()
			for row := 0; row < 16; row++ {
				cells := make([]string, 0, 16)
				for col := 0; col < 16; col++ {
					i := row*16 + col
					rgb := palette[i]
					fg := "#000000"
					if int(rgb.R)*299+int(rgb.G)*587+int(rgb.B)*114 < 128000 {
						fg = "#ffffff"
					}
					cell := r.NewStyle().
						Background(lipgloss.Color(rgb.Hex())).
						Foreground(lipgloss.Color(fg)).
						Render(fmt.Sprintf("%4d", i))
					cells = append(cells, cell)
				}
				fmt.Fprintln(out, strings.Join(cells, ""))
			}
			return nil
		},
	}
}
