// Package color models a single SGR parameter string (styles, foreground,
// background, color-space mode) and converts between the basic 16-color
// palette, the 256-color palette and 24-bit RGB.
package color

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Style is a text attribute with a fixed SGR code
type Style int

const (
	StyleNormal        Style = 0
	StyleBold          Style = 1
	StyleDim           Style = 2
	StyleItalic        Style = 3
	StyleUnderline     Style = 4
	StyleBlink         Style = 5
	StyleReverse       Style = 7
	StyleStrikethrough Style = 9
)

// AllStyles lists every style in ascending code order
var AllStyles = []Style{
	StyleNormal, StyleBold, StyleDim, StyleItalic,
	StyleUnderline, StyleBlink, StyleReverse, StyleStrikethrough,
}

var styleNames = map[Style]string{
	StyleNormal:        "normal",
	StyleBold:          "bold",
	StyleDim:           "dim",
	StyleItalic:        "italic",
	StyleUnderline:     "underline",
	StyleBlink:         "blink",
	StyleReverse:       "reverse",
	StyleStrikethrough: "strikethrough",
}

// Code returns the SGR code of the style
func (s Style) Code() int {
	return int(s)
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("style(%d)", int(s))
}

// StyleFromCode maps an SGR code to a Style. Codes outside
// {0,1,2,3,4,5,7,9} are not styles.
func StyleFromCode(code int) (Style, bool) {
	s := Style(code)
	_, ok := styleNames[s]
	return s, ok
}

// ParseStyle accepts a style name ("bold") or its numeric code ("1")
func ParseStyle(s string) (Style, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for style, name := range styleNames {
		if name == s || fmt.Sprint(int(style)) == s {
			return style, nil
		}
	}
	return 0, fmt.Errorf("unknown style %q", s)
}

// Mode is the color space a ColorCode is expressed in
type Mode int

const (
	Basic16 Mode = iota
	Extended256
	RGBTrueColor
)

func (m Mode) String() string {
	switch m {
	case Extended256:
		return "256-color"
	case RGBTrueColor:
		return "RGB"
	}
	return "8-bit"
}

// ParseMode accepts the String forms plus the short names used on the
// command line and in config files
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "8-bit", "basic", "basic16", "16", "8":
		return Basic16, nil
	case "256-color", "256", "extended", "extended256":
		return Extended256, nil
	case "rgb", "truecolor", "24-bit", "24bit":
		return RGBTrueColor, nil
	}
	return Basic16, fmt.Errorf("unknown color mode %q", s)
}

// RGB is a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as #rrggbb
func (c RGB) Hex() string {
	return c.colorful().Hex()
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// HexRGB parses #rrggbb or #rgb
func HexRGB(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// ColorCode is the parsed form of one SGR parameter string.
//
// Foreground256 and Background256 hold the raw palette index only when the
// color came from a 38;5;n / 48;5;n construct. The setters keep them
// consistent with the RGB fields.
type ColorCode struct {
	Original      string
	Styles        []Style
	Foreground    *RGB
	Background    *RGB
	Foreground256 *int
	Background256 *int
	Mode          Mode
}

// Clone returns a deep copy; the copy shares no pointers with c
func (c *ColorCode) Clone() *ColorCode {
	if c == nil {
		return nil
	}
	out := &ColorCode{
		Original: c.Original,
		Mode:     c.Mode,
	}
	if c.Styles != nil {
		out.Styles = append([]Style(nil), c.Styles...)
	}
	out.Foreground = copyRGB(c.Foreground)
	out.Background = copyRGB(c.Background)
	out.Foreground256 = copyInt(c.Foreground256)
	out.Background256 = copyInt(c.Background256)
	return out
}

func copyRGB(p *RGB) *RGB {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// HasStyle reports whether s is set
func (c *ColorCode) HasStyle(s Style) bool {
	for _, existing := range c.Styles {
		if existing == s {
			return true
		}
	}
	return false
}

// AddStyle sets s. Adding StyleNormal clears every style, the same as a 0
// in an SGR string.
func (c *ColorCode) AddStyle(s Style) {
	if s == StyleNormal {
		c.Styles = nil
		return
	}
	if !c.HasStyle(s) {
		c.Styles = append(c.Styles, s)
	}
}

// RemoveStyle unsets s
func (c *ColorCode) RemoveStyle(s Style) {
	kept := c.Styles[:0]
	for _, existing := range c.Styles {
		if existing != s {
			kept = append(kept, existing)
		}
	}
	c.Styles = kept
}

// SetForeground sets the foreground and drops any stale palette index
func (c *ColorCode) SetForeground(rgb RGB) {
	c.Foreground = &rgb
	c.Foreground256 = nil
}

// SetBackground sets the background and drops any stale palette index
func (c *ColorCode) SetBackground(rgb RGB) {
	c.Background = &rgb
	c.Background256 = nil
}

// SetForeground256 sets the foreground from a palette index
func (c *ColorCode) SetForeground256(index int) {
	rgb := Index256ToRGB(index)
	c.Foreground = &rgb
	c.Foreground256 = &index
}

// SetBackground256 sets the background from a palette index
func (c *ColorCode) SetBackground256(index int) {
	rgb := Index256ToRGB(index)
	c.Background = &rgb
	c.Background256 = &index
}

func (c *ColorCode) ClearForeground() {
	c.Foreground = nil
	c.Foreground256 = nil
}

func (c *ColorCode) ClearBackground() {
	c.Background = nil
	c.Background256 = nil
}

// Describe returns a one-line human summary, or "Default" when nothing is set
func (c *ColorCode) Describe() string {
	var parts []string
	if len(c.Styles) > 0 {
		names := make([]string, 0, len(c.Styles))
		for _, s := range c.Styles {
			names = append(names, s.String())
		}
		parts = append(parts, "Styles: "+strings.Join(names, ", "))
	}
	if c.Foreground != nil {
		parts = append(parts, "FG: "+c.Foreground.String())
	}
	if c.Background != nil {
		parts = append(parts, "BG: "+c.Background.String())
	}
	if c.Mode != Basic16 {
		parts = append(parts, "Mode: "+c.Mode.String())
	}
	if len(parts) == 0 {
		return "Default"
	}
	return strings.Join(parts, " | ")
}

// String encodes c in its own mode
func (c *ColorCode) String() string {
	return Encode(c, c.Mode)
}
