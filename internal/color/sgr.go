package color

import (
	"strconv"
	"strings"
)

// Decode parses an SGR parameter string such as "01;38;5;196;48;2;0;0;0".
// Decoding is lenient: non-numeric tokens, unknown codes and truncated
// 38/48 constructs are skipped without error.
func Decode(text string) *ColorCode {
	c := &ColorCode{Original: text, Mode: Basic16}
	params := tokenize(text)

	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			c.Styles = nil
		case p < 10:
			if s, ok := StyleFromCode(p); ok && !c.HasStyle(s) {
				c.Styles = append(c.Styles, s)
			}
		case p >= 30 && p <= 37:
			rgb := BasicToRGB(p-30, false)
			c.Foreground, c.Foreground256 = &rgb, nil
		case p >= 90 && p <= 97:
			rgb := BasicToRGB(p-90, true)
			c.Foreground, c.Foreground256 = &rgb, nil
		case p >= 40 && p <= 47:
			rgb := BasicToRGB(p-40, false)
			c.Background, c.Background256 = &rgb, nil
		case p >= 100 && p <= 107:
			rgb := BasicToRGB(p-100, true)
			c.Background, c.Background256 = &rgb, nil
		case p == 38 || p == 48:
			i += c.applyExtended(p == 38, params[i+1:])
		}
	}
	return c
}

// applyExtended handles the tokens after a 38 or 48 and returns how many of
// them were consumed. A construct without enough tokens consumes nothing.
func (c *ColorCode) applyExtended(fg bool, rest []int) int {
	if len(rest) >= 2 && rest[0] == 5 {
		index := rest[1]
		if index <= 255 {
			rgb := Index256ToRGB(index)
			if fg {
				c.Foreground, c.Foreground256 = &rgb, &index
			} else {
				c.Background, c.Background256 = &rgb, &index
			}
			c.elevate(Extended256)
		}
		return 2
	}
	if len(rest) >= 4 && rest[0] == 2 {
		r, g, b := rest[1], rest[2], rest[3]
		if r <= 255 && g <= 255 && b <= 255 {
			rgb := RGB{uint8(r), uint8(g), uint8(b)}
			if fg {
				c.Foreground, c.Foreground256 = &rgb, nil
			} else {
				c.Background, c.Background256 = &rgb, nil
			}
			c.elevate(RGBTrueColor)
		}
		return 4
	}
	return 0
}

// elevate sets the mode from an extended construct. The last one wins, so
// "38;2;1;2;3;48;5;9" ends in Extended256. Basic color codes leave the mode
// alone.
func (c *ColorCode) elevate(m Mode) {
	c.Mode = m
}

func tokenize(text string) []int {
	var params []int
	for _, tok := range strings.Split(text, ";") {
		if tok == "" || strings.TrimLeft(tok, "0123456789") != "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		params = append(params, n)
	}
	return params
}

// Encode renders c as a canonical SGR string in the target mode: styles in
// ascending code order, then foreground, then background. A code with
// nothing set encodes as "00".
func Encode(c *ColorCode, target Mode) string {
	var parts []string
	if c != nil {
		for _, s := range AllStyles {
			if s != StyleNormal && c.HasStyle(s) {
				parts = append(parts, strconv.Itoa(s.Code()))
			}
		}
		if c.Foreground != nil {
			parts = append(parts, encodeColor(*c.Foreground, c.Foreground256, target, false)...)
		}
		if c.Background != nil {
			parts = append(parts, encodeColor(*c.Background, c.Background256, target, true)...)
		}
	}
	if len(parts) == 0 {
		return "00"
	}
	return strings.Join(parts, ";")
}

func encodeColor(rgb RGB, index *int, target Mode, background bool) []string {
	lead := "38"
	if background {
		lead = "48"
	}
	switch target {
	case RGBTrueColor:
		return []string{lead, "2", strconv.Itoa(int(rgb.R)), strconv.Itoa(int(rgb.G)), strconv.Itoa(int(rgb.B))}
	case Extended256:
		idx := RGBTo256(rgb)
		// Keep the original palette index while it still describes the color
		if index != nil && Index256ToRGB(*index) == rgb {
			idx = *index
		}
		return []string{lead, "5", strconv.Itoa(idx)}
	}
	code := RGBToBasic(rgb)
	if background {
		code += 10
	}
	return []string{strconv.Itoa(code)}
}

// Reencode decodes text and encodes it again in the target mode
func Reencode(text string, target Mode) string {
	return Encode(Decode(text), target)
}
