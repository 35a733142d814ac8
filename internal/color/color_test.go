package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneDoesNotAlias(t *testing.T) {
	orig := Decode("01;38;5;196;48;2;1;2;3")
	cp := orig.Clone()
	require.Equal(t, orig, cp)

	cp.SetForeground(RGB{1, 1, 1})
	*cp.Background = RGB{9, 9, 9}
	cp.AddStyle(StyleItalic)

	assert.Equal(t, rgbPtr(255, 0, 0), orig.Foreground)
	require.NotNil(t, orig.Foreground256)
	assert.Equal(t, 196, *orig.Foreground256)
	assert.Equal(t, rgbPtr(1, 2, 3), orig.Background)
	assert.Equal(t, []Style{StyleBold}, orig.Styles)

	var nilCode *ColorCode
	assert.Nil(t, nilCode.Clone())
}

func TestStyleSetters(t *testing.T) {
	c := &ColorCode{}
	c.AddStyle(StyleBold)
	c.AddStyle(StyleUnderline)
	c.AddStyle(StyleBold)
	assert.Equal(t, []Style{StyleBold, StyleUnderline}, c.Styles)
	assert.True(t, c.HasStyle(StyleUnderline))

	c.RemoveStyle(StyleBold)
	assert.Equal(t, []Style{StyleUnderline}, c.Styles)
	assert.False(t, c.HasStyle(StyleBold))

	c.AddStyle(StyleNormal)
	assert.Empty(t, c.Styles)
}

func TestColorSetters(t *testing.T) {
	c := &ColorCode{}
	c.SetForeground256(9)
	assert.Equal(t, rgbPtr(255, 0, 0), c.Foreground)
	require.NotNil(t, c.Foreground256)
	assert.Equal(t, 9, *c.Foreground256)

	c.SetBackground256(244)
	assert.Equal(t, rgbPtr(128, 128, 128), c.Background)

	c.ClearForeground()
	c.ClearBackground()
	assert.Nil(t, c.Foreground)
	assert.Nil(t, c.Foreground256)
	assert.Nil(t, c.Background)
	assert.Nil(t, c.Background256)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Styles: bold | FG: rgb(128, 0, 0)", Decode("01;31").Describe())
	assert.Equal(t, "FG: rgb(255, 0, 0) | Mode: 256-color", Decode("38;5;196").Describe())
	assert.Equal(t, "Styles: bold, underline | BG: rgb(1, 2, 3) | Mode: RGB", Decode("1;4;48;2;1;2;3").Describe())
	assert.Equal(t, "Default", Decode("").Describe())
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#ff0000", RGB{255, 0, 0}.Hex())
	assert.Equal(t, "#0a141e", RGB{10, 20, 30}.Hex())

	c, err := HexRGB("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, RGB{255, 128, 0}, c)

	c, err = HexRGB("00ff00")
	require.NoError(t, err)
	assert.Equal(t, RGB{0, 255, 0}, c)

	_, err = HexRGB("#zzzzzz")
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{
		"basic":     Basic16,
		"8-bit":     Basic16,
		"256":       Extended256,
		"256-color": Extended256,
		"RGB":       RGBTrueColor,
		"truecolor": RGBTrueColor,
	}
	for in, want := range tests {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMode("cmyk")
	assert.Error(t, err)

	for _, m := range []Mode{Basic16, Extended256, RGBTrueColor} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestParseStyle(t *testing.T) {
	s, err := ParseStyle("Bold")
	require.NoError(t, err)
	assert.Equal(t, StyleBold, s)

	s, err = ParseStyle("9")
	require.NoError(t, err)
	assert.Equal(t, StyleStrikethrough, s)

	_, err = ParseStyle("6")
	assert.Error(t, err)

	_, ok := StyleFromCode(8)
	assert.False(t, ok)
	assert.Equal(t, "reverse", StyleReverse.String())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"01;31", true},
		{"00", true},
		{"38;5;255", true},
		{" 01;34 ", true},
		{"", false},
		{"   ", false},
		{"300", false},
		{"ab", false},
		{"01;-1", false},
		{"01;;31", false},
		{"38;2;256;0;0", false},
		{"99999999999999999999999", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ok, msg := Validate(tt.in)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestSchemes(t *testing.T) {
	assert.Equal(t, []string{"dark_theme", "default", "high_contrast"}, SchemeNames())

	s, ok := Scheme("default")
	require.True(t, ok)
	assert.Equal(t, "01;34", s["DIR"])

	// Returned maps are copies
	s["DIR"] = "00"
	again, _ := Scheme("default")
	assert.Equal(t, "01;34", again["DIR"])

	_, ok = Scheme("nope")
	assert.False(t, ok)

	for _, name := range SchemeNames() {
		scheme, _ := Scheme(name)
		for key, sgr := range scheme {
			ok, msg := Validate(sgr)
			assert.True(t, ok, "%s %s: %s", name, key, msg)
		}
	}
}
