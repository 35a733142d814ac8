package color

// Conventional terminal approximations. Bright black is mid-gray; the other
// bright entries are fully saturated.
var (
	standardColors = [8]RGB{
		{0, 0, 0},       // black
		{128, 0, 0},     // red
		{0, 128, 0},     // green
		{128, 128, 0},   // yellow
		{0, 0, 128},     // blue
		{128, 0, 128},   // magenta
		{0, 128, 128},   // cyan
		{192, 192, 192}, // white
	}
	brightColors = [8]RGB{
		{128, 128, 128}, // bright black
		{255, 0, 0},     // bright red
		{0, 255, 0},     // bright green
		{255, 255, 0},   // bright yellow
		{0, 0, 255},     // bright blue
		{255, 0, 255},   // bright magenta
		{0, 255, 255},   // bright cyan
		{255, 255, 255}, // bright white
	}
)

// BasicNames are the color names for indices 0-7
var BasicNames = [8]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// BasicToRGB converts a basic palette index (0-7) to RGB. Out of range
// indices give mid-gray.
func BasicToRGB(index int, bright bool) RGB {
	if index < 0 || index > 7 {
		return RGB{128, 128, 128}
	}
	if bright {
		return brightColors[index]
	}
	return standardColors[index]
}

func cubeLevel(level int) uint8 {
	if level == 0 {
		return 0
	}
	return uint8(55 + level*40)
}

// Index256ToRGB converts a 256-color palette index to RGB: 0-15 use the
// basic table, 16-231 the 6x6x6 cube, 232-255 the gray ramp.
func Index256ToRGB(index int) RGB {
	switch {
	case index < 0:
		return RGB{128, 128, 128}
	case index < 8:
		return BasicToRGB(index, false)
	case index < 16:
		return BasicToRGB(index-8, true)
	case index < 232:
		i := index - 16
		return RGB{cubeLevel((i / 36) % 6), cubeLevel((i / 6) % 6), cubeLevel(i % 6)}
	case index < 256:
		gray := uint8(8 + (index-232)*10)
		return RGB{gray, gray, gray}
	}
	return RGB{128, 128, 128}
}

func toCube(v uint8) int {
	switch {
	case v < 48:
		return 0
	case v < 115:
		return 1
	}
	return (int(v) - 35) / 40
}

// RGBTo256 returns the nearest 256-color palette index. Pure grays map onto
// the gray ramp, clamped to the cube's black and white corners.
func RGBTo256(c RGB) int {
	if c.R == c.G && c.G == c.B {
		switch {
		case c.R < 8:
			return 16
		case c.R > 238:
			return 231
		}
		return 232 + (int(c.R)-8)/10
	}
	return 16 + 36*toCube(c.R) + 6*toCube(c.G) + toCube(c.B)
}

func distance(a, b RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// RGBToBasic returns the SGR foreground code (30-37 or 90-97) of the
// nearest basic color. Standard entries are scanned before bright ones and
// the first minimum wins.
func RGBToBasic(c RGB) int {
	best, bestDist := 30, -1
	for i, p := range standardColors {
		if d := distance(c, p); bestDist < 0 || d < bestDist {
			best, bestDist = 30+i, d
		}
	}
	for i, p := range brightColors {
		if d := distance(c, p); d < bestDist {
			best, bestDist = 90+i, d
		}
	}
	return best
}

// Palette256 returns the RGB value of every palette index
func Palette256() [256]RGB {
	var p [256]RGB
	for i := range p {
		p[i] = Index256ToRGB(i)
	}
	return p
}
