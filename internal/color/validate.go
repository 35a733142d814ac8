package color

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate checks that text is a strict SGR parameter string: digits and
// semicolons only, every component in 0-255. It returns false and a reason
// instead of an error so callers can show the message inline.
func Validate(text string) (bool, string) {
	code := strings.TrimSpace(text)
	if code == "" {
		return false, "Color code cannot be empty"
	}
	if strings.Trim(code, "0123456789;") != "" {
		return false, "Color code must contain only digits and semicolons"
	}
	for _, part := range strings.Split(code, ";") {
		if part == "" {
			return false, fmt.Sprintf("Invalid color component: %q", part)
		}
		n, err := strconv.Atoi(part)
		if err != nil || n > 255 {
			return false, fmt.Sprintf("Color value %s out of range (0-255)", part)
		}
	}
	return true, ""
}
