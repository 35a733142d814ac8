package types

import (
	"path/filepath"
	"strings"
)

// SampleFile is one line of the terminal preview
type SampleFile struct {
	Icon string `yaml:"icon"`
	Name string `yaml:"name"`
	Key  string `yaml:"key"` // dircolors key used to style the line (e.g., "DIR", ".txt")
}

// KeyFor derives a dircolors key from a file name when none is given
func (s SampleFile) KeyFor() string {
	if s.Key != "" {
		return s.Key
	}
	if ext := filepath.Ext(s.Name); ext != "" {
		return strings.ToLower(ext)
	}
	return "FILE"
}
