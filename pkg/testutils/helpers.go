package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

// SampleDircolors is a small file laid out the way a human might write it,
// with category headings, inline comments and a TERM block.
const SampleDircolors = `# Configuration file for dircolors
TERM xterm-256color
TERM screen

# Basic file types
NORMAL 00
RESET 0

DIR 01;34 # directories
LINK 01;36
EXEC 01;32

# Archive files
.tar 01;31
.zip 01;31

# Code files
.go 00;36
.txt 00;33

.xyz 00;35
`

// WriteDircolors writes content to a .dircolors file in dir and returns its path
func WriteDircolors(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ".dircolors")
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	return ansi.Strip(str)
}
