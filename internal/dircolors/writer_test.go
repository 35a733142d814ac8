package dircolors_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dcedit/internal/dircolors"
	"dcedit/internal/errors"
	"dcedit/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCanonical = `# Configuration file for dircolors
# Generated by dcedit

# Terminal type definitions
TERM xterm-256color
TERM screen

# Basic file types
NORMAL 00
RESET 0

# Directories and links
DIR 01;34 # directories
LINK 01;36

# Special file types
EXEC 01;32

# Archives files
.tar 01;31
.zip 01;31

# Code files
.go 00;36
.txt 00;33

# Other file extensions
.xyz 00;35
`

func TestWriteLayout(t *testing.T) {
	doc, _, err := dircolors.Parse(strings.NewReader(testutils.SampleDircolors))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, dircolors.Write(&buf, doc))
	assert.Equal(t, sampleCanonical, buf.String())
}

func TestWriteEmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dircolors.Write(&buf, dircolors.New()))

	out := buf.String()
	assert.NotContains(t, out, "TERM")
	assert.Contains(t, out, "# Basic file types\n")
	assert.Contains(t, out, "# Directories and links\n")
	assert.Contains(t, out, "# Special file types\n")
	assert.NotContains(t, out, "# Other file extensions")
}

func TestWriteUnknownKeys(t *testing.T) {
	doc := dircolors.New()
	require.NoError(t, doc.Set("*.bak", "00;90", ""))
	require.NoError(t, doc.Set("COLORTERM", "?*", ""))
	require.NoError(t, doc.Set(".zz", "01", ""))
	require.NoError(t, doc.Set(".aa", "01", ""))

	var buf bytes.Buffer
	require.NoError(t, dircolors.Write(&buf, doc))
	out := buf.String()

	assert.Contains(t, out, "# Other file extensions\n.aa 01\n.zz 01\n")
	assert.Contains(t, out, "# Other entries\n*.bak 00;90\nCOLORTERM ?*\n")
}

func TestWriteRoundTrip(t *testing.T) {
	orig, _, err := dircolors.Parse(strings.NewReader(testutils.SampleDircolors))
	require.NoError(t, err)
	require.NoError(t, orig.MoveExtension(".xyz", "images"))
	require.NoError(t, orig.MoveExtension(".zip", dircolors.OtherCategory))

	var buf bytes.Buffer
	require.NoError(t, dircolors.Write(&buf, orig))

	again, warnings, err := dircolors.Parse(&buf)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.ElementsMatch(t, orig.Entries(), again.Entries())
	assert.Equal(t, orig.Terms, again.Terms)
	assert.Equal(t, "images", again.CategoryOf(".xyz"))
	assert.Equal(t, "code", again.CategoryOf(".txt"))
	// Defaults are reseeded on read, so .zip returns to archives
	assert.Equal(t, "archives", again.CategoryOf(".zip"))
}

func TestWriteFile(t *testing.T) {
	t.Run("writes and preserves mode", func(t *testing.T) {
		dir := t.TempDir()
		path := testutils.WriteDircolors(t, dir, testutils.SampleDircolors)
		require.NoError(t, os.Chmod(path, 0600))

		doc, _, err := dircolors.ParseFile(path)
		require.NoError(t, err)
		require.NoError(t, doc.Set("DIR", "01;35", ""))
		require.NoError(t, dircolors.WriteFile(doc, path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "DIR 01;35\n")

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "no temp files left behind")
	})

	t.Run("writes through symlink", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "dotfiles-dircolors")
		require.NoError(t, os.WriteFile(target, []byte(testutils.SampleDircolors), 0600))
		link := filepath.Join(dir, ".dircolors")
		require.NoError(t, os.Symlink("dotfiles-dircolors", link))

		doc, _, err := dircolors.ParseFile(link)
		require.NoError(t, err)
		require.NoError(t, doc.Set("LINK", "01;33", ""))
		require.NoError(t, dircolors.WriteFile(doc, link))

		info, err := os.Lstat(link)
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&os.ModeSymlink, "link is kept")

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Contains(t, string(data), "LINK 01;33\n")

		info, err = os.Stat(target)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2, "no temp files left behind")
	})

	t.Run("dangling symlink creates target", func(t *testing.T) {
		dir := t.TempDir()
		link := filepath.Join(dir, ".dircolors")
		require.NoError(t, os.Symlink("new-dircolors", link))

		doc := dircolors.New()
		require.NoError(t, doc.Set("DIR", "01;34", ""))
		require.NoError(t, dircolors.WriteFile(doc, link))

		data, err := os.ReadFile(filepath.Join(dir, "new-dircolors"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "DIR 01;34\n")

		info, err := os.Lstat(link)
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&os.ModeSymlink)
	})

	t.Run("missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", ".dircolors")
		err := dircolors.WriteFile(dircolors.New(), path)
		require.Error(t, err)

		var fe *errors.FileError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, path, fe.Path())
	})
}
