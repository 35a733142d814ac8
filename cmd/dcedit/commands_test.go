package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dcedit/internal/dircolors"
	"dcedit/internal/errors"
	"dcedit/internal/log"
	"dcedit/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliEnv struct {
	dir     string
	cfgPath string
	file    string
}

// newCliEnv creates a dircolors file from SampleDircolors and a config path
// that does not exist unless written with writeConfig
func newCliEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	return &cliEnv{
		dir:     dir,
		cfgPath: filepath.Join(dir, "config.yaml"),
		file:    testutils.WriteDircolors(t, dir, testutils.SampleDircolors),
	}
}

func (e *cliEnv) writeConfig(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(e.cfgPath, []byte(content), 0644))
}

// run executes the CLI and returns stripped stdout and stderr
func (e *cliEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() { log.Configure() })

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", e.cfgPath, "--file", e.file}, args...))
	err := cmd.Execute()
	return testutils.StripANSI(stdout.String()), testutils.StripANSI(stderr.String()), err
}

func (e *cliEnv) read(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(e.file)
	require.NoError(t, err)
	return string(data)
}

func TestCliHelp(t *testing.T) {
	env := newCliEnv(t)
	out, _, err := env.run(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "Available Commands:")
	for _, name := range []string{"show", "get", "set", "rm", "move", "categories", "decode", "encode", "validate", "palette", "preview", "defaults", "scheme", "watch"} {
		assert.Contains(t, out, name)
	}
}

func TestCliShow(t *testing.T) {
	env := newCliEnv(t)

	t.Run("grouped", func(t *testing.T) {
		out, _, err := env.run(t, "show")
		require.NoError(t, err)
		assert.Contains(t, out, env.file+": 10 entries, ")
		assert.Contains(t, out, "modified ")
		assert.Contains(t, out, "Directories\n")
		assert.Contains(t, out, "Code\n")
		assert.Contains(t, out, "Other extensions\n")
		assert.Regexp(t, `DIR\s+01;34\s+Directories\s+# directories`, out)
		assert.Regexp(t, `\.go\s+00;36\s+\.go`, out)
	})

	t.Run("match", func(t *testing.T) {
		out, _, err := env.run(t, "show", "--match", ".t*")
		require.NoError(t, err)
		assert.Contains(t, out, ".tar")
		assert.Contains(t, out, ".txt")
		assert.NotContains(t, out, ".go")
	})

	t.Run("bad pattern", func(t *testing.T) {
		_, _, err := env.run(t, "show", "--match", "[")
		assert.Error(t, err)
	})
}

func TestCliGet(t *testing.T) {
	env := newCliEnv(t)

	out, _, err := env.run(t, "get", "DIR")
	require.NoError(t, err)
	assert.Contains(t, out, "DIR 01;34 # directories\n")
	assert.Contains(t, out, "Styles: bold | FG: rgb(0, 0, 128)")

	out, _, err = env.run(t, "get", ".txt")
	require.NoError(t, err)
	assert.Contains(t, out, "Category: code")

	_, _, err = env.run(t, "get", "FIFO")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidEntry(err))
}

func TestCliSet(t *testing.T) {
	t.Run("keeps comment", func(t *testing.T) {
		env := newCliEnv(t)
		out, _, err := env.run(t, "set", "DIR", "00;35")
		require.NoError(t, err)
		assert.Contains(t, out, "Set DIR to 00;35")
		assert.Contains(t, env.read(t), "DIR 00;35 # directories\n")
	})

	t.Run("with comment", func(t *testing.T) {
		env := newCliEnv(t)
		_, _, err := env.run(t, "set", ".rs", "00;31", "--comment", "rust")
		require.NoError(t, err)
		assert.Contains(t, env.read(t), ".rs 00;31 # rust\n")
	})

	t.Run("rejects invalid code", func(t *testing.T) {
		env := newCliEnv(t)
		before := env.read(t)

		_, _, err := env.run(t, "set", "DIR", "300")
		require.Error(t, err)
		assert.Equal(t, errors.InvalidColorCode, errors.KindOf(err))
		assert.Contains(t, err.Error(), "out of range")
		assert.Equal(t, before, env.read(t))
	})

	t.Run("creates missing file", func(t *testing.T) {
		env := newCliEnv(t)
		env.file = filepath.Join(env.dir, "new.dircolors")

		_, _, err := env.run(t, "set", "EXEC", "01;32")
		require.NoError(t, err)
		assert.Contains(t, env.read(t), "EXEC 01;32\n")
	})

	t.Run("backup", func(t *testing.T) {
		env := newCliEnv(t)
		env.writeConfig(t, "editor:\n  backup: true\n")

		_, _, err := env.run(t, "set", "DIR", "00;35")
		require.NoError(t, err)

		bak, err := os.ReadFile(env.file + ".bak")
		require.NoError(t, err)
		assert.Equal(t, testutils.SampleDircolors, string(bak))
	})
}

func TestCliRemove(t *testing.T) {
	env := newCliEnv(t)

	_, _, err := env.run(t, "rm", ".xyz")
	require.NoError(t, err)
	assert.NotContains(t, env.read(t), ".xyz")

	_, _, err = env.run(t, "rm", ".xyz")
	assert.Error(t, err)
}

func TestCliMove(t *testing.T) {
	env := newCliEnv(t)

	out, _, err := env.run(t, "move", ".xyz", "images")
	require.NoError(t, err)
	assert.Contains(t, out, "Moved .xyz to images")
	assert.Contains(t, env.read(t), "# Images files\n.xyz 00;35\n")

	// The category survives a reload
	out, _, err = env.run(t, "get", ".xyz")
	require.NoError(t, err)
	assert.Contains(t, out, "Category: images")

	// Moving a custom extension out of its category persists quietly
	_, stderr, err := env.run(t, "move", ".xyz", "other")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	out, _, err = env.run(t, "get", ".xyz")
	require.NoError(t, err)
	assert.Contains(t, out, "Category: other")

	// Built-in extensions fall back to their default category on reload
	out, stderr, err = env.run(t, "move", ".zip", "other")
	require.NoError(t, err)
	assert.Contains(t, out, "Moved .zip to other")
	assert.Contains(t, stderr, ".zip is a built-in archives extension")
	out, _, err = env.run(t, "get", ".zip")
	require.NoError(t, err)
	assert.Contains(t, out, "Category: archives")

	_, _, err = env.run(t, "move", ".xyz", "spreadsheets")
	require.Error(t, err)
	assert.Equal(t, errors.UnknownCategory, errors.KindOf(err))

	_, _, err = env.run(t, "move", "DIR", "images")
	assert.Error(t, err)
}

func TestCliCategories(t *testing.T) {
	env := newCliEnv(t)
	env.writeConfig(t, "categories:\n  rules:\n    - match: \".x*\"\n      category: video\n")

	out, _, err := env.run(t, "categories")
	require.NoError(t, err)
	assert.Regexp(t, `code_extensions\s+\.go \.txt`, out)
	assert.Regexp(t, `video_extensions\s+\.xyz`, out, "config rules file uncategorized extensions")
	assert.NotContains(t, out, "other_extensions")
	assert.Contains(t, out, "Move targets: archives, documents, images, audio, video, code, config, other")
}

func TestCliScheme(t *testing.T) {
	env := newCliEnv(t)

	out, _, err := env.run(t, "scheme")
	require.NoError(t, err)
	assert.Equal(t, "dark_theme\ndefault\nhigh_contrast\n", out)

	_, _, err = env.run(t, "scheme", "dark_theme")
	require.NoError(t, err)
	content := env.read(t)
	assert.Contains(t, content, "DIR 01;94 # directories\n")
	assert.Contains(t, content, ".go 00;36\n")

	_, _, err = env.run(t, "scheme", "neon")
	assert.Error(t, err)
}

func TestCliDecode(t *testing.T) {
	env := newCliEnv(t)

	out, _, err := env.run(t, "decode", "01;38;5;196")
	require.NoError(t, err)
	assert.Contains(t, out, "Styles:  bold\n")
	assert.Contains(t, out, "FG:      rgb(255, 0, 0) #ff0000 (palette 196)\n")
	assert.Contains(t, out, "Mode:    256-color\n")
	assert.Contains(t, out, " 1;91\n")
	assert.Contains(t, out, " 1;38;5;196\n")
	assert.Contains(t, out, " 1;38;2;255;0;0\n")
}

func TestCliEncode(t *testing.T) {
	env := newCliEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"hex to 256", []string{"--fg", "#ff0000", "--style", "bold", "--mode", "256"}, "1;38;5;196"},
		{"names to basic", []string{"--fg", "red", "--bg", "bright-blue", "--mode", "basic"}, "31;104"},
		{"config default is rgb", []string{"--fg", "196"}, "38;2;255;0;0"},
		{"styles only", []string{"--style", "underline,bold"}, "1;4"},
		{"nothing", nil, "00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := env.run(t, append([]string{"encode"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}

	for _, bad := range [][]string{{"--fg", "300"}, {"--fg", "chartreuse"}, {"--style", "loud"}, {"--mode", "cmyk"}} {
		_, _, err := env.run(t, append([]string{"encode"}, bad...)...)
		assert.Error(t, err, "%v", bad)
	}
}

func TestCliValidate(t *testing.T) {
	env := newCliEnv(t)

	out, _, err := env.run(t, "validate", "01;31", "38;5;208")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "ok"))

	out, _, err = env.run(t, "validate", "01;31", "300", "ab")
	require.Error(t, err)
	assert.Contains(t, out, "Color value 300 out of range (0-255)")
	assert.Contains(t, out, "Color code must contain only digits and semicolons")
}

func TestCliPreview(t *testing.T) {
	env := newCliEnv(t)

	out, _, err := env.run(t, "preview")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Terminal Preview (simulated)\n"))
	assert.Contains(t, out, "📁  Documents\n")
	assert.Contains(t, out, "🏃  executable\n")

	env.writeConfig(t, "preview:\n  header: false\n  samples:\n    - icon: \"*\"\n      name: main.go\n")
	out, _, err = env.run(t, "preview")
	require.NoError(t, err)
	assert.Equal(t, "*  main.go\n", out)
}

func TestCliPalette(t *testing.T) {
	env := newCliEnv(t)

	out, _, err := env.run(t, "palette")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 16)
	assert.True(t, strings.HasPrefix(lines[0], "   0   1   2"))
	assert.True(t, strings.HasSuffix(lines[15], " 254 255"))
}

func TestCliDefaults(t *testing.T) {
	env := newCliEnv(t)
	target := filepath.Join(env.dir, "system.dircolors")

	_, _, err := env.run(t, "defaults", "--out", target)
	require.NoError(t, err)

	doc, _, err := dircolors.ParseFile(target)
	require.NoError(t, err)
	_, ok := doc.Get("DIR")
	assert.True(t, ok)
}

func TestCliConfigFallback(t *testing.T) {
	env := newCliEnv(t)
	env.writeConfig(t, "editor:\n  default_mode: cmyk\n")

	out, stderr, err := env.run(t, "encode", "--fg", "#ff0000")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Warning")
	assert.Equal(t, "38;2;255;0;0\n", out)
}

func TestCliParseWarnings(t *testing.T) {
	env := newCliEnv(t)
	require.NoError(t, os.WriteFile(env.file, []byte("DIR\nLINK 01;36\n"), 0644))

	out, stderr, err := env.run(t, "get", "LINK")
	require.NoError(t, err)
	assert.Contains(t, out, "LINK 01;36")
	assert.Contains(t, stderr, "line 1")
}
