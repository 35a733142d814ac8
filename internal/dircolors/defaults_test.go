package dircolors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withDefaultsCommand(t *testing.T, args ...string) {
	t.Helper()
	orig := defaultsCommand
	defaultsCommand = args
	t.Cleanup(func() { defaultsCommand = orig })
}

func TestLoadSystemDefaults(t *testing.T) {
	t.Run("parses command output", func(t *testing.T) {
		withDefaultsCommand(t, "printf", `# Image files\nDIR 01;35\n.txt 00;31\nTERM linux\n`)

		doc, fallback := LoadSystemDefaults(context.Background())
		assert.False(t, fallback)

		e, ok := doc.Get("DIR")
		require.True(t, ok)
		assert.Equal(t, "01;35", e.SGR)
		assert.Equal(t, []string{"linux"}, doc.Terms)
		// No category inference for the system database
		assert.Equal(t, "documents", doc.CategoryOf(".txt"))
	})

	fallbackCases := map[string][]string{
		"missing command": {"/nonexistent/dircolors"},
		"non-zero exit":   {"false"},
		"empty output":    {"true"},
	}
	for name, cmd := range fallbackCases {
		t.Run(name, func(t *testing.T) {
			withDefaultsCommand(t, cmd...)

			doc, fallback := LoadSystemDefaults(context.Background())
			assert.True(t, fallback)
			assert.Equal(t, []string{"DIR", "LINK", "EXEC"}, doc.Keys())
			e, _ := doc.Get("EXEC")
			assert.Equal(t, "01;32", e.SGR)
		})
	}
}
