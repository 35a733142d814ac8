package dircolors

import (
	"bytes"
	"context"
	"os/exec"

	"dcedit/internal/log"
)

// defaultsCommand prints the system color database. Tests replace it.
var defaultsCommand = []string{"dircolors", "--print-database"}

var fallbackEntries = []Entry{
	{Key: "DIR", SGR: "01;34"},
	{Key: "LINK", SGR: "01;36"},
	{Key: "EXEC", SGR: "01;32"},
}

// LoadSystemDefaults returns the system dircolors database. When the
// database cannot be read it returns a small built-in set instead and
// reports fallback as true.
func LoadSystemDefaults(ctx context.Context) (doc *Document, fallback bool) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, defaultsCommand[0], defaultsCommand[1:]...)
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		log.LogWithFields(log.F("command", defaultsCommand[0])).Debugf("using built-in defaults: %v", err)
		return fallbackDefaults(), true
	}

	pc := parseContext{lines: splitLines(stdout.Bytes())}
	doc, _ = pc.parse()
	if doc.Len() == 0 {
		return fallbackDefaults(), true
	}
	return doc, false
}

func fallbackDefaults() *Document {
	doc := New()
	for _, e := range fallbackEntries {
		_ = doc.Set(e.Key, e.SGR, e.Comment)
	}
	return doc
}
