package dircolors

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"dcedit/internal/errors"
	"dcedit/internal/log"
)

const header = "# Configuration file for dircolors\n# Generated by dcedit\n"

type section struct {
	title   string
	entries []Entry
	always  bool
}

// sections lays out the document in output order
func (d *Document) sections() []section {
	pick := func(groups ...string) []Entry {
		var out []Entry
		for _, g := range builtinGroups {
			for _, want := range groups {
				if g.Name != want {
					continue
				}
				for _, k := range g.Keys {
					if e, ok := d.entries[k]; ok {
						out = append(out, e)
					}
				}
			}
		}
		return out
	}

	secs := []section{
		{title: "Basic file types", entries: pick("basic"), always: true},
		{title: "Directories and links", entries: pick("directories", "links"), always: true},
		{title: "Special file types", entries: pick("special", "executables", "permissions"), always: true},
	}
	for _, name := range d.categories.order {
		var entries []Entry
		for _, ext := range d.categories.members[name] {
			if e, ok := d.entries[ext]; ok {
				entries = append(entries, e)
			}
		}
		secs = append(secs, section{title: titleCase(name) + " files", entries: entries})
	}

	var other []Entry
	for _, k := range d.uncategorizedExtensions() {
		other = append(other, d.entries[k])
	}
	secs = append(secs, section{title: "Other file extensions", entries: other})

	var unknown []Entry
	for _, k := range d.unknownKeys() {
		unknown = append(unknown, d.entries[k])
	}
	secs = append(secs, section{title: "Other entries", entries: unknown})
	return secs
}

// Write serializes the document. Output is canonical: entries are grouped
// by section, so formatting and order of the source file are not kept.
func Write(w io.Writer, d *Document) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(header)

	if len(d.Terms) > 0 {
		bw.WriteString("\n# Terminal type definitions\n")
		for _, term := range d.Terms {
			bw.WriteString("TERM " + term + "\n")
		}
	}

	for _, s := range d.sections() {
		if len(s.entries) == 0 && !s.always {
			continue
		}
		bw.WriteString("\n# " + s.title + "\n")
		for _, e := range s.entries {
			bw.WriteString(e.Line() + "\n")
		}
	}
	return bw.Flush()
}

// WriteFile writes the document to path through a temporary file in the
// same directory, so a failed write leaves the old file intact. A symlinked
// path is written through to its target and the link is left in place.
func WriteFile(d *Document, path string) error {
	path, err := resolveTarget(path)
	if err != nil {
		return writeError(path, err)
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".dircolors-*.tmp")
	if err != nil {
		return writeError(path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := Write(tmp, d); err != nil {
		tmp.Close()
		return writeError(path, err)
	}
	if err := tmp.Close(); err != nil {
		return writeError(path, err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return writeError(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return writeError(path, err)
	}

	log.LogWithFields(log.F("path", path), log.F("entries", d.Len())).Debug("wrote dircolors file")
	return nil
}

// resolveTarget follows symlinks at path. Dangling links resolve to the
// file they name so the write creates it.
func resolveTarget(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return path, nil
	}
	target, err := filepath.EvalSymlinks(path)
	if err == nil {
		return target, nil
	}
	if !os.IsNotExist(err) {
		return path, err
	}
	link, err := os.Readlink(path)
	if err != nil {
		return path, err
	}
	if !filepath.IsAbs(link) {
		link = filepath.Join(filepath.Dir(path), link)
	}
	return link, nil
}

func writeError(path string, err error) error {
	if os.IsPermission(err) {
		return errors.NewFileError("cannot write dircolors file", path, errors.FileAccessDenied, err)
	}
	if os.IsNotExist(err) {
		return errors.NewFileError("cannot write dircolors file", path, errors.InvalidPath, err)
	}
	return errors.NewFileError("cannot write dircolors file", path, errors.FileWriteFailed, err)
}
