package dircolors

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"dcedit/internal/errors"
	"dcedit/internal/log"
)

// ErrInvalidEncoding is returned for input that is not valid UTF-8
var ErrInvalidEncoding = errors.New("file is not valid UTF-8")

// Warning describes a line that was skipped while parsing
type Warning struct {
	Line int
	Text string
	Err  error
}

func (w Warning) Error() string {
	return fmt.Sprintf("line %d: %v: %q", w.Line, w.Err, w.Text)
}

// Line-level problems. These never abort a parse.
var (
	errMissingColor = errors.New("entry has no color code")
	errMissingTerm  = errors.New("TERM declaration has no terminal name")
)

// parseContext carries the raw lines of a file. Category inference only
// runs when inferCategories is set by the entry point.
type parseContext struct {
	lines           []string
	inferCategories bool
}

// Parse reads a whole .dircolors file. Malformed lines are skipped and
// returned as warnings; only a read failure or undecodable input fails the
// parse, in which case no Document is returned.
func Parse(r io.Reader) (*Document, []Warning, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading dircolors data")
	}
	if !utf8.Valid(data) {
		return nil, nil, ErrInvalidEncoding
	}
	ctx := parseContext{lines: splitLines(data), inferCategories: true}
	doc, warnings := ctx.parse()
	return doc, warnings, nil
}

// ParseFile parses the file at path
func ParseFile(path string) (*Document, []Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fileError(path, err)
	}
	defer f.Close()

	doc, warnings, err := Parse(f)
	if err != nil {
		return nil, nil, errors.NewFileError("cannot read dircolors file", path, errors.FileReadFailed, err)
	}
	log.LogWithFields(log.F("path", path), log.F("entries", doc.Len()), log.F("warnings", len(warnings))).Debug("parsed dircolors file")
	return doc, warnings, nil
}

func fileError(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return errors.NewFileError("dircolors file not found", path, errors.FileNotFound, err)
	case os.IsPermission(err):
		return errors.NewFileError("cannot open dircolors file", path, errors.FileAccessDenied, err)
	}
	return errors.NewFileError("cannot open dircolors file", path, errors.FileReadFailed, err)
}

func splitLines(data []byte) []string {
	raw := bytes.Split(data, []byte("\n"))
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, strings.TrimRight(string(l), "\r"))
	}
	return lines
}

func (ctx parseContext) parse() (*Document, []Warning) {
	doc := New()
	var warnings []Warning
	for i, line := range ctx.lines {
		if err := doc.parseLine(line); err != nil {
			w := Warning{Line: i + 1, Text: strings.TrimSpace(line), Err: err}
			log.LogWithFields(log.F("line", w.Line), log.F("text", w.Text)).Debugf("skipping line: %v", err)
			warnings = append(warnings, w)
		}
	}
	if ctx.inferCategories {
		doc.categories = inferCategories(ctx.lines)
	}
	return doc, warnings
}

// parseLine applies one line to the document
func (d *Document) parseLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if strings.HasPrefix(line, "#") {
		d.Comments = append(d.Comments, line)
		return nil
	}

	data, comment := splitComment(line)
	if data == "" {
		return nil
	}

	// Only "TERM " with a literal space declares a terminal. "TERM\tx"
	// falls through to Set, which rejects TERM as a key.
	if data == "TERM" {
		return errMissingTerm
	}
	if name, ok := strings.CutPrefix(data, "TERM "); ok {
		d.Terms = append(d.Terms, strings.TrimSpace(name))
		return nil
	}
	fields := strings.Fields(data)
	if len(fields) < 2 {
		return errMissingColor
	}
	return d.Set(fields[0], strings.Join(fields[1:], " "), comment)
}

// splitComment splits at the first '#' not escaped by a backslash
func splitComment(line string) (data, comment string) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '#':
			return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:])
		}
	}
	return strings.TrimSpace(line), ""
}

// inferCategories rebuilds the extension categories from the file's own
// section headings. A heading such as "# Image files" opens a section;
// extension lines that follow are filed under it until a blank line or any
// other comment closes it.
func inferCategories(lines []string) *CategoryTable {
	table := DefaultCategories()
	current := ""
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			current = ""
		case strings.HasPrefix(line, "#"):
			current, _ = categoryForComment(line)
		default:
			if current == "" {
				continue
			}
			data, _ := splitComment(line)
			fields := strings.Fields(data)
			if len(fields) >= 2 && IsExtension(fields[0]) {
				table.Assign(fields[0], current)
			}
		}
	}
	return table
}
