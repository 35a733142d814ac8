// Package dircolors reads, edits and writes .dircolors files: ordered
// key -> SGR entries, TERM declarations, and the extension categories used
// to group entries for editing.
package dircolors

import (
	"sort"
	"strings"

	"dcedit/internal/errors"
	"dcedit/internal/log"
	"dcedit/pkg/types"

	"github.com/gobwas/glob"
)

// Entry is one "KEY SGR [# comment]" line
type Entry struct {
	Key     string
	SGR     string
	Comment string
}

// NewEntry trims the color code and comment
func NewEntry(key, sgr, comment string) Entry {
	return Entry{
		Key:     strings.TrimSpace(key),
		SGR:     strings.TrimSpace(sgr),
		Comment: strings.TrimSpace(comment),
	}
}

// check reports whether the entry survives a write and re-parse unchanged
func (e Entry) check() error {
	switch {
	case e.Key == "":
		return errors.NewEntryError("entry key cannot be empty", "", errors.InvalidEntry, nil)
	case strings.ContainsAny(e.Key, " \t\r\n") || hasComment(e.Key):
		return errors.NewEntryError("entry key cannot contain spaces or '#'", e.Key, errors.InvalidEntry, nil)
	case e.Key == "TERM":
		return errors.NewEntryError("TERM is reserved for terminal declarations", e.Key, errors.InvalidEntry, nil)
	case e.SGR == "":
		return errors.NewEntryError("color code cannot be empty", e.Key, errors.InvalidColorCode, nil)
	case strings.ContainsAny(e.SGR, "\r\n") || hasComment(e.SGR):
		return errors.NewEntryError("color code cannot contain '#' or line breaks", e.Key, errors.InvalidColorCode, nil)
	case strings.ContainsAny(e.Comment, "\r\n"):
		return errors.NewEntryError("comment cannot contain line breaks", e.Key, errors.InvalidEntry, nil)
	}
	return nil
}

// hasComment reports whether s contains a '#' that would start a comment
func hasComment(s string) bool {
	data, _ := splitComment(s)
	return data != strings.TrimSpace(s)
}

// Line renders the entry the way it is written to a file
func (e Entry) Line() string {
	if e.Comment != "" {
		return e.Key + " " + e.SGR + " # " + e.Comment
	}
	return e.Key + " " + e.SGR
}

// Document is an in-memory .dircolors file. A Document is owned by a single
// caller; it does no locking.
type Document struct {
	// Terms are the names from TERM lines, in file order
	Terms []string
	// Comments are the full-line comments, in file order
	Comments []string

	entries    map[string]Entry
	order      []string
	categories *CategoryTable
}

// New creates an empty document with the built-in extension categories
func New() *Document {
	return &Document{
		entries:    make(map[string]Entry),
		categories: DefaultCategories(),
	}
}

// Len returns the number of entries
func (d *Document) Len() int {
	return len(d.entries)
}

// Keys returns entry keys in first-definition order
func (d *Document) Keys() []string {
	return append([]string(nil), d.order...)
}

// Entries returns all entries in first-definition order
func (d *Document) Entries() []Entry {
	out := make([]Entry, 0, len(d.order))
	for _, k := range d.order {
		out = append(out, d.entries[k])
	}
	return out
}

// Get returns the entry for key
func (d *Document) Get(key string) (Entry, bool) {
	e, ok := d.entries[key]
	return e, ok
}

// Set inserts or overwrites the entry for key. A redefined key keeps its
// original position. Entries that would not read back as the same line are
// rejected; the color code itself is not validated.
func (d *Document) Set(key, sgr, comment string) error {
	e := NewEntry(key, sgr, comment)
	if err := e.check(); err != nil {
		return err
	}
	if _, exists := d.entries[e.Key]; !exists {
		d.order = append(d.order, e.Key)
	}
	d.entries[e.Key] = e
	return nil
}

// SetColor changes the color of key, keeping any existing comment
func (d *Document) SetColor(key, sgr string) error {
	comment := ""
	if e, ok := d.entries[key]; ok {
		comment = e.Comment
	}
	return d.Set(key, sgr, comment)
}

// Remove deletes the entry for key and reports whether it existed
func (d *Document) Remove(key string) bool {
	if _, ok := d.entries[key]; !ok {
		return false
	}
	delete(d.entries, key)
	for i, k := range d.order {
		if k == key {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return true
}

// CategoryTable returns a copy of the document's extension categories
func (d *Document) CategoryTable() *CategoryTable {
	return d.categories.Clone()
}

// CategoryOf returns the extension category holding ext, or OtherCategory
func (d *Document) CategoryOf(ext string) string {
	if name, ok := d.categories.Lookup(ext); ok {
		return name
	}
	return OtherCategory
}

// MoveExtension files ext under target. target may be OtherCategory, which
// only removes ext from its current category. Nothing changes on error.
func (d *Document) MoveExtension(ext, target string) error {
	if !IsExtension(ext) {
		return errors.NewEntryError("not a file extension", ext, errors.InvalidEntry, nil)
	}
	if _, ok := d.entries[ext]; !ok {
		return errors.NewEntryError("no entry for extension", ext, errors.InvalidEntry, nil)
	}
	target = normalizeCategory(target)
	if target != OtherCategory && !d.categories.Has(target) {
		return errors.NewEntryError("unknown category", target, errors.UnknownCategory, nil)
	}

	from, _ := d.categories.Remove(ext)
	if target != OtherCategory {
		d.categories.Assign(ext, target)
	}
	log.LogWithFields(log.F("extension", ext), log.F("from", from), log.F("to", target)).Debug("moved extension")
	return nil
}

// MoveExtensionToCategory is MoveExtension reporting success as a bool
func (d *Document) MoveExtensionToCategory(ext, target string) bool {
	return d.MoveExtension(ext, target) == nil
}

// Categories returns a snapshot of the non-empty groups: built-in groups by
// name, extension categories as "<name>_extensions", uncategorized
// extensions as "other_extensions" and any other unknown keys as
// "other_keys". It never modifies the document.
func (d *Document) Categories() map[string][]string {
	out := make(map[string][]string)
	for _, g := range builtinGroups {
		var present []string
		for _, k := range g.Keys {
			if _, ok := d.entries[k]; ok {
				present = append(present, k)
			}
		}
		if len(present) > 0 {
			out[g.Name] = present
		}
	}
	for _, name := range d.categories.order {
		var present []string
		for _, ext := range d.categories.members[name] {
			if _, ok := d.entries[ext]; ok {
				present = append(present, ext)
			}
		}
		if len(present) > 0 {
			out[name+"_extensions"] = present
		}
	}
	if other := d.uncategorizedExtensions(); len(other) > 0 {
		out["other_extensions"] = other
	}
	if unknown := d.unknownKeys(); len(unknown) > 0 {
		out["other_keys"] = unknown
	}
	return out
}

// CategoryKeys returns the keys of Categories in display order
func (d *Document) CategoryKeys() []string {
	cats := d.Categories()
	var keys []string
	for _, g := range builtinGroups {
		if _, ok := cats[g.Name]; ok {
			keys = append(keys, g.Name)
		}
	}
	for _, name := range d.categories.order {
		if _, ok := cats[name+"_extensions"]; ok {
			keys = append(keys, name+"_extensions")
		}
	}
	for _, k := range []string{"other_extensions", "other_keys"} {
		if _, ok := cats[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

func (d *Document) uncategorizedExtensions() []string {
	var out []string
	for key := range d.entries {
		if !IsExtension(key) {
			continue
		}
		if _, ok := d.categories.Lookup(key); !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// unknownKeys are keys that are neither extensions nor built-in types
// (e.g. "*.tar" globs or COLORTERM)
func (d *Document) unknownKeys() []string {
	var out []string
	for key := range d.entries {
		if IsExtension(key) {
			continue
		}
		if _, ok := BuiltinGroup(key); !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// Match returns the entries whose key matches a glob such as ".mp*" or
// "{DIR,LINK}", in document order
func (d *Document) Match(pattern string) ([]Entry, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid pattern %q", pattern)
	}
	var out []Entry
	for _, k := range d.order {
		if g.Match(k) {
			out = append(out, d.entries[k])
		}
	}
	return out, nil
}

// ClassifyUncategorized files uncategorized extensions under the category of
// the first rule whose glob matches. Extensions already in a category are
// left alone. It returns how many extensions were filed.
func (d *Document) ClassifyUncategorized(rules []types.CategoryRule) (int, error) {
	type compiled struct {
		g        glob.Glob
		category string
	}
	matchers := make([]compiled, 0, len(rules))
	for _, r := range rules {
		category := normalizeCategory(r.Category)
		if !d.categories.Has(category) {
			return 0, errors.NewEntryError("unknown category", r.Category, errors.UnknownCategory, nil)
		}
		g, err := glob.Compile(r.Match)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid category rule %q", r.Match)
		}
		matchers = append(matchers, compiled{g, category})
	}

	filed := 0
	for _, ext := range d.uncategorizedExtensions() {
		for _, m := range matchers {
			if m.g.Match(ext) {
				d.categories.Assign(ext, m.category)
				filed++
				break
			}
		}
	}
	return filed, nil
}

// ApplyScheme sets every key of a preset, keeping existing comments
func (d *Document) ApplyScheme(scheme map[string]string) {
	keys := make([]string, 0, len(scheme))
	for k := range scheme {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_ = d.SetColor(k, scheme[k])
	}
}

// Clone returns an independent copy of the document
func (d *Document) Clone() *Document {
	out := &Document{
		Terms:      append([]string(nil), d.Terms...),
		Comments:   append([]string(nil), d.Comments...),
		entries:    make(map[string]Entry, len(d.entries)),
		order:      append([]string(nil), d.order...),
		categories: d.categories.Clone(),
	}
	for k, e := range d.entries {
		out.entries[k] = e
	}
	return out
}
