package dircolors

import (
	"strings"
)

// OtherCategory is the move target meaning "no specific category"
const OtherCategory = "other"

// Built-in, non-extension key groups in output order
var builtinGroups = []struct {
	Name string
	Keys []string
}{
	{"basic", []string{"NORMAL", "FILE", "RESET", "MULTIHARDLINK"}},
	{"directories", []string{"DIR"}},
	{"links", []string{"LINK", "ORPHAN", "MISSING"}},
	{"special", []string{"FIFO", "SOCK", "DOOR", "BLK", "CHR"}},
	{"executables", []string{"EXEC"}},
	{"permissions", []string{"SETUID", "SETGID", "CAPABILITY", "STICKY", "OTHER_WRITABLE", "STICKY_OTHER_WRITABLE"}},
}

// Extension categories and their built-in members. Never mutated; every
// Document gets its own copy through DefaultCategories.
var defaultExtensionCategories = []struct {
	Name       string
	Keyword    string
	Extensions []string
}{
	{"archives", "archive", []string{".tar", ".tgz", ".zip", ".gz", ".bz2", ".xz", ".7z", ".rar"}},
	{"documents", "document", []string{".pdf", ".doc", ".docx", ".txt", ".md", ".rtf"}},
	{"images", "image", []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".tiff"}},
	{"audio", "audio", []string{".mp3", ".wav", ".flac", ".ogg", ".m4a", ".aac"}},
	{"video", "video", []string{".mp4", ".avi", ".mkv", ".mov", ".wmv", ".webm"}},
	{"code", "code", []string{".py", ".js", ".html", ".css", ".c", ".cpp", ".java", ".php"}},
	{"config", "config", []string{".conf", ".cfg", ".ini", ".yaml", ".yml", ".json"}},
}

var displayNames = map[string]string{
	"DIR":                   "Directories",
	"FILE":                  "Regular Files",
	"LINK":                  "Symbolic Links",
	"ORPHAN":                "Broken Links",
	"MISSING":               "Missing Files",
	"FIFO":                  "Named Pipes",
	"SOCK":                  "Sockets",
	"DOOR":                  "Door Files",
	"BLK":                   "Block Devices",
	"CHR":                   "Character Devices",
	"EXEC":                  "Executable Files",
	"SETUID":                "Setuid Files",
	"SETGID":                "Setgid Files",
	"CAPABILITY":            "Capability Files",
	"STICKY":                "Sticky Directories",
	"OTHER_WRITABLE":        "Other-Writable Dirs",
	"STICKY_OTHER_WRITABLE": "Sticky+Other-Writable",
	"NORMAL":                "Normal Files",
	"RESET":                 "Reset Code",
	"MULTIHARDLINK":         "Multi-Hard Links",
}

// DisplayName returns a human label for built-in keys and the key itself
// for everything else
func DisplayName(key string) string {
	if name, ok := displayNames[key]; ok {
		return name
	}
	return key
}

// BuiltinGroup returns the built-in group holding key, if any
func BuiltinGroup(key string) (string, bool) {
	for _, g := range builtinGroups {
		for _, k := range g.Keys {
			if k == key {
				return g.Name, true
			}
		}
	}
	return "", false
}

// IsExtension reports whether key names a file extension
func IsExtension(key string) bool {
	return strings.HasPrefix(key, ".")
}

// CategoryTable maps extension category names to their members. An
// extension belongs to at most one category.
type CategoryTable struct {
	order   []string
	members map[string][]string
}

// DefaultCategories returns a fresh table seeded with the built-in members
func DefaultCategories() *CategoryTable {
	t := &CategoryTable{members: make(map[string][]string, len(defaultExtensionCategories))}
	for _, c := range defaultExtensionCategories {
		t.order = append(t.order, c.Name)
		t.members[c.Name] = append([]string(nil), c.Extensions...)
	}
	return t
}

// Names returns the category names in iteration order
func (t *CategoryTable) Names() []string {
	return append([]string(nil), t.order...)
}

// Has reports whether name is a known extension category
func (t *CategoryTable) Has(name string) bool {
	_, ok := t.members[name]
	return ok
}

// Members returns a copy of the extensions filed under name
func (t *CategoryTable) Members(name string) []string {
	return append([]string(nil), t.members[name]...)
}

// Lookup returns the category currently holding ext
func (t *CategoryTable) Lookup(ext string) (string, bool) {
	for _, name := range t.order {
		for _, e := range t.members[name] {
			if e == ext {
				return name, true
			}
		}
	}
	return "", false
}

// Remove takes ext out of whichever category holds it
func (t *CategoryTable) Remove(ext string) (string, bool) {
	name, ok := t.Lookup(ext)
	if !ok {
		return "", false
	}
	list := t.members[name]
	for i, e := range list {
		if e == ext {
			t.members[name] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	return name, true
}

// Assign files ext under name, removing it from any previous category.
// name must be known.
func (t *CategoryTable) Assign(ext, name string) {
	if current, ok := t.Lookup(ext); ok && current == name {
		return
	}
	t.Remove(ext)
	t.members[name] = append(t.members[name], ext)
}

// Clone returns an independent copy
func (t *CategoryTable) Clone() *CategoryTable {
	out := &CategoryTable{
		order:   append([]string(nil), t.order...),
		members: make(map[string][]string, len(t.members)),
	}
	for name, list := range t.members {
		out.members[name] = append([]string(nil), list...)
	}
	return out
}

// categoryForComment returns the category a section heading names. A
// heading qualifies when it mentions "files" and one of the category
// keywords; keywords are tried in category order.
func categoryForComment(comment string) (string, bool) {
	lower := strings.ToLower(comment)
	if !strings.Contains(lower, "files") {
		return "", false
	}
	for _, c := range defaultExtensionCategories {
		if strings.Contains(lower, c.Keyword) {
			return c.Name, true
		}
	}
	return "", false
}

// normalizeCategory accepts both "images" and the "images_extensions" form
// used by Document.Categories
func normalizeCategory(name string) string {
	return strings.TrimSuffix(strings.TrimSpace(name), "_extensions")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
