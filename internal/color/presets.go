package color

import "sort"

var schemes = map[string]map[string]string{
	"default": {
		"DIR":  "01;34",
		"LINK": "01;36",
		"EXEC": "01;32",
		".tar": "01;31",
		".txt": "00;32",
	},
	"dark_theme": {
		"DIR":  "01;94",
		"LINK": "01;96",
		"EXEC": "01;92",
		".tar": "01;91",
		".txt": "00;93",
	},
	"high_contrast": {
		"DIR":  "01;93;40",
		"LINK": "01;95;40",
		"EXEC": "01;92;40",
		".tar": "01;91;40",
		".txt": "01;97;40",
	},
}

// Scheme returns a copy of the named preset (key -> SGR string)
func Scheme(name string) (map[string]string, bool) {
	s, ok := schemes[name]
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out, true
}

// SchemeNames lists the presets in sorted order
func SchemeNames() []string {
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
