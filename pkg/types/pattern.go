package types

// CategoryRule files extensions matching a glob under a category.
// It is used within the application's configuration.
type CategoryRule struct {
	Match    string `yaml:"match"`    // Glob pattern matched against the extension key (e.g., ".tf*", ".{rs,go}").
	Category string `yaml:"category"` // Extension category name (e.g., "code", "config").
}
