package config

//go:generate go run ../tools/schema-generator

// StoreConfig selects the table to repair.
type StoreConfig struct {
	// Backend is "dynamodb" (default) or "file".
	Backend string `yaml:"backend,omitempty" validate:"omitempty,oneof=dynamodb file"`

	// Region and Table locate the DynamoDB table.
	Region string `yaml:"region,omitempty" validate:"required_if=Backend dynamodb"`
	Table  string `yaml:"table,omitempty" validate:"required_if=Backend dynamodb"`

	// Endpoint overrides the DynamoDB endpoint, e.g. http://localhost:8000
	// for DynamoDB Local.
	Endpoint string `yaml:"endpoint,omitempty" validate:"omitempty,url"`

	// Path is the JSON export read and rewritten by the file backend.
	Path string `yaml:"path,omitempty" validate:"required_if=Backend file"`
}

// FixConfig tunes a fix run.
type FixConfig struct {
	// UniqueIDs bumps the sequence of synthesized ids that collide.
	// Unset leaves the value of a lower-precedence layer in place.
	UniqueIDs *bool `yaml:"unique_ids,omitempty"`

	// RemoveStale deletes items left under an id that was replaced.
	RemoveStale *bool `yaml:"remove_stale,omitempty"`

	// BackupPath receives the scanned items before anything is written.
	BackupPath string `yaml:"backup_path,omitempty"`

	// MaxDiffLines controls how many changed lines of a record diff to show.
	// 0 (default): Show all diff lines without truncation.
	MaxDiffLines int `yaml:"max_diff_lines,omitempty" validate:"gte=0"`

	// VerifyHint is the command suggested for checking the query API
	// after a run.
	VerifyHint string `yaml:"verify_hint,omitempty"`
}

// Config is the top-level configuration structure for recfix.
type Config struct {
	Store StoreConfig `yaml:"store,omitempty"`
	Fix   FixConfig   `yaml:"fix,omitempty"`
}

// UniqueIDsEnabled reports whether unique_ids is set to true.
func (f FixConfig) UniqueIDsEnabled() bool {
	return f.UniqueIDs != nil && *f.UniqueIDs
}

// RemoveStaleEnabled reports whether remove_stale is set to true.
func (f FixConfig) RemoveStaleEnabled() bool {
	return f.RemoveStale != nil && *f.RemoveStale
}
