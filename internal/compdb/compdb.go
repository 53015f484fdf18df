package compdb

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultPath is where build tooling expects the database.
const DefaultPath = "compile_commands.json"

type (
	// CompileCommand is a single entry in the compile_commands.json file.
	// Docs about compile_commands.json format: https://clang.llvm.org/docs/JSONCompilationDatabase.html#format
	CompileCommand struct {
		Directory string `json:"directory"`
		Command   string `json:"command"`
		File      string `json:"file"`
	}

	Database []CompileCommand
)

// Load reads a compilation database from path.
func Load(path string) (Database, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read compilation database: %w", err)
	}
	var db Database
	if err := json.Unmarshal(buf, &db); err != nil {
		return nil, fmt.Errorf("unable to parse compilation database %s: %w", path, err)
	}
	return db, nil
}

// Save writes the database to path as a pretty-printed JSON array.
func (db Database) Save(path string) error {
	if db == nil {
		db = Database{}
	}
	buf, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o664)
}
