// Package rules loads a committed filter policy from a YAML file.
package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File holds ordered exclude and include pattern lists, typically
// checked into the repository next to the build files.
type File struct {
	Exclude []string `yaml:"exclude"`
	Include []string `yaml:"include"`
}

func Load(path string) (File, error) {
	var f File
	buf, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("unable to read rules file: %w", err)
	}
	if err := yaml.Unmarshal(buf, &f); err != nil {
		return f, fmt.Errorf("unable to parse rules file %s: %w", path, err)
	}
	return f, nil
}
