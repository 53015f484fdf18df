// Package filter removes compilation database entries by path pattern,
// with include patterns overriding excludes and backups taken before any
// rewrite.
package filter

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/rs/zerolog/log"

	"compdb/internal/compdb"
)

// ErrBackupFailed means the database was left untouched because its
// backup could not be written.
var ErrBackupFailed = errors.New("unable to create backup")

type Patterns struct {
	Exclude []*regexp.Regexp
	Include []*regexp.Regexp
}

// Compile compiles both pattern sets. Any invalid pattern is a fatal
// input error, reported before anything is read or written.
func Compile(excludes, includes []string) (Patterns, error) {
	var pats Patterns
	var err error
	if pats.Exclude, err = compile(excludes); err != nil {
		return pats, err
	}
	if pats.Include, err = compile(includes); err != nil {
		return pats, err
	}
	return pats, nil
}

func compile(patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		res = append(res, re)
	}
	return res, nil
}

// Apply returns the entries that survive filtering. An entry is dropped
// when its file matches any exclude pattern and no include pattern;
// include always wins over exclude.
func Apply(db compdb.Database, pats Patterns) compdb.Database {
	kept := make(compdb.Database, 0, len(db))
	for _, entry := range db {
		if excluded(entry.File, pats) {
			continue
		}
		kept = append(kept, entry)
	}
	return kept
}

func excluded(file string, pats Patterns) bool {
	matched := false
	for _, re := range pats.Exclude {
		if re.MatchString(file) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	for _, re := range pats.Include {
		if re.MatchString(file) {
			return false
		}
	}
	return true
}

// BackupPath returns the lowest-numbered unused backup suffix for path:
// path.bak, path.bak.1, path.bak.2, ...
func BackupPath(path string) string {
	base := path + ".bak"
	candidate := base
	for n := 1; ; n++ {
		if _, err := os.Lstat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate
		}
		candidate = fmt.Sprintf("%s.%d", base, n)
	}
}

func backup(path string) (string, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackupFailed, err)
	}
	dst := BackupPath(path)
	if err := os.WriteFile(dst, buf, 0o664); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackupFailed, err)
	}
	return dst, nil
}

// Run filters the database at path in place. The original content is
// copied to a fresh backup first; if that fails nothing is modified.
func Run(path string, excludes, includes []string) error {
	pats, err := Compile(excludes, includes)
	if err != nil {
		return err
	}
	db, err := compdb.Load(path)
	if err != nil {
		return err
	}
	backupPath, err := backup(path)
	if err != nil {
		return err
	}
	log.Info().Str("backup", backupPath).Msg("backup created")

	kept := Apply(db, pats)
	if err := kept.Save(path); err != nil {
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	log.Info().
		Int("before", len(db)).
		Int("after", len(kept)).
		Int("removed", len(db)-len(kept)).
		Msg("filtered compilation database")
	return nil
}
