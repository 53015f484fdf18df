// Package generate turns the invocation log into compile_commands.json.
package generate

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"compdb/internal/compdb"
)

type key struct {
	directory string
	file      string
}

// Parse reads one log entry per line. Lines that cannot be parsed, and
// entries captured without a source file, are skipped and counted rather
// than aborting: one bad line must never cost a whole build's worth of
// captured data. When the same (directory, file) appears more than once
// the last occurrence wins, keeping the position of the first.
func Parse(r io.Reader) (compdb.Database, int, error) {
	db := compdb.Database{}
	index := make(map[key]int)
	skipped := 0

	// bufio.Reader rather than a Scanner: a Scanner aborts the whole
	// scan once a line outgrows its buffer, and an over-long line (a
	// torn tail from a crashed build, say) must only cost itself.
	reader := bufio.NewReader(r)
	for {
		line, readErr := reader.ReadString('\n')
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			entry, ok := parseLine(trimmed)
			if !ok {
				skipped++
			} else if i, dup := index[key{entry.Directory, entry.File}]; dup {
				db[i] = entry
			} else {
				index[key{entry.Directory, entry.File}] = len(db)
				db = append(db, entry)
			}
		}
		if readErr == io.EOF {
			return db, skipped, nil
		}
		if readErr != nil {
			return db, skipped, fmt.Errorf("unable to read log: %w", readErr)
		}
	}
}

func parseLine(line string) (compdb.CompileCommand, bool) {
	var entry compdb.CompileCommand
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		log.Warn().Int("bytes", len(line)).Msg("skipping malformed log line")
		return entry, false
	}
	if entry.File == "" {
		log.Warn().Str("command", entry.Command).Msg("skipping entry with no source file")
		return entry, false
	}
	return entry, true
}

// Run generates the compilation database from logFile and writes it to dst.
func Run(logFile, dst string) error {
	f, err := os.Open(logFile)
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	defer f.Close()

	db, skipped, err := Parse(f)
	if err != nil {
		return err
	}
	if err := db.Save(dst); err != nil {
		return fmt.Errorf("unable to write %s: %w", dst, err)
	}
	log.Info().
		Int("entries", len(db)).
		Int("skipped", skipped).
		Str("dst", dst).
		Msg("generated compilation database")
	return nil
}
