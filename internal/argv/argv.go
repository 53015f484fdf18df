package argv

import (
	"errors"
	"path/filepath"
	"strings"

	"compdb/internal/compdb"
)

// ErrNoSourceFile is returned when no argument looks like a compiled source file.
var ErrNoSourceFile = errors.New("no source file in arguments")

var sourceExts = map[string]bool{
	".c":   true,
	".cc":  true,
	".cpp": true,
	".cxx": true,
	".c++": true,
	".C":   true,
	".m":   true,
	".mm":  true,
}

// valueFlags take their value as a separate following argument, so that
// value must never be mistaken for a source file.
var valueFlags = map[string]bool{
	"-o":             true,
	"-I":             true,
	"-D":             true,
	"-U":             true,
	"-isystem":       true,
	"-iquote":        true,
	"-idirafter":     true,
	"-include":       true,
	"-imacros":       true,
	"-MF":            true,
	"-MT":            true,
	"-MQ":            true,
	"-x":             true,
	"-arch":          true,
	"-Xclang":        true,
	"-Xpreprocessor": true,
	"-Xassembler":    true,
	"-Xlinker":       true,
}

// Reconstruct builds the log entry for one compiler invocation: the
// shell-safe command string plus the source file as it appeared in the
// arguments. When no source file is found the entry is still returned,
// with an empty File, alongside ErrNoSourceFile.
func Reconstruct(args []string, dir string) (compdb.CompileCommand, error) {
	entry := compdb.CompileCommand{
		Directory: dir,
		Command:   Command(args),
	}
	file, err := SourceFile(args)
	if err != nil {
		return entry, err
	}
	entry.File = file
	return entry, nil
}

// Command joins args into a single command string, quoting each argument
// so a POSIX shell splits it back into the exact original vector.
func Command(args []string) string {
	quoted := make([]string, 0, len(args))
	for _, arg := range args {
		quoted = append(quoted, escape(arg))
	}
	return strings.Join(quoted, " ")
}

// SourceFile locates the compiled source file among args. The last
// candidate wins, matching how compilers treat repeated inputs.
func SourceFile(args []string) (string, error) {
	var src string
	var prev string
	for _, arg := range args {
		consumed := valueFlags[prev]
		prev = arg
		if consumed {
			continue
		}
		if strings.HasPrefix(arg, "-") {
			continue
		}
		if sourceExts[filepath.Ext(arg)] {
			src = arg
		}
	}
	if src == "" {
		return "", ErrNoSourceFile
	}
	return src, nil
}

func isShellSafeChar(ch rune) bool {
	if 'A' <= ch && ch <= 'Z' {
		return true
	}
	if 'a' <= ch && ch <= 'z' {
		return true
	}
	if '0' <= ch && ch <= '9' {
		return true
	}
	switch ch {
	case '_', '+', '-', '.', '/', '=', ':', ',', '@', '%':
		return true
	}
	return false
}

func needShellEscape(s string) bool {
	for _, ch := range s {
		if !isShellSafeChar(ch) {
			return true
		}
	}
	return false
}

func escape(s string) string {
	if s == "" {
		return "''"
	}
	if !needShellEscape(s) {
		return s
	}
	var sb strings.Builder
	sb.WriteString("'")
	for _, ch := range s {
		if ch == '\'' {
			sb.WriteString(`'\''`)
			continue
		}
		sb.WriteRune(ch)
	}
	sb.WriteString("'")
	return sb.String()
}
