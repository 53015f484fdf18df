// Package wrapper implements the compiler shim: record the invocation in
// the shared log, forward to the real compiler, propagate its exit status.
package wrapper

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"

	"compdb/internal/argv"
	"compdb/internal/compdb"
	"compdb/internal/config"
	"compdb/internal/generate"
)

// Shim is the entry point shared by the cc and cxx shim binaries. When
// the generate trigger is present the configured log is turned into a
// database instead of forwarding a compile.
func Shim(compilerEnv, fallback string, args []string) (int, error) {
	cfg, cfgErr := config.FromEnv(compilerEnv, fallback)
	if logArg, ok := GenerateArg(args); ok || cfg.Generate {
		logFile := cfg.LogFile
		if logArg != "" {
			logFile = logArg
		}
		if logFile == "" {
			return 1, config.ErrMissingLogPath
		}
		if err := generate.Run(logFile, compdb.DefaultPath); err != nil {
			return 1, err
		}
		return 0, nil
	}
	if cfgErr != nil {
		return 1, cfgErr
	}
	return Run(cfg, args)
}

// GenerateArg reports whether args request database generation instead of
// a compile, returning the log path following --generate when one was given.
func GenerateArg(args []string) (string, bool) {
	for i, arg := range args {
		if arg == "--generate" {
			if i+1 < len(args) {
				return args[i+1], true
			}
			return "", true
		}
	}
	return "", false
}

// Run records one invocation and forwards it to the underlying compiler,
// returning the compiler's exit status. The logged command starts with
// the compiler executable so each entry replays as-is. An invocation
// with no detectable source file is still logged, with an empty file,
// so capture stays lossless even for misrouted link steps.
func Run(cfg config.Config, args []string) (int, error) {
	if !filepath.IsAbs(cfg.LogFile) {
		return 1, fmt.Errorf("log file path must be absolute: %s", cfg.LogFile)
	}
	wd, err := os.Getwd()
	if err != nil {
		return 1, fmt.Errorf("unable to get cwd: %w", err)
	}
	entry, err := argv.Reconstruct(append([]string{cfg.Compiler}, args...), wd)
	if err != nil {
		if !errors.Is(err, argv.ErrNoSourceFile) {
			return 1, err
		}
		log.Warn().Str("command", entry.Command).Msg("no source file in arguments")
	}
	if err := AppendEntry(cfg.LogFile, entry); err != nil {
		return 1, err
	}
	return forward(cfg.Compiler, args)
}

// AppendEntry writes the entry as one newline-terminated line using a
// single write on an O_APPEND descriptor. POSIX guarantees such appends
// do not interleave, which is the only synchronization a parallel build
// needs here; on a filesystem without that guarantee this would need an
// explicit file lock instead.
func AppendEntry(path string, entry compdb.CompileCommand) error {
	buf, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	buf = append(buf, '\n')
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	if _, err := f.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("unable to append to log file: %w", err)
	}
	return f.Close()
}

// forward runs the compiler with the original arguments and untouched
// stdio, so the enclosing build system sees exactly what it would have
// seen without the shim.
func forward(compiler string, args []string) (int, error) {
	cmd := exec.Command(compiler, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return 128 + int(status.Signal()), nil
		}
		return exitErr.ExitCode(), nil
	}
	return 1, fmt.Errorf("unable to run %s: %w", compiler, err)
}
