// Command compdb-cc is a drop-in replacement for the C compiler that
// records each invocation in the shared log before forwarding it.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"compdb/internal/config"
	"compdb/internal/wrapper"
)

const defaultCompiler = "/usr/bin/gcc"

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.StampMilli,
	})
}

func main() {
	code, err := wrapper.Shim(config.EnvCC, defaultCompiler, os.Args[1:])
	if err != nil {
		log.Error().Err(err).Msg("compiler shim failed")
	}
	os.Exit(code)
}
