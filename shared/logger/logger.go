package logger

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"bazaar/config"
	"bazaar/shared/constant"
)

// InitLogger installs a console writer at trace level until the configuration is read.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// New returns a JSON logger tagged with the service name.
func New(w io.Writer, config *config.Config) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Str("service", config.App.Name).Logger()
}

// level logs everything when the configured name is unknown.
func level(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		log.Warn().Str("loglevel", name).Msg("Unknown log level, falling back to trace")

		return zerolog.TraceLevel
	}

	return lvl
}

func structured(config *config.Config) bool {
	return config.Server.Env != "" && config.Server.Env != constant.ServerEnvDevelopment
}

// SetLogLevel applies the configured level. Outside development the console writer is replaced by JSON lines.
func SetLogLevel(config *config.Config) {
	lvl := level(config.Server.LogLevel)
	zerolog.SetGlobalLevel(lvl)

	if structured(config) {
		log.Logger = New(os.Stdout, config)
	}

	log.Debug().Str("loglevel", lvl.String()).Str("env", config.Server.Env).Msg("Logger configured")
}
