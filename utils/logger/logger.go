package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/datazip-inc/sieve/constants"
)

// console receives human readable logs. Results go to stdout, logs never do.
var console io.Writer = os.Stderr

// the default logger writes info and above to console until Init is called,
// so failures before configuration is loaded are still reported
var logger = newLogger(zerolog.InfoLevel)

func newLogger(level zerolog.Level, extra ...io.Writer) zerolog.Logger {
	writers := append([]io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.RFC3339,
	}}, extra...)

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
}

// Init configures the process-wide logger from LOG_LEVEL and LOG_FILE.
func Init() {
	level, err := zerolog.ParseLevel(strings.ToLower(viper.GetString(constants.LogLevel)))
	if err != nil || viper.GetString(constants.LogLevel) == "" {
		level = zerolog.InfoLevel
	}

	var writers []io.Writer
	if path := viper.GetString(constants.LogFile); path != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   path,
			MaxSize:    constants.LogFileMaxSizeMB,
			MaxBackups: constants.LogFileMaxBackups,
			MaxAge:     constants.LogFileMaxAgeDays,
		})
	}

	logger = newLogger(level, writers...)
	if err != nil {
		logger.Warn().Msgf("invalid log level [%s], falling back to info", viper.GetString(constants.LogLevel))
	}
}

// SetOutput replaces the logger with one writing JSON lines to w.
func SetOutput(w io.Writer, level zerolog.Level) {
	logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func Debug(v ...any) {
	logger.Debug().Msg(fmt.Sprint(v...))
}

func Debugf(format string, v ...any) {
	logger.Debug().Msgf(format, v...)
}

func Info(v ...any) {
	logger.Info().Msg(fmt.Sprint(v...))
}

func Infof(format string, v ...any) {
	logger.Info().Msgf(format, v...)
}

func Warn(v ...any) {
	logger.Warn().Msg(fmt.Sprint(v...))
}

func Warnf(format string, v ...any) {
	logger.Warn().Msgf(format, v...)
}

func Error(v ...any) {
	logger.Error().Msg(fmt.Sprint(v...))
}

func Errorf(format string, v ...any) {
	logger.Error().Msgf(format, v...)
}

func Fatal(v ...any) {
	logger.Fatal().Msg(fmt.Sprint(v...))
}

func Fatalf(format string, v ...any) {
	logger.Fatal().Msgf(format, v...)
}
