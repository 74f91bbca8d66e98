package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once sync.Once
	log  = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// Init configures the process-wide logger once. Development gets a human
// readable console at debug level, everything else JSON lines at info.
func Init(env string) {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339
		level := zerolog.InfoLevel
		var out io.Writer = os.Stdout
		if strings.EqualFold(env, "development") {
			level = zerolog.DebugLevel
			out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
		}
		log = zerolog.New(out).Level(level).With().Timestamp().Logger()
	})
}

func Debug(msg string, args ...any) { emit(log.Debug(), msg, args) }

func Info(msg string, args ...any) { emit(log.Info(), msg, args) }

func Warn(msg string, args ...any) { emit(log.Warn(), msg, args) }

func Error(msg string, args ...any) { emit(log.Error(), msg, args) }

// Fatal logs the message and exits the process.
func Fatal(msg string, args ...any) { emit(log.Fatal(), msg, args) }

// emit tolerates loose call sites: args are key/value pairs, but a bare
// error (or any odd trailing value) is attached under "error".
func emit(e *zerolog.Event, msg string, args []any) {
	for i := 0; i < len(args); {
		if key, ok := args[i].(string); ok && i+1 < len(args) {
			e = e.Interface(key, args[i+1])
			i += 2
			continue
		}
		if err, ok := args[i].(error); ok {
			e = e.Err(err)
		} else {
			e = e.Interface("error", args[i])
		}
		i++
	}
	e.Msg(msg)
}
