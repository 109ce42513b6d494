package logs

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func init() {
	zerolog.TimeFieldFormat = "2006-01-02T15:04:05Z07:00"
	zerolog.LevelFieldName = "severity"
	zerolog.LevelFieldMarshalFunc = func(l zerolog.Level) string {
		return strings.ToUpper(l.String())
	}
}

// SetOutput redirige les logs (utilisé par les tests)
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// LogJSON écrit une ligne JSON : "DEBUG", "INFO", "WARN", "ERROR" & "FATAL"
func LogJSON(level, message string, fields map[string]interface{}) {
	var event *zerolog.Event
	switch strings.ToUpper(level) {
	case "DEBUG":
		event = logger.Debug()
	case "WARN":
		event = logger.Warn()
	case "ERROR":
		event = logger.Error()
	case "FATAL":
		// pas de os.Exit ici, l'appelant décide
		event = logger.WithLevel(zerolog.FatalLevel)
	default:
		event = logger.Info()
	}
	event.Fields(fields).Msg(message)
}
