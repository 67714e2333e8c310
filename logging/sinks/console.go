package sinks

import (
	"io"

	"github.com/rs/zerolog"

	"marble-race/server/logging"
)

// ConsoleSink renders events for humans via zerolog's console writer.
type ConsoleSink struct {
	logger      zerolog.Logger
	minSeverity logging.Severity
}

func NewConsoleSink(w io.Writer, cfg logging.ConsoleConfig) *ConsoleSink {
	writer := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    cfg.NoColor,
		TimeFormat: "15:04:05.000",
	}
	return &ConsoleSink{
		logger:      zerolog.New(writer).With().Timestamp().Logger(),
		minSeverity: cfg.MinSeverity,
	}
}

func (s *ConsoleSink) Write(event logging.Event) error {
	if event.Severity < s.minSeverity {
		return nil
	}

	entry := s.logger.WithLevel(zerologLevel(event.Severity)).
		Str("event", string(event.Type)).
		Uint64("tick", event.Tick).
		Str("actor", string(event.Actor.Kind)+":"+event.Actor.ID)
	if event.Category != "" {
		entry = entry.Str("category", event.Category)
	}
	if event.Payload != nil {
		entry = entry.Interface("payload", event.Payload)
	}
	for k, v := range event.Extra {
		entry = entry.Interface(k, v)
	}
	entry.Send()
	return nil
}

func (s *ConsoleSink) Close() error {
	return nil
}

func zerologLevel(severity logging.Severity) zerolog.Level {
	switch severity {
	case logging.SeverityDebug:
		return zerolog.DebugLevel
	case logging.SeverityWarn:
		return zerolog.WarnLevel
	case logging.SeverityError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
