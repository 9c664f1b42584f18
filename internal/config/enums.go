package config

import "strings"

// enum maps case-insensitive names to values, falling back to a default.
type enum[T ~string] struct {
	values map[string]T
	def    T
}

func (e enum[T]) normalize(raw string) T {
	if v, ok := e.values[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return v
	}
	return e.def
}

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevels = enum[LogLevel]{values: map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, def: LogLevelInfo}

func NormalizeLogLevel(raw string) LogLevel { return logLevels.normalize(raw) }

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormats = enum[LogFormat]{values: map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, def: LogFormatText}

func NormalizeLogFormat(raw string) LogFormat { return logFormats.normalize(raw) }

// UnicodeForm selects the normalization applied to input before lexing.
type UnicodeForm string

const (
	UnicodeNone UnicodeForm = "none"
	UnicodeNFC  UnicodeForm = "nfc"
	UnicodeNFD  UnicodeForm = "nfd"
)

var unicodeForms = enum[UnicodeForm]{values: map[string]UnicodeForm{
	"none": UnicodeNone,
	"nfc":  UnicodeNFC,
	"nfd":  UnicodeNFD,
}, def: UnicodeNone}

func NormalizeUnicodeForm(raw string) UnicodeForm { return unicodeForms.normalize(raw) }
