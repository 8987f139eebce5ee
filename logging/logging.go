package logging

import "log"

// Log levels, ordered from least to most critical
const (
	TraceLevel = iota
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// Level is the minimum criticality a message must have to be emitted by Logf
var Level = WarnLevel

// LogLevelToString translates a log level constant into its label
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// Logf writes a leveled message to the standard logger, discarding messages below Level
func Logf(level int, format string, v ...interface{}) {
	if level < Level {
		return
	}
	log.Printf("["+LogLevelToString(level)+"] "+format, v...)
}
