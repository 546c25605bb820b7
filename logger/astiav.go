package logger

import (
	"github.com/asticode/go-astiav"
)

// LevelToAstiav converts the log level to the closest FFmpeg log level.
func LevelToAstiav(level Level) astiav.LogLevel {
	switch level {
	case LevelUndefined:
		return astiav.LogLevelQuiet
	case LevelPanic:
		return astiav.LogLevelPanic
	case LevelFatal:
		return astiav.LogLevelFatal
	case LevelError:
		return astiav.LogLevelError
	case LevelWarning:
		return astiav.LogLevelWarning
	case LevelInfo:
		return astiav.LogLevelInfo
	case LevelDebug:
		return astiav.LogLevelVerbose
	case LevelTrace:
		return astiav.LogLevelDebug
	default:
		return astiav.LogLevelWarning
	}
}

// LevelFromAstiav converts an FFmpeg log level to the closest log level.
func LevelFromAstiav(level astiav.LogLevel) Level {
	switch {
	case level <= astiav.LogLevelQuiet:
		return LevelUndefined
	case level <= astiav.LogLevelPanic:
		return LevelPanic
	case level <= astiav.LogLevelFatal:
		return LevelFatal
	case level <= astiav.LogLevelError:
		return LevelError
	case level <= astiav.LogLevelWarning:
		return LevelWarning
	case level <= astiav.LogLevelInfo:
		return LevelInfo
	case level <= astiav.LogLevelVerbose:
		return LevelDebug
	default:
		return LevelTrace
	}
}
