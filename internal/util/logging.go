package util

import (
	"fmt"
	"log"
)

const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorBlue   = "\x1b[34m"
)

// invocationID correlates every diagnostic line of one run. Set once from
// main before any logging happens.
var invocationID string

// SetInvocationID sets the id prefixed to every log line.
func SetInvocationID(id string) {
	invocationID = id
}

// Infof logs an info message.
func Infof(format string, args ...any) {
	log.Printf("%s %s%s", colorize(colorGreen, "INFO"), prefix(), fmt.Sprintf(format, args...))
}

// Warnf logs a warning message.
func Warnf(format string, args ...any) {
	log.Printf("%s %s%s", colorize(colorYellow, "WARN"), prefix(), fmt.Sprintf(format, args...))
}

// Errorf logs an error message.
func Errorf(format string, args ...any) {
	log.Printf("%s %s%s", colorize(colorRed, "ERROR"), prefix(), fmt.Sprintf(format, args...))
}

// Highlightf logs a highlighted message.
func Highlightf(format string, args ...any) {
	log.Printf("%s %s%s", colorize(colorBlue, "NOTE"), prefix(), fmt.Sprintf(format, args...))
}

func prefix() string {
	if invocationID == "" {
		return ""
	}
	return "[" + invocationID + "] "
}

func colorize(color, msg string) string {
	return color + msg + colorReset
}
