package utils

import (
	"log"
	"strings"
)

// LogEvent prints one line per domain action. Request correlation lives in
// the HTTP access log; domain services stay transport-free, so there is no
// request id here. Keep messages summarized, never payloads.
func LogEvent(module, action, message string) {
	log.Printf("[%s] action=%s %s", strings.ToUpper(module), action, message)
}
