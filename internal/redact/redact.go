// Package redact masks secrets and user text before they reach a log sink.
package redact

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	neverPersistKey = "never_persist"
	redactedSecret  = "[REDACTED_SECRET]"
)

// secretKeys are metadata keys whose values are always masked outright.
var secretKeys = map[string]struct{}{
	"key":    {},
	"cover":  {},
	"secret": {},
}

// textKeys are metadata keys carrying user text. Only their length survives.
var textKeys = map[string]struct{}{
	"text":   {},
	"input":  {},
	"output": {},
	"line":   {},
}

type stringer interface {
	String() string
}

var (
	emailRe     = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	kvSecretRe  = regexp.MustCompile(`(?i)((?:api|token|secret|key|password)[-_ ]*(?:id|key|token)?\s*[:=]\s*)(['\"]?)([A-Za-z0-9+/=_\-]{8,})(['\"]?)`)
	bearerRe    = regexp.MustCompile(`(?i)\b(bearer|token)\s+([A-Za-z0-9._\-]{10,})`)
	longTokenRe = regexp.MustCompile(`\b[A-Za-z0-9]{32,}\b`)
)

// String redacts common secret patterns and PII from the provided string.
func String(in string) string {
	if strings.TrimSpace(in) == "" {
		return in
	}
	masked := emailRe.ReplaceAllStringFunc(in, func(_ string) string {
		return "[REDACTED_EMAIL]"
	})
	masked = kvSecretRe.ReplaceAllString(masked, `$1$2[REDACTED_SECRET]$4`)
	masked = bearerRe.ReplaceAllString(masked, `$1 [REDACTED_SECRET]`)
	masked = longTokenRe.ReplaceAllString(masked, redactedSecret)
	return masked
}

// Text replaces user text with a length marker.
func Text(in string) string {
	if in == "" {
		return ""
	}
	return fmt.Sprintf("[REDACTED_TEXT len=%d]", utf8.RuneCountInString(in))
}

// Interface redacts recognised sensitive values within nested structures.
func Interface(value any) any {
	switch v := value.(type) {
	case string:
		return String(v)
	case stringer:
		return String(v.String())
	case []string:
		out := make([]string, len(v))
		for i, s := range v {
			out[i] = String(s)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = Interface(elem)
		}
		return out
	case map[string]string:
		return MapString(v)
	case map[string]any:
		return Map(v)
	default:
		return value
	}
}

// Map redacts sensitive values within a map of arbitrary values. Cipher keys
// and cover text are masked, user text is reduced to its length.
func Map(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	masked := applyNeverPersistAny(in)
	out := make(map[string]any, len(masked))
	for k, v := range masked {
		out[k] = maskValue(k, v)
	}
	return out
}

// MapString redacts sensitive values within a string map.
func MapString(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	masked := applyNeverPersistString(in)
	out := make(map[string]string, len(masked))
	for k, v := range masked {
		switch masked := maskValue(k, v).(type) {
		case string:
			out[k] = masked
		default:
			out[k] = fmt.Sprint(masked)
		}
	}
	return out
}

func maskValue(key string, value any) any {
	lower := strings.ToLower(key)
	if _, ok := secretKeys[lower]; ok {
		if s, isString := value.(string); isString && s == "" {
			return s
		}
		return redactedSecret
	}
	if _, ok := textKeys[lower]; ok {
		if s, isString := value.(string); isString {
			return Text(s)
		}
	}
	return Interface(value)
}

func applyNeverPersistAny(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	var toMask []string
	for k, v := range in {
		if strings.EqualFold(k, neverPersistKey) {
			toMask = append(toMask, collectNeverPersist(v)...)
			continue
		}
		out[k] = v
	}
	for _, key := range toMask {
		if _, ok := out[key]; ok {
			out[key] = redactedSecret
		}
	}
	return out
}

func applyNeverPersistString(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	var toMask []string
	for k, v := range in {
		if strings.EqualFold(k, neverPersistKey) {
			toMask = append(toMask, splitList(v)...)
			continue
		}
		out[k] = v
	}
	for _, key := range toMask {
		if _, ok := out[key]; ok {
			out[key] = redactedSecret
		}
	}
	return out
}

func collectNeverPersist(value any) []string {
	switch v := value.(type) {
	case string:
		return splitList(v)
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			out = append(out, strings.TrimSpace(fmt.Sprint(elem)))
		}
		return out
	default:
		return nil
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
