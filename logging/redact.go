package logging

import (
	"log/slog"
	"regexp"
	"strings"
)

var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(Authorization|password|token|apiKey)=([^&\s]+)`),
	regexp.MustCompile(`(?i)(Authorization|password|token|apiKey)[\s:]+([^&\s]+)`),
}

var sensitiveKeys = map[string]bool{
	"authorization": true, "token": true, "apikey": true, "password": true,
	"credential": true, "secret": true, "access_key": true, "secret_key": true,
}

// redactAttrs replaces sensitive values in attributes, maps and slices are redacted recursively
func redactAttrs(attrs ...slog.Attr) []any {
	var result = make([]any, 0, len(attrs))
	for _, attr := range attrs {
		if isSensitiveKey(attr.Key) {
			result = append(result, slog.String(attr.Key, "[REDACTED]"))
			continue
		}
		switch attr.Value.Kind() {
		case slog.KindString, slog.KindAny:
			result = append(result, slog.Any(attr.Key, redactValue(attr.Value.Any())))
		default:
			result = append(result, attr)
		}
	}
	return result
}

func redactValue(value any) any {
	switch actual := value.(type) {
	case string:
		return redactText(actual)
	case map[string]any:
		redacted := make(map[string]any, len(actual))
		for k, v := range actual {
			if isSensitiveKey(k) {
				redacted[k] = "[REDACTED]"
				continue
			}
			redacted[k] = redactValue(v)
		}
		return redacted
	case []any:
		redacted := make([]any, len(actual))
		for i, v := range actual {
			redacted[i] = redactValue(v)
		}
		return redacted
	}
	return value
}

func redactText(value string) string {
	for _, pattern := range sensitivePatterns {
		value = pattern.ReplaceAllString(value, "$1=[REDACTED]")
	}
	return value
}

func isSensitiveKey(key string) bool {
	return sensitiveKeys[strings.ToLower(key)]
}
