package result

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MessageFields lists, in priority order, the body fields that carry a
// server-side failure message.
var MessageFields = []string{"message", "error", "detail"}

// maxSnippet bounds how much raw body text ends up in an error string.
const maxSnippet = 500

// ExtractError renders a failed response as
//
//	"{message} (status {code})"              when the JSON body carries a message,
//	"{fallback} (status {code}): {snippet}"  when only raw text is available,
//	"{fallback} (status {code})"             when the body is empty.
func ExtractError(status int, body []byte, fallback string) string {
	if msg, ok := bodyMessage(body); ok {
		return fmt.Sprintf("%s (status %d)", msg, status)
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return fmt.Sprintf("%s (status %d)", fallback, status)
	}
	return fmt.Sprintf("%s (status %d): %s", fallback, status, truncate(text, maxSnippet))
}

func bodyMessage(body []byte) (string, bool) {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return "", false
	}
	for _, key := range MessageFields {
		if msg, ok := messageText(obj[key]); ok {
			return msg, true
		}
	}
	return "", false
}

// messageText mirrors a truthiness check: empty strings, false, zero and
// empty containers do not count as a message.
func messageText(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, t != ""
	case bool:
		return "true", t
	case float64:
		return fmt.Sprint(t), t != 0
	case map[string]any:
		if len(t) == 0 {
			return "", false
		}
		b, _ := json.Marshal(t)
		return string(b), true
	case []any:
		if len(t) == 0 {
			return "", false
		}
		b, _ := json.Marshal(t)
		return string(b), true
	default:
		return fmt.Sprint(t), true
	}
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit]) + "..."
}
