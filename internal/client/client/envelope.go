package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var errMalformed = errors.New("malformed response body")

// defaultErrorText is used when the server flags an error without saying
// what went wrong.
const defaultErrorText = "A server error occurred"

// envelope is the normalized view of any response body.
type envelope struct {
	payload json.RawMessage
	message string
	errText string
}

func (e envelope) failed() bool { return e.errText != "" }

func parseEnvelope(raw []byte) (envelope, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return envelope{}, nil
	}
	if !json.Valid(raw) {
		return envelope{}, errMalformed
	}

	var obj map[string]json.RawMessage
	if raw[0] != '{' || json.Unmarshal(raw, &obj) != nil {
		return envelope{payload: raw}, nil
	}

	env := envelope{payload: raw}
	if d, ok := obj["data"]; ok {
		env.payload = d
	}
	env.message = stringValue(obj["message"])

	env.errText = errorText(obj["error"])
	if env.errText == "" {
		env.errText = errorText(obj["errors"])
	}
	if env.errText == "" && strings.EqualFold(stringValue(obj["status"]), "error") {
		env.errText = env.message
		if env.errText == "" {
			env.errText = defaultErrorText
		}
	}
	return env, nil
}

func stringValue(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// errorText flattens whatever shape an error member has into one line. Empty
// and falsy members mean "no error".
func errorText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case 'n', 'f':
		return ""
	case 't':
		return defaultErrorText
	case '"':
		return strings.TrimSpace(stringValue(raw))
	case '[':
		var items []json.RawMessage
		if json.Unmarshal(raw, &items) != nil {
			return string(raw)
		}
		parts := make([]string, 0, len(items))
		for _, it := range items {
			if s := errorText(it); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	case '{':
		var obj map[string]json.RawMessage
		if json.Unmarshal(raw, &obj) != nil {
			return string(raw)
		}
		for _, k := range []string{"message", "msg", "error"} {
			if s := errorText(obj[k]); s != "" {
				return s
			}
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			if s := errorText(obj[k]); s != "" {
				parts = append(parts, fmt.Sprintf("%s: %s", k, s))
			}
		}
		return strings.Join(parts, "; ")
	default:
		return string(raw)
	}
}

// unwrap returns payload[key] when the payload is an object holding key,
// otherwise the payload itself. The backend wraps some resources
// ({"profile": {...}}) and not others.
func unwrap(payload json.RawMessage, key string) json.RawMessage {
	var obj map[string]json.RawMessage
	if len(payload) == 0 || payload[0] != '{' || json.Unmarshal(payload, &obj) != nil {
		return payload
	}
	if v, ok := obj[key]; ok && !isNull(v) {
		return v
	}
	return payload
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
