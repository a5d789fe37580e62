package instrument

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"
)

// MaskedValue replaces a sensitive value in log output.
const MaskedValue = "***"

const partialSuffix = ":partial"

type maskMode uint8

const (
	maskFull maskMode = iota + 1
	maskPartial
)

// Masker hides sensitive values before they reach a log sink.
//
// Fields are key names matched case-insensitively. A field written as
// "email_address:partial" keeps a hint of the value: the first letter and
// domain of an email address, or the last two characters of anything else.
type Masker struct {
	rules map[string]maskMode
}

// NewMasker builds a Masker from field entries; blank entries are ignored.
func NewMasker(fields []string) *Masker {
	rules := make(map[string]maskMode, len(fields))
	for _, field := range fields {
		field = strings.ToLower(strings.TrimSpace(field))
		mode := maskFull
		if name, ok := strings.CutSuffix(field, partialSuffix); ok {
			field, mode = strings.TrimSpace(name), maskPartial
		}
		if field != "" {
			rules[field] = mode
		}
	}

	return &Masker{rules: rules}
}

// Empty reports whether the masker hides nothing.
func (m *Masker) Empty() bool {
	return m == nil || len(m.rules) == 0
}

// Value masks v when key is a sensitive field.
func (m *Masker) Value(key string, v any) (any, bool) {
	if m.Empty() {
		return v, false
	}

	switch m.rules[strings.ToLower(key)] {
	case maskFull:
		return MaskedValue, true
	case maskPartial:
		if s, ok := v.(string); ok {
			return partial(s), true
		}
		return MaskedValue, true
	default:
		return v, false
	}
}

// Data walks a decoded JSON document and masks sensitive keys at any depth.
func (m *Masker) Data(v any) any {
	if m.Empty() {
		return v
	}

	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			if masked, ok := m.Value(k, child); ok {
				out[k] = masked
				continue
			}
			out[k] = m.Data(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = m.Data(child)
		}
		return out
	default:
		return v
	}
}

// JSON masks a JSON object or array payload. It reports false when payload
// is not JSON.
func (m *Masker) JSON(payload []byte) ([]byte, bool) {
	if len(payload) == 0 || (payload[0] != '{' && payload[0] != '[') {
		return nil, false
	}

	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, false
	}
	out, err := json.Marshal(m.Data(doc))
	if err != nil {
		return nil, false
	}

	return out, true
}

// Headers returns a copy of h with sensitive header values masked.
func (m *Masker) Headers(h http.Header) http.Header {
	out := h.Clone()
	if m.Empty() {
		return out
	}

	for key, values := range out {
		for i, v := range values {
			if masked, ok := m.Value(key, v); ok {
				values[i], _ = masked.(string) //nolint:errcheck // Value keeps strings as strings
			}
		}
	}

	return out
}

func partial(s string) string {
	if local, domain, ok := strings.Cut(s, "@"); ok && local != "" {
		first, _ := utf8.DecodeRuneInString(local)
		return string(first) + MaskedValue + "@" + domain
	}

	runes := []rune(s)
	if len(runes) <= 4 {
		return MaskedValue
	}
	return MaskedValue + string(runes[len(runes)-2:])
}
