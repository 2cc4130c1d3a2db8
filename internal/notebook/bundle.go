package notebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// MultilineString decodes the nbformat convention of encoding text either
// as a plain string or as a list of line strings.
type MultilineString string

// UnmarshalJSON accepts both encodings.
func (m *MultilineString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var lines []string
		if err := json.Unmarshal(data, &lines); err != nil {
			return err
		}
		*m = MultilineString(strings.Join(lines, ""))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*m = MultilineString(s)
	return nil
}

// MarshalJSON always writes the list-of-lines form, which is what most
// tooling emits.
func (m MultilineString) MarshalJSON() ([]byte, error) {
	s := string(m)
	if s == "" {
		return []byte(`[]`), nil
	}
	var lines []string
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
		if s == "" {
			break
		}
	}
	return json.Marshal(lines)
}

// String returns the joined text.
func (m MultilineString) String() string { return string(m) }

// MimeBundle is an ordered mapping of MIME type to payload. Key order is
// preserved from the source document so that equal-rank representations
// keep their original precedence.
type MimeBundle struct {
	keys   []string
	values map[string]json.RawMessage
}

// Keys returns the MIME types in document order.
func (b MimeBundle) Keys() []string { return b.keys }

// Len returns the number of entries.
func (b MimeBundle) Len() int { return len(b.keys) }

// Get returns the raw payload for a MIME type.
func (b MimeBundle) Get(mime string) (json.RawMessage, bool) {
	raw, ok := b.values[mime]
	return raw, ok
}

// Text returns the payload for a MIME type coerced to a string: multiline
// strings are joined, anything else is returned as its raw JSON text.
func (b MimeBundle) Text(mime string) string {
	raw, ok := b.values[mime]
	if !ok {
		return ""
	}
	var m MultilineString
	if err := json.Unmarshal(raw, &m); err == nil {
		return string(m)
	}
	return string(raw)
}

// UnmarshalJSON decodes a JSON object while recording key order.
func (b *MimeBundle) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("mime bundle: expected object, got %v", tok)
	}

	b.keys = nil
	b.values = make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if _, seen := b.values[key]; !seen {
			b.keys = append(b.keys, key)
		}
		b.values[key] = raw
	}
	_, err = dec.Token() // closing brace
	return err
}

// MarshalJSON writes the entries back in their recorded order.
func (b MimeBundle) MarshalJSON() ([]byte, error) {
	if len(b.keys) == 0 {
		return []byte(`{}`), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range b.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(b.values[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// NewMimeBundle builds a bundle from ordered key/payload pairs, mostly for
// tests and synthetic outputs.
func NewMimeBundle(pairs ...[2]string) MimeBundle {
	b := MimeBundle{values: make(map[string]json.RawMessage)}
	for _, p := range pairs {
		if _, seen := b.values[p[0]]; !seen {
			b.keys = append(b.keys, p[0])
		}
		data, _ := json.Marshal(p[1])
		b.values[p[0]] = data
	}
	return b
}
