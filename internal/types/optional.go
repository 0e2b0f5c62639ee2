package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// OptionalInt decodes a JSON number or numeric string. Set is false when the
// field was absent, null, empty or not numeric, letting callers fall back to
// a default instead of failing the request.
type OptionalInt struct {
	Value int
	Set   bool
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	*o = OptionalInt{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var (
		v  int
		ok bool
	)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		v, ok = parseLeadingInt(s)
	} else {
		v, ok = parseNumber(string(data))
	}

	if ok {
		o.Value = v
		o.Set = true
	}

	return nil
}

func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(o.Value)), nil
}

// Or returns the value when set, otherwise def.
func (o OptionalInt) Or(def int) int {
	if o.Set {
		return o.Value
	}
	return def
}

// parseNumber truncates a JSON number toward zero. Values outside the int32
// range are rejected.
func parseNumber(s string) (int, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}

	return int(f), true
}

// parseLeadingInt reads the integer at the start of s after leading spaces,
// ignoring whatever follows it: "12abc" is 12, "3.9" is 3, "abc" is not a
// number.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}

	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	v, err := strconv.ParseInt(s[:end], 10, 32)
	if err != nil {
		return 0, false
	}

	return int(v), true
}

// OptionalBool decodes a JSON value by truthiness: false, 0, "" and null are
// false, anything else is true. Set reports whether the field was present and
// not null.
type OptionalBool struct {
	Value bool
	Set   bool
}

func (o *OptionalBool) UnmarshalJSON(data []byte) error {
	*o = OptionalBool{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	o.Set = true

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch t := v.(type) {
	case bool:
		o.Value = t
	case float64:
		o.Value = t != 0
	case string:
		o.Value = t != ""
	default:
		o.Value = true
	}

	return nil
}

// SettingValue holds a setting value as text. JSON strings are stored as-is,
// null or absent as "", and any other JSON value as its compact encoding.
type SettingValue string

func (v *SettingValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = SettingValue(s)
		return nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*v = SettingValue(buf.String())

	return nil
}

// NullableString distinguishes an absent field (Set false) from an explicit
// null (Set true, Value nil).
type NullableString struct {
	Value *string
	Set   bool
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	*n = NullableString{Set: true}

	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s

	return nil
}
