package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// StatValue is a stats field as FACEIT sends it: usually a quoted number,
// sometimes a bare one.
type StatValue string

func (v *StatValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = StatValue(s)
		return nil
	}
	*v = StatValue(b)
	return nil
}

func (v StatValue) Int() (int, error) {
	s := strings.TrimSpace(string(v))
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// Float parses the value, ignoring a trailing percent sign.
func (v StatValue) Float() (float64, error) {
	s := strings.TrimSuffix(strings.TrimSpace(string(v)), "%")
	return strconv.ParseFloat(s, 64)
}

type Stats map[string]StatValue

func (s Stats) Int(key string) (int, bool) {
	v, ok := s[key]
	if !ok {
		return 0, false
	}
	n, err := v.Int()
	return n, err == nil
}

func (s Stats) Float(key string) (float64, bool) {
	v, ok := s[key]
	if !ok {
		return 0, false
	}
	f, err := v.Float()
	return f, err == nil
}

func (s Stats) String(key string) string {
	return string(s[key])
}
