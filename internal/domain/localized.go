package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// LocalizedText maps a language code to a translated string.
// Legacy records sometimes store a bare string instead of a map; that shape
// is accepted on decode and normalized under DefaultLanguage.
type LocalizedText map[string]string

const DefaultLanguage = "en"

// Resolve picks a display value: requested language, then defaultLang, then
// the first available translation (sorted by language code so the choice is
// stable), then the caller-supplied fallback.
func (t LocalizedText) Resolve(lang, defaultLang, fallback string) string {
	if len(t) == 0 {
		return fallback
	}
	if v, ok := t[lang]; ok && v != "" {
		return v
	}
	if v, ok := t[defaultLang]; ok && v != "" {
		return v
	}
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if t[k] != "" {
			return t[k]
		}
	}
	return fallback
}

func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err == nil {
		*t = m
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = LocalizedText{DefaultLanguage: s}
		return nil
	}
	return fmt.Errorf("localized text must be a string or an object of strings")
}

func (t LocalizedText) Value() (driver.Value, error) {
	if t == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]string(t))
}

func (t *LocalizedText) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = LocalizedText{}
		return nil
	case []byte:
		return t.UnmarshalJSON(v)
	case string:
		return t.UnmarshalJSON([]byte(v))
	default:
		return errors.New("unsupported source type for localized text")
	}
}
