// Package localized models product fields that arrive either as a plain
// scalar or as a per-language map ({"en": ..., "ru": ..., "ua": ..., "pl": ...}).
// Both shapes round-trip through JSON unchanged; Resolve picks the value for
// a language with "en" as the fallback entry.
package localized

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

type Lang string

const (
	LangEN Lang = "en"
	LangRU Lang = "ru"
	LangUA Lang = "ua"
	LangPL Lang = "pl"
)

// Fallback is the language every per-language map must carry.
const Fallback = LangEN

var Supported = []Lang{LangEN, LangRU, LangUA, LangPL}

// ParseLang maps a query/header value to a supported language, defaulting
// to the fallback.
func ParseLang(s string) Lang {
	for _, l := range Supported {
		if string(l) == s {
			return l
		}
	}
	return Fallback
}

// String is a product name/description that is either a plain string or a
// per-language map.
type String struct {
	Scalar  string
	PerLang map[Lang]string
}

func NewString(s string) String { return String{Scalar: s} }

func (s String) Localized() bool { return s.PerLang != nil }

// Resolve returns the value for lang, falling back to "en", then to any
// entry so a malformed map still renders something.
func (s String) Resolve(lang Lang) string {
	if s.PerLang == nil {
		return s.Scalar
	}
	if v, ok := s.PerLang[lang]; ok && v != "" {
		return v
	}
	if v, ok := s.PerLang[Fallback]; ok && v != "" {
		return v
	}
	for _, v := range s.PerLang {
		if v != "" {
			return v
		}
	}
	return ""
}

// Validate enforces the fallback invariant on map-shaped values.
func (s String) Validate() error {
	if s.PerLang == nil {
		return nil
	}
	if v, ok := s.PerLang[Fallback]; !ok || v == "" {
		return errors.New("localized value is missing the \"en\" entry")
	}
	return nil
}

func (s String) MarshalJSON() ([]byte, error) {
	if s.PerLang != nil {
		return json.Marshal(s.PerLang)
	}
	return json.Marshal(s.Scalar)
}

func (s *String) UnmarshalJSON(data []byte) error {
	var scalar string
	if err := json.Unmarshal(data, &scalar); err == nil {
		*s = String{Scalar: scalar}
		return nil
	}
	var m map[Lang]string
	if err := json.Unmarshal(data, &m); err != nil {
		return errors.Wrap(err, "localized string is neither a string nor a language map")
	}
	*s = String{PerLang: m}
	return nil
}

func (s String) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *String) Scan(src interface{}) error {
	return scanJSON(src, s)
}

// Amount is a price that is either a plain number or a per-language map.
type Amount struct {
	Scalar  float64
	PerLang map[Lang]float64
}

func NewAmount(f float64) Amount { return Amount{Scalar: f} }

func (a Amount) Localized() bool { return a.PerLang != nil }

func (a Amount) Resolve(lang Lang) float64 {
	if a.PerLang == nil {
		return a.Scalar
	}
	if v, ok := a.PerLang[lang]; ok && v != 0 {
		return v
	}
	if v, ok := a.PerLang[Fallback]; ok {
		return v
	}
	for _, v := range a.PerLang {
		if v != 0 {
			return v
		}
	}
	return 0
}

func (a Amount) Validate() error {
	if a.PerLang == nil {
		return nil
	}
	if _, ok := a.PerLang[Fallback]; !ok {
		return errors.New("localized amount is missing the \"en\" entry")
	}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.PerLang != nil {
		return json.Marshal(a.PerLang)
	}
	return json.Marshal(a.Scalar)
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var scalar float64
	if err := json.Unmarshal(data, &scalar); err == nil {
		*a = Amount{Scalar: scalar}
		return nil
	}
	var m map[Lang]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return errors.Wrap(err, "localized amount is neither a number nor a language map")
	}
	*a = Amount{PerLang: m}
	return nil
}

func (a Amount) Value() (driver.Value, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *Amount) Scan(src interface{}) error {
	return scanJSON(src, a)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return errors.Errorf("unsupported column type %T", src)
	}
}
