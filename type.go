// File: lixenwraith/logprops/type.go
package logprops

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// Typed accessors never fail: a missing or unparsable value yields the
// supplied default.

// StringOr returns the value of key or def when it is absent.
func (e *Environment) StringOr(key, def string) string {
	if value, ok := e.StringProperty(key); ok {
		return value
	}
	return def
}

// StringWithDefaults returns absentDefault when key is not set and
// presentDefault when it is set to an empty string.
func (e *Environment) StringWithDefaults(key, absentDefault, presentDefault string) string {
	value, ok := e.StringProperty(key)
	switch {
	case !ok:
		return absentDefault
	case value == "":
		return presentDefault
	default:
		return value
	}
}

// BooleanProperty returns the tri-state value of key.
func (e *Environment) BooleanProperty(key string) BooleanProperty {
	value, ok := e.StringProperty(key)
	return ParseBooleanProperty(value, ok)
}

// Bool returns def when key is absent or empty, otherwise whether the value
// is "true" in any case.
func (e *Environment) Bool(key string, def bool) bool {
	return e.BooleanProperty(key).Resolve(def, def)
}

// BoolWithDefaults distinguishes an absent key from an empty one.
func (e *Environment) BoolWithDefaults(key string, absentDefault, presentDefault bool) bool {
	return e.BooleanProperty(key).Resolve(absentDefault, presentDefault)
}

// Int returns key parsed as an int, or def.
func (e *Environment) Int(key string, def int) int {
	return lookupOr(e, key, parseInt, def)
}

// IntWithDefaults returns absentDefault when key is not set or unparsable
// and presentDefault when it is empty.
func (e *Environment) IntWithDefaults(key string, absentDefault, presentDefault int) int {
	return lookupWithDefaults(e, key, parseInt, absentDefault, presentDefault)
}

// Int64 returns key parsed as an int64, or def.
func (e *Environment) Int64(key string, def int64) int64 {
	return lookupOr(e, key, parseInt64, def)
}

// Int64WithDefaults is the int64 form of IntWithDefaults.
func (e *Environment) Int64WithDefaults(key string, absentDefault, presentDefault int64) int64 {
	return lookupWithDefaults(e, key, parseInt64, absentDefault, presentDefault)
}

// Float64 returns key parsed as a float64, or def.
func (e *Environment) Float64(key string, def float64) float64 {
	return lookupOr(e, key, parseFloat64, def)
}

// Duration returns key parsed by ParseDuration, or def.
func (e *Environment) Duration(key string, def time.Duration) time.Duration {
	return lookupOr(e, key, parseDurationValue, def)
}

// DurationWithDefaults is the duration form of IntWithDefaults.
func (e *Environment) DurationWithDefaults(key string, absentDefault, presentDefault time.Duration) time.Duration {
	return lookupWithDefaults(e, key, parseDurationValue, absentDefault, presentDefault)
}

// Charset returns the encoding registered under the IANA name held by key,
// or def when the key is absent or names an unsupported charset.
func (e *Environment) Charset(key string, def encoding.Encoding) encoding.Encoding {
	return lookupOr(e, key, lookupCharset, def)
}

// List splits key on commas and semicolons. An absent key yields nil.
func (e *Environment) List(key string) []string {
	value, ok := e.StringProperty(key)
	if !ok {
		return nil
	}
	return splitList(value)
}

// StringFromPrefixes returns the first of prefix+key that is set. When none
// is, it returns supplier's result, or false if supplier is nil.
func (e *Environment) StringFromPrefixes(prefixes []string, key string, supplier func() string) (string, bool) {
	return fromPrefixes(e, prefixes, key, func(s string) (string, bool) { return s, true }, supplier)
}

// BoolFromPrefixes is the boolean form of StringFromPrefixes.
func (e *Environment) BoolFromPrefixes(prefixes []string, key string, supplier func() bool) (bool, bool) {
	return fromPrefixes(e, prefixes, key, func(s string) (bool, bool) {
		return strings.EqualFold(s, "true"), true
	}, supplier)
}

// IntFromPrefixes is the int form of StringFromPrefixes. An unparsable value
// under the first prefix present yields the supplier result.
func (e *Environment) IntFromPrefixes(prefixes []string, key string, supplier func() int) (int, bool) {
	return fromPrefixes(e, prefixes, key, parseInt, supplier)
}

// Int64FromPrefixes is the int64 form of StringFromPrefixes.
func (e *Environment) Int64FromPrefixes(prefixes []string, key string, supplier func() int64) (int64, bool) {
	return fromPrefixes(e, prefixes, key, parseInt64, supplier)
}

// DurationFromPrefixes is the duration form of StringFromPrefixes.
func (e *Environment) DurationFromPrefixes(prefixes []string, key string, supplier func() time.Duration) (time.Duration, bool) {
	return fromPrefixes(e, prefixes, key, parseDurationValue, supplier)
}

func lookupOr[T any](e *Environment, key string, parse func(string) (T, bool), def T) T {
	value, ok := e.StringProperty(key)
	if !ok {
		return def
	}
	if parsed, ok := parse(value); ok {
		return parsed
	}
	return def
}

func lookupWithDefaults[T any](e *Environment, key string, parse func(string) (T, bool), absentDefault, presentDefault T) T {
	value, ok := e.StringProperty(key)
	if !ok {
		return absentDefault
	}
	if value == "" {
		return presentDefault
	}
	if parsed, ok := parse(value); ok {
		return parsed
	}
	return absentDefault
}

func fromPrefixes[T any](e *Environment, prefixes []string, key string, parse func(string) (T, bool), supplier func() T) (T, bool) {
	for _, prefix := range prefixes {
		value, ok := e.StringProperty(prefix + key)
		if !ok {
			continue
		}
		// the first prefix present decides, even when its value is unusable
		if parsed, ok := parse(value); ok {
			return parsed, true
		}
		break
	}
	if supplier == nil {
		var zero T
		return zero, false
	}
	return supplier(), true
}

func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil
}

func parseInt64(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil
}

func parseFloat64(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

func parseDurationValue(s string) (time.Duration, bool) {
	d, err := ParseDuration(s)
	return d, err == nil
}

func lookupCharset(name string) (encoding.Encoding, bool) {
	enc, err := ianaindex.IANA.Encoding(strings.TrimSpace(name))
	if err != nil || enc == nil {
		return nil, false
	}
	return enc, true
}
