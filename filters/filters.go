// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filters

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Set holds normalized filter input: keys are lower-cased and only the
// last occurrence of a key is kept.
type Set map[string]string

// Parse reads a raw query string in order. Later keys overwrite earlier
// ones after lower-casing, so "Year=1800&year=1801" yields year=1801.
func Parse(rawQuery string) Set {
	set := Set{}
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		k, err := url.QueryUnescape(key)
		if err != nil {
			k = key
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			v = value
		}
		set[strings.ToLower(k)] = v
	}
	return set
}

// Has reports whether key was supplied, even with an empty value.
func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Get returns the value of key, or "" when absent.
func (s Set) Get(key string) string {
	return s[key]
}

// List splits a multi-value field on ';'.
func (s Set) List(key string) []string {
	v, ok := s[key]
	if !ok {
		return nil
	}
	return Split(v)
}

// Flag reports whether key is present with an accepted truthy value.
func (s Set) Flag(key string) bool {
	v, ok := s[key]
	return ok && Truthy(v)
}

// Int returns the integer coercion of key and whether the key was present.
func (s Set) Int(key string) (int, bool) {
	v, ok := s[key]
	if !ok {
		return 0, false
	}
	return Int(v), true
}

// With returns a copy of s with key set to value.
func (s Set) With(key, value string) Set {
	out := make(Set, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	out[key] = value
	return out
}

// Split breaks a multi-value field into its ordered elements.
func Split(v string) []string {
	return strings.Split(v, ";")
}

var truthy = map[string]bool{
	"1":    true,
	"Y":    true,
	"y":    true,
	"yes":  true,
	"true": true,
}

// Truthy reports whether v is one of the accepted flag values. Anything
// else, including "0", "false" and "", is treated as unset.
func Truthy(v string) bool {
	return truthy[v]
}

// Int converts the leading integer of v, ignoring any trailing text.
// Values without a leading integer become 0.
func Int(v string) int {
	s := strings.TrimLeft(v, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		// only range errors reach here
		if s[0] == '-' {
			return math.MinInt
		}
		return math.MaxInt
	}
	return int(n)
}
