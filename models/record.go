// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
)

// Field is one named value of a Record.
type Field struct {
	Key   string
	Value any
}

// Record is an ordered field map. Store rows keep their column order and
// attachments added later are appended after the columns.
type Record struct {
	fields []Field
	index  map[string]int
}

// NewRecord returns an empty Record sized for capacity fields.
func NewRecord(capacity int) *Record {
	return &Record{
		fields: make([]Field, 0, capacity),
		index:  make(map[string]int, capacity),
	}
}

// Set replaces the value of an existing key in place or appends a new field.
func (r *Record) Set(key string, value any) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[key]; ok {
		r.fields[i].Value = value
		return
	}
	r.index[key] = len(r.fields)
	r.fields = append(r.fields, Field{Key: key, Value: value})
}

// Get returns the value of key and whether it is set.
func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	i, ok := r.index[key]
	if !ok {
		return nil, false
	}
	return r.fields[i].Value, true
}

// Len returns the number of fields. A nil Record has none.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.fields)
}

// Keys returns the field names in order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns the fields in order. The slice is shared with r.
func (r *Record) Fields() []Field {
	if r == nil {
		return nil
	}
	return r.fields
}

// MarshalJSON writes the fields as a JSON object in insertion order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MapStrings returns v with fn applied to every string it holds, descending
// into records, slices, maps and search responses. Records are rewritten in
// place.
func MapStrings(v any, fn func(string) string) any {
	switch t := v.(type) {
	case string:
		return fn(t)
	case *Record:
		if t == nil {
			return t
		}
		for i := range t.fields {
			t.fields[i].Value = MapStrings(t.fields[i].Value, fn)
		}
		return t
	case []*Record:
		for _, r := range t {
			MapStrings(r, fn)
		}
		return t
	case []any:
		for i := range t {
			t[i] = MapStrings(t[i], fn)
		}
		return t
	case []string:
		for i := range t {
			t[i] = fn(t[i])
		}
		return t
	case map[string]any:
		for k, val := range t {
			t[k] = MapStrings(val, fn)
		}
		return t
	case SearchResponse:
		t.EarliestYear = MapStrings(t.EarliestYear, fn)
		t.LatestYear = MapStrings(t.LatestYear, fn)
		t.Elections = MapStrings(t.Elections, fn)
		return t
	case *SearchResponse:
		if t != nil {
			*t = MapStrings(*t, fn).(SearchResponse)
		}
		return t
	case ErrorResponse:
		t.Error = fn(t.Error)
		t.Message = fn(t.Message)
		return t
	default:
		return v
	}
}
