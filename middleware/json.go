// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/danielhkuo/pollbook/models"
)

// ErrInvalidUTF8 is returned when a value still holds invalid UTF-8 after
// repair.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 in response")

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data any) {
	body, err := EncodeJSON(data)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal Server Error","message":"Failed to encode response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body)
}

// ErrorResponse writes a JSON error response
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// EncodeJSON encodes v so it can be embedded in HTML: <, > and & are
// escaped by encoding/json and quotes inside strings become \u0022.
// Strings that are not valid UTF-8 are re-read as ISO-8859-1 and encoding is
// retried once.
func EncodeJSON(v any) ([]byte, error) {
	if !validUTF8(v) {
		slog.Warn("repairing invalid UTF-8 in response")
		v = models.MapStrings(v, latin1ToUTF8)
		if !validUTF8(v) {
			return nil, ErrInvalidUTF8
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return hexQuotes(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func validUTF8(v any) bool {
	valid := true
	models.MapStrings(v, func(s string) string {
		if valid && !utf8.ValidString(s) {
			valid = false
		}
		return s
	})
	return valid
}

func latin1ToUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	out, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return out
}

// hexQuotes rewrites escaped quotes inside JSON strings as \u0022.
func hexQuotes(b []byte) []byte {
	out := make([]byte, 0, len(b))
	inString := false
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch {
		case !inString:
			if c == '"' {
				inString = true
			}
			out = append(out, c)
		case c == '\\' && i+1 < len(b):
			if b[i+1] == '"' {
				out = append(out, `\u0022`...)
			} else {
				out = append(out, c, b[i+1])
			}
			i++
		case c == '"':
			inString = false
			out = append(out, c)
		default:
			out = append(out, c)
		}
	}
	return out
}
