// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestWithLogging(t *testing.T) {
	handlerCalled := false
	testHandler := func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	}

	wrappedHandler := WithLogging(testHandler)

	req := httptest.NewRequest("GET", "/elections?year=1802", nil)
	w := httptest.NewRecorder()

	wrappedHandler(w, req)

	if !handlerCalled {
		t.Error("Expected handler to be called")
	}
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "success" {
		t.Errorf("Expected body 'success', got '%s'", w.Body.String())
	}
}

func TestWithLogging_PreservesResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		body       string
	}{
		{"OK", http.StatusOK, "ok"},
		{"BadRequest", http.StatusBadRequest, `{"error":"bad request"}`},
		{"NotFound", http.StatusNotFound, "not found"},
		{"InternalError", http.StatusInternalServerError, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
				w.Write([]byte(tc.body))
			})

			req := httptest.NewRequest("GET", "/elections/voters", nil)
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if w.Body.String() != tc.body {
				t.Errorf("Expected body '%s', got '%s'", tc.body, w.Body.String())
			}
		})
	}
}

func TestWithLogging_RequestID(t *testing.T) {
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {})

	t.Run("generated when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/elections", nil))

		id := w.Header().Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("Expected a generated UUID request id, got %q", id)
		}
	})

	t.Run("propagated when supplied", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/elections", nil)
		req.Header.Set(RequestIDHeader, "trace-1802")
		w := httptest.NewRecorder()
		handler(w, req)

		if got := w.Header().Get(RequestIDHeader); got != "trace-1802" {
			t.Errorf("Expected request id to be echoed, got %q", got)
		}
	})
}

func TestStatusRecorder_CountsBytes(t *testing.T) {
	rw := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	rw.Write([]byte("abc"))
	rw.Write([]byte("de"))
	rw.WriteHeader(http.StatusTeapot)

	if rw.bytes != 5 {
		t.Errorf("Expected 5 bytes, got %d", rw.bytes)
	}
	if rw.status != http.StatusTeapot {
		t.Errorf("Expected status to be recorded, got %d", rw.status)
	}
}

func TestCORS(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("handled"))
	})

	t.Run("wildcard allows any origin", func(t *testing.T) {
		corsHandler := CORS([]string{"*"}, nextHandler)
		req := httptest.NewRequest("GET", "/elections", nil)
		req.Header.Set("Origin", "https://example.com")
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		if w.Body.String() != "handled" {
			t.Error("Expected next handler to be called")
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Expected wildcard origin, got %q", got)
		}
	})

	t.Run("empty list defaults to wildcard", func(t *testing.T) {
		corsHandler := CORS([]string{" ", ""}, nextHandler)
		req := httptest.NewRequest("GET", "/elections", nil)
		req.Header.Set("Origin", "https://example.com")
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Expected wildcard origin, got %q", got)
		}
	})

	t.Run("preflight is answered without calling next", func(t *testing.T) {
		corsHandler := CORS([]string{"https://archive.example"}, nextHandler)
		req := httptest.NewRequest("OPTIONS", "/elections", nil)
		req.Header.Set("Origin", "https://archive.example")
		req.Header.Set("Access-Control-Request-Method", "GET")
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		if w.Body.String() != "" {
			t.Errorf("Expected empty body for preflight, got '%s'", w.Body.String())
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://archive.example" {
			t.Errorf("Expected origin to be reflected, got %q", got)
		}
		if got := w.Header().Get("Access-Control-Allow-Methods"); got != "GET" {
			t.Errorf("Expected GET to be allowed, got %q", got)
		}
	})

	t.Run("write methods are refused", func(t *testing.T) {
		corsHandler := CORS([]string{"https://archive.example"}, nextHandler)
		req := httptest.NewRequest("OPTIONS", "/elections", nil)
		req.Header.Set("Origin", "https://archive.example")
		req.Header.Set("Access-Control-Request-Method", "DELETE")
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Methods"); got != "" {
			t.Errorf("Expected DELETE to be refused, got %q", got)
		}
	})

	t.Run("unknown origin gets no grant", func(t *testing.T) {
		corsHandler := CORS([]string{"https://archive.example"}, nextHandler)
		req := httptest.NewRequest("GET", "/elections", nil)
		req.Header.Set("Origin", "https://elsewhere.example")
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Expected no allow-origin header, got %q", got)
		}
	})

	t.Run("request id is exposed", func(t *testing.T) {
		corsHandler := CORS(nil, nextHandler)
		req := httptest.NewRequest("GET", "/elections", nil)
		req.Header.Set("Origin", "https://example.com")
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		exposed := w.Header().Get("Access-Control-Expose-Headers")
		if !strings.EqualFold(exposed, RequestIDHeader) {
			t.Errorf("Expected %s to be exposed, got %q", RequestIDHeader, exposed)
		}
	})
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expectedIP string
	}{
		{
			name:       "X-Forwarded-For single IP",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.100"},
			remoteAddr: "10.0.0.1:12345",
			expectedIP: "192.168.1.100",
		},
		{
			name:       "X-Forwarded-For chained IPs",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.195, 70.41.3.18"},
			remoteAddr: "127.0.0.1:12345",
			expectedIP: "203.0.113.195",
		},
		{
			name:       "X-Real-IP takes precedence over RemoteAddr",
			headers:    map[string]string{"X-Real-IP": "203.0.113.50"},
			remoteAddr: "10.0.0.1:12345",
			expectedIP: "203.0.113.50",
		},
		{
			name:       "RemoteAddr with port",
			remoteAddr: "192.168.1.50:54321",
			expectedIP: "192.168.1.50",
		},
		{
			name:       "RemoteAddr without port",
			remoteAddr: "192.168.1.50",
			expectedIP: "192.168.1.50",
		},
		{
			name:       "IPv6 RemoteAddr with port",
			remoteAddr: "[::1]:12345",
			expectedIP: "[::1]",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			if result := GetClientIP(req); result != tc.expectedIP {
				t.Errorf("Expected IP '%s', got '%s'", tc.expectedIP, result)
			}
		})
	}
}
