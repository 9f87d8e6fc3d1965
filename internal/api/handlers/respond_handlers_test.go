package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 20, 0},
		{"explicit", "?limit=5&offset=40", 5, 40},
		{"limit clamped to cap", "?limit=500", 100, 0},
		{"zero limit falls back", "?limit=0", 20, 0},
		{"negative limit falls back", "?limit=-3", 20, 0},
		{"garbage limit falls back", "?limit=abc", 20, 0},
		{"negative offset ignored", "?offset=-10", 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/reports"+tt.query, nil)

			page := parsePage(r)

			assert.Equal(t, tt.wantLimit, page.Limit)
			assert.Equal(t, tt.wantOffset, page.Offset)
		})
	}
}

func TestRespondErrorFormat(t *testing.T) {
	w := httptest.NewRecorder()
	respondError(w, 404, "NOT_FOUND", "resource not found")

	assert.Equal(t, 404, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":{"code":"NOT_FOUND","message":"resource not found"}}`, w.Body.String())
}
