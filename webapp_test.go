package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sboxwalk/chess-sbox/chesscrypt"
)

func testApp(t *testing.T) *Application {
	t.Helper()
	app, err := NewApplication(8, 100, 42)
	require.NoError(t, err)
	return app
}

func TestSBoxEndpoint(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/sbox", nil)
	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var payload struct {
		Size       int   `json:"size"`
		Iterations int   `json:"iterations"`
		Table      []int `json:"table"`
		Stats      struct {
			IsBijective bool `json:"isBijective"`
			Min         int  `json:"minValue"`
			Max         int  `json:"maxValue"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	assert.Equal(t, 8, payload.Size)
	assert.Equal(t, 100, payload.Iterations)
	assert.Len(t, payload.Table, 64)
	assert.True(t, payload.Stats.IsBijective)
	assert.Equal(t, 0, payload.Stats.Min)
	assert.Equal(t, 63, payload.Stats.Max)
}

func TestRegenerateEndpointIsSeedDeterministic(t *testing.T) {
	app := testApp(t)

	fetch := func() []int {
		req := httptest.NewRequest(http.MethodPost, "/api/sbox?seed=7", nil)
		rr := httptest.NewRecorder()
		app.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var payload struct {
			Table []int `json:"table"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
		return payload.Table
	}

	first := fetch()
	second := fetch()
	assert.Equal(t, first, second)
}

func TestSubstituteEndpoint(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/substitute?in=13", nil)
	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var payload struct {
		Input  int `json:"input"`
		Output int `json:"output"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	assert.Equal(t, 13, payload.Input)

	want, err := chesscrypt.GenerateSBox(8, 100, chesscrypt.WithSeed(42))
	require.NoError(t, err)
	out, err := want.Substitute(13)
	require.NoError(t, err)
	assert.Equal(t, out, payload.Output)
}

func TestSubstituteEndpointRejectsBadInput(t *testing.T) {
	app := testApp(t)

	for _, query := range []string{"", "in=abc", "in=64", "in=-1"} {
		req := httptest.NewRequest(http.MethodGet, "/api/substitute?"+query, nil)
		rr := httptest.NewRecorder()
		app.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "query %q", query)
	}
}
