package generator_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evn/sop_backendl/internal/pkg/apperr"
	"github.com/evn/sop_backendl/internal/services/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	var got generator.GenerateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"shifts": []generator.GeneratedShift{
				{UserID: 1, Date: "2025-03-03", Duration: 8},
				{UserID: 2, Date: "2025-03-04", Duration: 12},
			},
		})
	}))
	defer server.Close()

	client := generator.NewClient(server.URL)
	shifts, err := client.Generate(context.Background(), 3, "2025-03", "День")
	require.NoError(t, err)

	assert.Equal(t, generator.GenerateRequest{TeamID: 3, Month: "2025-03", ShiftType: "День"}, got)
	require.Len(t, shifts, 2)
	assert.Equal(t, generator.GeneratedShift{UserID: 1, Date: "2025-03-03", Duration: 8}, shifts[0])
}

func TestGenerate_BadStatusIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := generator.NewClient(server.URL).Generate(context.Background(), 3, "2025-03", "День")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnavailable, apperr.KindOf(err))
}

func TestGenerate_TransportErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := generator.NewClient(server.URL).Generate(context.Background(), 3, "2025-03", "День")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnavailable, apperr.KindOf(err))
}
