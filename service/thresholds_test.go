package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devicepulse/console/service"
	"github.com/stretchr/testify/require"
)

func TestFetchThresholds(t *testing.T) {
	var gotMethod string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		envelopeResponse(t, w, 1, "", map[string]any{
			"temperature_threshold": map[string]float64{"min": -5, "max": 40},
			"humidity_threshold":    map[string]float64{"min": 20, "max": 80},
		})
	}))
	defer server.Close()

	client := service.NewClient(server.URL)
	thresholds, err := client.FetchThresholds(context.Background(), "d1")
	require.NoError(t, err)

	require.Equal(t, http.MethodGet, gotMethod, "fetch sends its parameters in a GET body")
	require.Equal(t, map[string]string{"device_id": "d1"}, gotBody)
	require.Equal(t, service.Range{Min: -5, Max: 40}, thresholds.Temperature)
	require.Equal(t, service.Range{Min: 20, Max: 80}, thresholds.Humidity)
}

func TestUpdateThresholds(t *testing.T) {
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		envelopeResponse(t, w, 1, "", map[string]any{
			"temperature_threshold": gotBody["temperature_threshold"],
			"humidity_threshold":    gotBody["humidity_threshold"],
		})
	}))
	defer server.Close()

	client := service.NewClient(server.URL)
	updated, err := client.UpdateThresholds(context.Background(), "d1", service.Thresholds{
		Temperature: service.Range{Min: 0, Max: 35},
		Humidity:    service.Range{Min: 30, Max: 70},
	})
	require.NoError(t, err)

	require.Equal(t, "d1", gotBody["device_id"])
	require.Equal(t, map[string]any{"min": float64(0), "max": float64(35)}, gotBody["temperature_threshold"])
	require.Equal(t, service.Range{Min: 0, Max: 35}, updated.Temperature)
	require.Equal(t, service.Range{Min: 30, Max: 70}, updated.Humidity)
}
