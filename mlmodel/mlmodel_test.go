package mlmodel_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"go-crisiswatch/mlmodel"
)

func TestClassifyDecodesResult(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"is_crisis": true,
			"location": {"name": "Assam", "coordinates": {"lat": 26.2, "lon": 91.7}},
			"type_classification": {"type": "flood"}
		}`))
	}))
	defer server.Close()

	client := mlmodel.NewClient(server.URL)
	result, err := client.Classify(context.Background(), "severe flooding", "manual", "Guwahati")
	require.NoError(t, err)
	require.NotNil(t, result)
	require.True(t, result.IsCrisis)
	require.Equal(t, "Assam", result.Location.Name)
	require.Equal(t, "flood", result.TypeClassification.Type)
	require.NotNil(t, result.Location.Coordinates)
	require.Equal(t, 26.2, *result.Location.Coordinates.Lat)

	require.Equal(t, "severe flooding", gotBody["text"])
	require.Equal(t, "manual", gotBody["source"])
	require.Equal(t, "Guwahati", gotBody["location_hint"])
}

func TestClassifyNonOKStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := mlmodel.NewClient(server.URL)
	_, err := client.Classify(context.Background(), "text", "manual", "")
	require.Error(t, err)
}

func TestClassifyNullBodyYieldsNoResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("null"))
	}))
	defer server.Close()

	client := mlmodel.NewClient(server.URL)
	result, err := client.Classify(context.Background(), "text", "manual", "")
	require.NoError(t, err)
	require.Nil(t, result)
}

func TestClassifyMalformedBodyIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := mlmodel.NewClient(server.URL)
	_, err := client.Classify(context.Background(), "text", "manual", "")
	require.Error(t, err)
}
