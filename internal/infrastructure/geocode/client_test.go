package geocode

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lovelocal/directory-service/internal/domain"
)

func TestGeocodeResolvesCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode", r.URL.Path)
		assert.Equal(t, "123 Main St, Jacksonville, FL 32202", r.URL.Query().Get("address"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"latitude":30.3322,"longitude":-81.6557}`))
	}))
	defer server.Close()

	client, err := NewHTTPGeocodeClient(server.URL)
	require.NoError(t, err)

	point, err := client.Geocode("123 Main St, Jacksonville, FL 32202")
	require.NoError(t, err)
	require.NotNil(t, point)
	assert.InDelta(t, 30.3322, point.Latitude, 1e-9)
	assert.InDelta(t, -81.6557, point.Longitude, 1e-9)
}

func TestGeocodeNotFoundIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewHTTPGeocodeClient(server.URL)
	require.NoError(t, err)

	point, err := client.Geocode("nowhere")
	require.NoError(t, err)
	assert.Nil(t, point)
}

func TestGeocodeServerErrorWrapsSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"upstream provider unavailable"}`))
	}))
	defer server.Close()

	client, err := NewHTTPGeocodeClient(server.URL)
	require.NoError(t, err)

	point, err := client.Geocode("123 Main St")
	assert.Nil(t, point)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGeocodeFailed)
	assert.Contains(t, err.Error(), "upstream provider unavailable")
}

func TestGeocodeNonJSONErrorStillWrapsSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	}))
	defer server.Close()

	client, err := NewHTTPGeocodeClient(server.URL)
	require.NoError(t, err)

	_, err = client.Geocode("123 Main St")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGeocodeFailed)
}
