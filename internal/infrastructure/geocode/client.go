package geocode

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/lovelocal/directory-service/internal/domain"
)

// HTTPGeocodeClient talks to the sidecar geocoding service. The service
// contract is a single GET returning coordinates or a 404 when the
// address cannot be resolved.
type HTTPGeocodeClient struct {
	Address string
}

func NewHTTPGeocodeClient(address string) (*HTTPGeocodeClient, error) {
	return &HTTPGeocodeClient{
		Address: address,
	}, nil
}

type geocodeResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPGeocodeClient) Geocode(address string) (*domain.GeoPoint, error) {
	response, err := http.Get(fmt.Sprintf("%s/geocode?address=%s", c.Address, url.QueryEscape(address)))
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		var body geocodeResponse
		if err := json.Unmarshal(responseBodyBytes, &body); err != nil {
			return nil, err
		}
		return &domain.GeoPoint{Latitude: body.Latitude, Longitude: body.Longitude}, nil
	}

	var errBody errorResponse
	if err := json.Unmarshal(responseBodyBytes, &errBody); err != nil {
		return nil, fmt.Errorf("%w: status %d", domain.ErrGeocodeFailed, response.StatusCode)
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrGeocodeFailed, errBody.Error)
}
