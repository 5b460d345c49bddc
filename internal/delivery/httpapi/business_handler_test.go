package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lovelocal/directory-service/internal/domain"
	businessdto "github.com/lovelocal/directory-service/internal/usecase/dto/business"
	"github.com/lovelocal/directory-service/internal/usecase/validation"
)

// stubUsecase lets each test plug in just the method it exercises.
type stubUsecase struct {
	getBusiness       func(id string) (*domain.MergedBusinessView, error)
	getByEmail        func(email string) (*domain.MergedBusinessView, error)
	getByAuthSubject  func(subject string) (*domain.MergedBusinessView, error)
	search            func(input *businessdto.SearchInput) ([]*domain.MergedBusinessView, error)
	searchWithCounts  func(input *businessdto.SearchInput) ([]*domain.MergedBusinessView, error)
	searchByLocation  func(city, state string) ([]*domain.MergedBusinessView, error)
	byCategory        func(category string) ([]*domain.MergedBusinessView, error)
	nearby            func(input *businessdto.NearbyInput) ([]*domain.MergedBusinessView, error)
	geofence          func(input *businessdto.GeofencingInput) ([]*businessdto.ScoredBusiness, error)
	create            func(input *businessdto.CreateBusinessInput) (*domain.MergedBusinessView, error)
	createAfterAuth   func(input *businessdto.CreateBusinessInput) (*domain.MergedBusinessView, error)
	update            func(input *businessdto.UpdateBusinessInput) (*businessdto.UpdateBusinessOutput, error)
	deleteCompletely  func(input *businessdto.DeleteBusinessInput) (*businessdto.DeletionReport, error)
	deleteByAuth      func(subject string, confirm bool) (*businessdto.DeletionReport, error)
	archive           func(authSubject string) (*businessdto.ArchiveReport, error)
	sweep             func() (*businessdto.SweepReport, error)
	bulkCreate        func(input *businessdto.BulkCreateInput) (*businessdto.BulkCreateReport, error)
	bulkGeocode       func(limit int) (*businessdto.GeocodeReport, error)
	byCategories      func(categories []string) ([]*domain.MergedBusinessView, error)
	locations         func(businessID string) ([]*domain.BusinessLocation, error)
	addLocation       func(input *businessdto.AddLocationInput) (*domain.BusinessLocation, error)
	updateLocation    func(input *businessdto.UpdateLocationInput) (*domain.BusinessLocation, error)
	list              func(page, limit int32) ([]*domain.MergedBusinessView, error)
}

func (s *stubUsecase) GetBusiness(id string) (*domain.MergedBusinessView, error) {
	return s.getBusiness(id)
}

func (s *stubUsecase) GetBusinessByEmail(email string) (*domain.MergedBusinessView, error) {
	return s.getByEmail(email)
}

func (s *stubUsecase) GetBusinessByAuthSubject(subject string) (*domain.MergedBusinessView, error) {
	return s.getByAuthSubject(subject)
}

func (s *stubUsecase) GetBusinessesByCategory(category string) ([]*domain.MergedBusinessView, error) {
	return s.byCategory(category)
}

func (s *stubUsecase) GetBusinessesByCategories(categories []string) ([]*domain.MergedBusinessView, error) {
	return s.byCategories(categories)
}

func (s *stubUsecase) SearchBusinesses(input *businessdto.SearchInput) ([]*domain.MergedBusinessView, error) {
	return s.search(input)
}

func (s *stubUsecase) SearchBusinessesWithCounts(input *businessdto.SearchInput) ([]*domain.MergedBusinessView, error) {
	return s.searchWithCounts(input)
}

func (s *stubUsecase) SearchBusinessesByLocation(city, state string) ([]*domain.MergedBusinessView, error) {
	return s.searchByLocation(city, state)
}

func (s *stubUsecase) GetNearbyBusinesses(input *businessdto.NearbyInput) ([]*domain.MergedBusinessView, error) {
	return s.nearby(input)
}

func (s *stubUsecase) GetNearbyBusinessesForGeofencing(input *businessdto.GeofencingInput) ([]*businessdto.ScoredBusiness, error) {
	return s.geofence(input)
}

func (s *stubUsecase) CreateBusinessAfterAuth(input *businessdto.CreateBusinessInput) (*domain.MergedBusinessView, error) {
	return s.createAfterAuth(input)
}

func (s *stubUsecase) CreateBusiness(input *businessdto.CreateBusinessInput) (*domain.MergedBusinessView, error) {
	return s.create(input)
}

func (s *stubUsecase) UpdateBusiness(input *businessdto.UpdateBusinessInput) (*businessdto.UpdateBusinessOutput, error) {
	return s.update(input)
}

func (s *stubUsecase) DeleteBusinessCompletely(input *businessdto.DeleteBusinessInput) (*businessdto.DeletionReport, error) {
	return s.deleteCompletely(input)
}

func (s *stubUsecase) DeleteBusinessByAuthSubject(subject string, confirm bool) (*businessdto.DeletionReport, error) {
	return s.deleteByAuth(subject, confirm)
}

func (s *stubUsecase) ArchiveBusinessForDeletedUser(authSubject string) (*businessdto.ArchiveReport, error) {
	return s.archive(authSubject)
}

func (s *stubUsecase) HardDeleteExpiredBusinesses() (*businessdto.SweepReport, error) {
	return s.sweep()
}

func (s *stubUsecase) BulkCreateBusinesses(input *businessdto.BulkCreateInput) (*businessdto.BulkCreateReport, error) {
	return s.bulkCreate(input)
}

func (s *stubUsecase) BulkGeocodeBusinesses(limit int) (*businessdto.GeocodeReport, error) {
	return s.bulkGeocode(limit)
}

func (s *stubUsecase) GetBusinessLocations(businessID string) ([]*domain.BusinessLocation, error) {
	return s.locations(businessID)
}

func (s *stubUsecase) AddBusinessLocation(input *businessdto.AddLocationInput) (*domain.BusinessLocation, error) {
	return s.addLocation(input)
}

func (s *stubUsecase) UpdateBusinessLocation(input *businessdto.UpdateLocationInput) (*domain.BusinessLocation, error) {
	return s.updateLocation(input)
}

func (s *stubUsecase) ListBusinesses(page, limit int32) ([]*domain.MergedBusinessView, error) {
	return s.list(page, limit)
}

func newTestServer(stub *stubUsecase) *echo.Echo {
	e := echo.New()
	NewBusinessHandler(stub, nil).Register(e)
	return e
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetBusinessHandler(t *testing.T) {
	stub := &stubUsecase{
		getBusiness: func(id string) (*domain.MergedBusinessView, error) {
			if id == "b-1" {
				return &domain.MergedBusinessView{ID: "b-1", Name: "Acme Hardware"}, nil
			}
			return nil, nil
		},
	}
	e := newTestServer(stub)

	rec := doRequest(e, http.MethodGet, "/businesses/b-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var view domain.MergedBusinessView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "Acme Hardware", view.Name)

	rec = doRequest(e, http.MethodGet, "/businesses/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLookupBusinessHandler(t *testing.T) {
	stub := &stubUsecase{
		getByEmail: func(email string) (*domain.MergedBusinessView, error) {
			return &domain.MergedBusinessView{ID: "b-1"}, nil
		},
		getByAuthSubject: func(subject string) (*domain.MergedBusinessView, error) {
			return nil, nil
		},
	}
	e := newTestServer(stub)

	assert.Equal(t, http.StatusOK, doRequest(e, http.MethodGet, "/businesses?email=a%40b.test", "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(e, http.MethodGet, "/businesses?auth_subject=auth0%7Cx", "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(e, http.MethodGet, "/businesses", "").Code)
}

func TestSearchBusinessesHandlerBindsInput(t *testing.T) {
	var captured *businessdto.SearchInput
	stub := &stubUsecase{
		search: func(input *businessdto.SearchInput) ([]*domain.MergedBusinessView, error) {
			captured = input
			return []*domain.MergedBusinessView{}, nil
		},
	}
	e := newTestServer(stub)

	rec := doRequest(e, http.MethodGet, "/businesses/search?q=coffee&category=Cafe&lat=30.3&lng=-81.6&radius_km=10&limit=5", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "coffee", captured.Term)
	assert.Equal(t, "Cafe", captured.Category)
	assert.Equal(t, 5, captured.Limit)
	require.NotNil(t, captured.RadiusKm)
	assert.Equal(t, 10.0, *captured.RadiusKm)

	// geo params must come together
	rec = doRequest(e, http.MethodGet, "/businesses/search?lat=30.3", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodGet, "/businesses/search?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateBusinessHandlerStatusMapping(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		stub := &stubUsecase{
			update: func(input *businessdto.UpdateBusinessInput) (*businessdto.UpdateBusinessOutput, error) {
				assert.Equal(t, "b-1", input.BusinessID)
				assert.Equal(t, "9045551234", input.Updates["phone"])
				return &businessdto.UpdateBusinessOutput{
					Business:            &domain.MergedBusinessView{ID: "b-1"},
					OnboardingCompleted: true,
				}, nil
			},
		}
		rec := doRequest(newTestServer(stub), http.MethodPatch, "/businesses/b-1", `{"phone":"9045551234"}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		var output businessdto.UpdateBusinessOutput
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &output))
		assert.True(t, output.OnboardingCompleted)
	})

	t.Run("validation error becomes 422", func(t *testing.T) {
		stub := &stubUsecase{
			update: func(input *businessdto.UpdateBusinessInput) (*businessdto.UpdateBusinessOutput, error) {
				return nil, &validation.ValidationError{
					Type:   "social_media_validation",
					Errors: map[string]string{"facebook_url": "not a valid URL"},
				}
			},
		}
		rec := doRequest(newTestServer(stub), http.MethodPatch, "/businesses/b-1", `{"facebook_url":"::"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var verr validation.ValidationError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verr))
		assert.Equal(t, "social_media_validation", verr.Type)
		assert.Contains(t, verr.Errors, "facebook_url")
	})

	t.Run("missing business becomes 404", func(t *testing.T) {
		stub := &stubUsecase{
			update: func(input *businessdto.UpdateBusinessInput) (*businessdto.UpdateBusinessOutput, error) {
				return nil, domain.ErrBusinessNotFound
			},
		}
		rec := doRequest(newTestServer(stub), http.MethodPatch, "/businesses/missing", `{"phone":"x"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteBusinessHandlerStatusMapping(t *testing.T) {
	stub := &stubUsecase{
		deleteCompletely: func(input *businessdto.DeleteBusinessInput) (*businessdto.DeletionReport, error) {
			if !input.ConfirmDeletion {
				return nil, domain.ErrConfirmationRequired
			}
			return &businessdto.DeletionReport{
				BusinessID:        input.BusinessID,
				BusinessDeleted:   true,
				BusinessLocations: 2,
				Collections:       map[string]int64{"promotions": 4},
			}, nil
		},
	}
	e := newTestServer(stub)

	rec := doRequest(e, http.MethodDelete, "/businesses/b-1", `{"confirm_deletion":false}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodDelete, "/businesses/b-1", `{"confirm_deletion":true}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var report businessdto.DeletionReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.True(t, report.BusinessDeleted)
	assert.Equal(t, int64(2), report.BusinessLocations)
	assert.Equal(t, int64(4), report.Collections["promotions"])
}

func TestCreateBusinessHandler(t *testing.T) {
	stub := &stubUsecase{
		createAfterAuth: func(input *businessdto.CreateBusinessInput) (*domain.MergedBusinessView, error) {
			assert.Equal(t, "auth0|abc", input.AuthSubject)
			return &domain.MergedBusinessView{ID: "b-1", Name: input.Name}, nil
		},
	}
	rec := doRequest(newTestServer(stub), http.MethodPost, "/businesses/after-auth",
		`{"email":"owner@acme.test","name":"Acme Hardware","auth_subject":"auth0|abc"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestNearbyHandlerRequiresAllParams(t *testing.T) {
	stub := &stubUsecase{
		nearby: func(input *businessdto.NearbyInput) ([]*domain.MergedBusinessView, error) {
			return []*domain.MergedBusinessView{}, nil
		},
	}
	e := newTestServer(stub)

	assert.Equal(t, http.StatusOK, doRequest(e, http.MethodGet, "/businesses/nearby?lat=30.3&lng=-81.6&radius_km=5", "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(e, http.MethodGet, "/businesses/nearby?lat=30.3", "").Code)
}

func TestGeofenceHandler(t *testing.T) {
	stub := &stubUsecase{
		geofence: func(input *businessdto.GeofencingInput) ([]*businessdto.ScoredBusiness, error) {
			assert.Equal(t, "user-1", input.UserID)
			return []*businessdto.ScoredBusiness{
				{Business: &domain.MergedBusinessView{ID: "b-1"}, Distance: 2.5, Score: 34},
			}, nil
		},
	}
	rec := doRequest(newTestServer(stub), http.MethodGet,
		"/businesses/geofence?lat=30.3&lng=-81.6&radius_miles=5&user_id=user-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Businesses []*businessdto.ScoredBusiness `json:"businesses"`
		Count      int                           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Businesses, 1)
	assert.Equal(t, 34.0, body.Businesses[0].Score)
}

func TestGetBusinessLocationsHandler(t *testing.T) {
	stub := &stubUsecase{
		locations: func(businessID string) ([]*domain.BusinessLocation, error) {
			if businessID != "b-1" {
				return nil, domain.ErrBusinessNotFound
			}
			return []*domain.BusinessLocation{
				{ID: "l-1", BusinessID: "b-1", IsPrimary: true},
				{ID: "l-2", BusinessID: "b-1"},
			}, nil
		},
	}
	e := newTestServer(stub)

	rec := doRequest(e, http.MethodGet, "/businesses/b-1/locations", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Locations []*domain.BusinessLocation `json:"locations"`
		Count     int                        `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)

	rec = doRequest(e, http.MethodGet, "/businesses/missing/locations", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddBusinessLocationHandlerStatusMapping(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		stub := &stubUsecase{
			addLocation: func(input *businessdto.AddLocationInput) (*domain.BusinessLocation, error) {
				assert.Equal(t, "b-1", input.BusinessID)
				assert.Equal(t, "Jacksonville", input.Fields["city"])
				return &domain.BusinessLocation{ID: "l-2", BusinessID: "b-1"}, nil
			},
		}
		rec := doRequest(newTestServer(stub), http.MethodPost, "/businesses/b-1/locations", `{"city":"Jacksonville"}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("limit reached becomes 409", func(t *testing.T) {
		stub := &stubUsecase{
			addLocation: func(input *businessdto.AddLocationInput) (*domain.BusinessLocation, error) {
				return nil, domain.ErrLocationLimitReached
			},
		}
		rec := doRequest(newTestServer(stub), http.MethodPost, "/businesses/b-1/locations", `{}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("missing business becomes 404", func(t *testing.T) {
		stub := &stubUsecase{
			addLocation: func(input *businessdto.AddLocationInput) (*domain.BusinessLocation, error) {
				return nil, domain.ErrBusinessNotFound
			},
		}
		rec := doRequest(newTestServer(stub), http.MethodPost, "/businesses/missing/locations", `{}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUpdateBusinessLocationHandlerStatusMapping(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		stub := &stubUsecase{
			updateLocation: func(input *businessdto.UpdateLocationInput) (*domain.BusinessLocation, error) {
				assert.Equal(t, "l-1", input.LocationID)
				return &domain.BusinessLocation{ID: "l-1", Phone: "9045551234"}, nil
			},
		}
		rec := doRequest(newTestServer(stub), http.MethodPatch, "/locations/l-1", `{"phone":"9045551234"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing location becomes 404", func(t *testing.T) {
		stub := &stubUsecase{
			updateLocation: func(input *businessdto.UpdateLocationInput) (*domain.BusinessLocation, error) {
				return nil, domain.ErrLocationNotFound
			},
		}
		rec := doRequest(newTestServer(stub), http.MethodPatch, "/locations/missing", `{"phone":"x"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("validation error becomes 422", func(t *testing.T) {
		stub := &stubUsecase{
			updateLocation: func(input *businessdto.UpdateLocationInput) (*domain.BusinessLocation, error) {
				return nil, &validation.ValidationError{
					Type:   "social_media_validation",
					Errors: map[string]string{"instagram_url": "not an instagram URL"},
				}
			},
		}
		rec := doRequest(newTestServer(stub), http.MethodPatch, "/locations/l-1", `{"instagram_url":"x"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestListBusinessesHandlerPaging(t *testing.T) {
	var gotPage, gotLimit int32
	stub := &stubUsecase{
		list: func(page, limit int32) ([]*domain.MergedBusinessView, error) {
			gotPage, gotLimit = page, limit
			return []*domain.MergedBusinessView{{ID: "b-1"}}, nil
		},
	}
	e := newTestServer(stub)

	rec := doRequest(e, http.MethodGet, "/internal/businesses", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(1), gotPage)
	assert.Equal(t, int32(20), gotLimit)

	rec = doRequest(e, http.MethodGet, "/internal/businesses?page=3&limit=50", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(3), gotPage)
	assert.Equal(t, int32(50), gotLimit)

	assert.Equal(t, http.StatusBadRequest, doRequest(e, http.MethodGet, "/internal/businesses?page=0", "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(e, http.MethodGet, "/internal/businesses?limit=abc", "").Code)
}

func TestArchiveHandlerRequiresSubject(t *testing.T) {
	stub := &stubUsecase{
		archive: func(authSubject string) (*businessdto.ArchiveReport, error) {
			return &businessdto.ArchiveReport{BusinessID: "b-1"}, nil
		},
	}
	e := newTestServer(stub)

	assert.Equal(t, http.StatusBadRequest, doRequest(e, http.MethodPost, "/internal/archive", "").Code)
	assert.Equal(t, http.StatusOK, doRequest(e, http.MethodPost, "/internal/archive?auth_subject=auth0%7Cx", "").Code)
}

func TestGeocodeBackfillHandlerLimit(t *testing.T) {
	var captured int
	stub := &stubUsecase{
		bulkGeocode: func(limit int) (*businessdto.GeocodeReport, error) {
			captured = limit
			return &businessdto.GeocodeReport{Geocoded: 1}, nil
		},
	}
	e := newTestServer(stub)

	assert.Equal(t, http.StatusOK, doRequest(e, http.MethodPost, "/internal/geocode-backfill", "").Code)
	assert.Equal(t, 100, captured)

	assert.Equal(t, http.StatusOK, doRequest(e, http.MethodPost, "/internal/geocode-backfill?limit=25", "").Code)
	assert.Equal(t, 25, captured)

	assert.Equal(t, http.StatusBadRequest, doRequest(e, http.MethodPost, "/internal/geocode-backfill?limit=-1", "").Code)
}
