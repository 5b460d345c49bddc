package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lovelocal/directory-service/internal/domain"
	"github.com/lovelocal/directory-service/internal/usecase"
	businessdto "github.com/lovelocal/directory-service/internal/usecase/dto/business"
	"github.com/lovelocal/directory-service/internal/usecase/validation"
)

type BusinessHandler struct {
	uc  usecase.BusinessUsecase
	log *zap.Logger
}

func NewBusinessHandler(uc usecase.BusinessUsecase, log *zap.Logger) *BusinessHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &BusinessHandler{uc: uc, log: log}
}

func (h *BusinessHandler) Register(e *echo.Echo) {
	e.GET("/businesses/:id", h.GetBusiness)
	e.GET("/businesses", h.LookupBusiness)
	e.GET("/businesses/search", h.SearchBusinesses)
	e.GET("/businesses/search-with-counts", h.SearchBusinessesWithCounts)
	e.GET("/businesses/category/:category", h.GetBusinessesByCategory)
	e.GET("/businesses/by-location", h.SearchBusinessesByLocation)
	e.GET("/businesses/nearby", h.GetNearbyBusinesses)
	e.GET("/businesses/geofence", h.GetNearbyBusinessesForGeofencing)
	e.GET("/businesses/:id/locations", h.GetBusinessLocations)

	e.POST("/businesses", h.CreateBusiness)
	e.POST("/businesses/after-auth", h.CreateBusinessAfterAuth)
	e.POST("/businesses/bulk", h.BulkCreateBusinesses)
	e.POST("/businesses/:id/locations", h.AddBusinessLocation)
	e.PATCH("/businesses/:id", h.UpdateBusiness)
	e.PATCH("/locations/:id", h.UpdateBusinessLocation)
	e.DELETE("/businesses/:id", h.DeleteBusinessCompletely)

	e.GET("/internal/businesses", h.ListBusinesses)
	e.POST("/internal/archive", h.ArchiveBusinessForDeletedUser)
	e.POST("/internal/sweep", h.HardDeleteExpiredBusinesses)
	e.POST("/internal/geocode-backfill", h.BulkGeocodeBusinesses)
}

func (h *BusinessHandler) GetBusiness(c echo.Context) error {
	view, err := h.uc.GetBusiness(c.Param("id"))
	if err != nil {
		h.log.Error("get business failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	if view == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "business not found"})
	}
	return c.JSON(http.StatusOK, view)
}

// LookupBusiness resolves a business by email or auth subject.
func (h *BusinessHandler) LookupBusiness(c echo.Context) error {
	var (
		view *domain.MergedBusinessView
		err  error
	)
	switch {
	case c.QueryParam("email") != "":
		view, err = h.uc.GetBusinessByEmail(c.QueryParam("email"))
	case c.QueryParam("auth_subject") != "":
		view, err = h.uc.GetBusinessByAuthSubject(c.QueryParam("auth_subject"))
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email or auth_subject is required"})
	}

	if err != nil {
		h.log.Error("business lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	if view == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "business not found"})
	}
	return c.JSON(http.StatusOK, view)
}

func (h *BusinessHandler) SearchBusinesses(c echo.Context) error {
	input, err := bindSearchInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	results, err := h.uc.SearchBusinesses(input)
	if err != nil {
		h.log.Error("search failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"businesses": results, "count": len(results)})
}

func (h *BusinessHandler) SearchBusinessesWithCounts(c echo.Context) error {
	input, err := bindSearchInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	results, err := h.uc.SearchBusinessesWithCounts(input)
	if err != nil {
		h.log.Error("counts search failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"businesses": results, "count": len(results)})
}

func (h *BusinessHandler) GetBusinessesByCategory(c echo.Context) error {
	results, err := h.uc.GetBusinessesByCategory(c.Param("category"))
	if err != nil {
		h.log.Error("category lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"businesses": results, "count": len(results)})
}

func (h *BusinessHandler) SearchBusinessesByLocation(c echo.Context) error {
	city := c.QueryParam("city")
	state := c.QueryParam("state")
	if city == "" || state == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "city and state are required"})
	}

	results, err := h.uc.SearchBusinessesByLocation(city, state)
	if err != nil {
		h.log.Error("location search failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"businesses": results, "count": len(results)})
}

func (h *BusinessHandler) GetNearbyBusinesses(c echo.Context) error {
	lat, err1 := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.QueryParam("lng"), 64)
	radius, err3 := strconv.ParseFloat(c.QueryParam("radius_km"), 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "lat, lng and radius_km are required"})
	}

	results, err := h.uc.GetNearbyBusinesses(&businessdto.NearbyInput{
		Latitude:  lat,
		Longitude: lng,
		RadiusKm:  radius,
	})
	if err != nil {
		h.log.Error("nearby search failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"businesses": results, "count": len(results)})
}

func (h *BusinessHandler) GetNearbyBusinessesForGeofencing(c echo.Context) error {
	lat, err1 := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.QueryParam("lng"), 64)
	radius, err3 := strconv.ParseFloat(c.QueryParam("radius_miles"), 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "lat, lng and radius_miles are required"})
	}

	results, err := h.uc.GetNearbyBusinessesForGeofencing(&businessdto.GeofencingInput{
		Latitude:    lat,
		Longitude:   lng,
		RadiusMiles: radius,
		UserID:      c.QueryParam("user_id"),
	})
	if err != nil {
		h.log.Error("geofence search failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"businesses": results, "count": len(results)})
}

type createBusinessRequest struct {
	Email            string `json:"email"`
	Name             string `json:"name"`
	AuthSubject      string `json:"auth_subject"`
	SubscriptionPlan string `json:"subscription_plan"`
	SubscriptionTier string `json:"subscription_tier"`
}

func (h *BusinessHandler) CreateBusiness(c echo.Context) error {
	return h.create(c, false)
}

func (h *BusinessHandler) CreateBusinessAfterAuth(c echo.Context) error {
	return h.create(c, true)
}

func (h *BusinessHandler) create(c echo.Context, afterAuth bool) error {
	var req createBusinessRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	input := &businessdto.CreateBusinessInput{
		Email:            req.Email,
		Name:             req.Name,
		AuthSubject:      req.AuthSubject,
		SubscriptionPlan: req.SubscriptionPlan,
		SubscriptionTier: req.SubscriptionTier,
	}

	var (
		view *domain.MergedBusinessView
		err  error
	)
	if afterAuth {
		view, err = h.uc.CreateBusinessAfterAuth(input)
	} else {
		view, err = h.uc.CreateBusiness(input)
	}
	if err != nil {
		h.log.Error("create business failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, view)
}

func (h *BusinessHandler) UpdateBusiness(c echo.Context) error {
	var updates map[string]interface{}
	if err := json.NewDecoder(c.Request().Body).Decode(&updates); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	output, err := h.uc.UpdateBusiness(&businessdto.UpdateBusinessInput{
		BusinessID: c.Param("id"),
		Updates:    updates,
	})
	if err != nil {
		var validationErr *validation.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return c.JSON(http.StatusUnprocessableEntity, validationErr)
		case errors.Is(err, domain.ErrBusinessNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "business not found"})
		default:
			h.log.Error("update business failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}

	return c.JSON(http.StatusOK, output)
}

func (h *BusinessHandler) GetBusinessLocations(c echo.Context) error {
	locations, err := h.uc.GetBusinessLocations(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrBusinessNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "business not found"})
		}
		h.log.Error("list locations failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"locations": locations, "count": len(locations)})
}

func (h *BusinessHandler) AddBusinessLocation(c echo.Context) error {
	var fields map[string]interface{}
	if err := json.NewDecoder(c.Request().Body).Decode(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	location, err := h.uc.AddBusinessLocation(&businessdto.AddLocationInput{
		BusinessID: c.Param("id"),
		Fields:     fields,
	})
	if err != nil {
		var validationErr *validation.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return c.JSON(http.StatusUnprocessableEntity, validationErr)
		case errors.Is(err, domain.ErrBusinessNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "business not found"})
		case errors.Is(err, domain.ErrLocationLimitReached):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		default:
			h.log.Error("add location failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add location failed"})
		}
	}

	return c.JSON(http.StatusCreated, location)
}

func (h *BusinessHandler) UpdateBusinessLocation(c echo.Context) error {
	var fields map[string]interface{}
	if err := json.NewDecoder(c.Request().Body).Decode(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	location, err := h.uc.UpdateBusinessLocation(&businessdto.UpdateLocationInput{
		LocationID: c.Param("id"),
		Fields:     fields,
	})
	if err != nil {
		var validationErr *validation.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return c.JSON(http.StatusUnprocessableEntity, validationErr)
		case errors.Is(err, domain.ErrLocationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
		default:
			h.log.Error("update location failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update location failed"})
		}
	}

	return c.JSON(http.StatusOK, location)
}

func (h *BusinessHandler) ListBusinesses(c echo.Context) error {
	page, limit := int32(1), int32(20)
	if raw := c.QueryParam("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid page"})
		}
		page = int32(parsed)
	}
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = int32(parsed)
	}

	results, err := h.uc.ListBusinesses(page, limit)
	if err != nil {
		h.log.Error("list businesses failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"businesses": results, "count": len(results)})
}

type deleteBusinessRequest struct {
	ConfirmDeletion bool `json:"confirm_deletion"`
}

func (h *BusinessHandler) DeleteBusinessCompletely(c echo.Context) error {
	var req deleteBusinessRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	report, err := h.uc.DeleteBusinessCompletely(&businessdto.DeleteBusinessInput{
		BusinessID:      c.Param("id"),
		ConfirmDeletion: req.ConfirmDeletion,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConfirmationRequired):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, domain.ErrBusinessNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "business not found"})
		default:
			h.log.Error("delete business failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "deletion failed", "report": report})
		}
	}

	return c.JSON(http.StatusOK, report)
}

func (h *BusinessHandler) ArchiveBusinessForDeletedUser(c echo.Context) error {
	subject := c.QueryParam("auth_subject")
	if subject == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "auth_subject is required"})
	}

	report, err := h.uc.ArchiveBusinessForDeletedUser(subject)
	if err != nil {
		if errors.Is(err, domain.ErrBusinessNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "business not found"})
		}
		h.log.Error("archive failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "archive failed", "report": report})
	}

	return c.JSON(http.StatusOK, report)
}

func (h *BusinessHandler) HardDeleteExpiredBusinesses(c echo.Context) error {
	report, err := h.uc.HardDeleteExpiredBusinesses()
	if err != nil {
		h.log.Error("sweep failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sweep failed"})
	}
	return c.JSON(http.StatusOK, report)
}

type bulkCreateRequest struct {
	Items []createBusinessRequest `json:"items"`
}

func (h *BusinessHandler) BulkCreateBusinesses(c echo.Context) error {
	var req bulkCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	input := &businessdto.BulkCreateInput{}
	for _, item := range req.Items {
		input.Items = append(input.Items, businessdto.CreateBusinessInput{
			Email:            item.Email,
			Name:             item.Name,
			AuthSubject:      item.AuthSubject,
			SubscriptionPlan: item.SubscriptionPlan,
			SubscriptionTier: item.SubscriptionTier,
		})
	}

	report, err := h.uc.BulkCreateBusinesses(input)
	if err != nil {
		h.log.Error("bulk create failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "bulk create failed"})
	}
	return c.JSON(http.StatusOK, report)
}

func (h *BusinessHandler) BulkGeocodeBusinesses(c echo.Context) error {
	limit := 100
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = parsed
	}

	report, err := h.uc.BulkGeocodeBusinesses(limit)
	if err != nil {
		h.log.Error("geocode backfill failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "geocode backfill failed"})
	}
	return c.JSON(http.StatusOK, report)
}

func bindSearchInput(c echo.Context) (*businessdto.SearchInput, error) {
	input := &businessdto.SearchInput{
		Term:     c.QueryParam("q"),
		Category: c.QueryParam("category"),
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return nil, errors.New("invalid limit")
		}
		input.Limit = limit
	}

	latRaw, lngRaw, radiusRaw := c.QueryParam("lat"), c.QueryParam("lng"), c.QueryParam("radius_km")
	if latRaw != "" || lngRaw != "" || radiusRaw != "" {
		lat, err1 := strconv.ParseFloat(latRaw, 64)
		lng, err2 := strconv.ParseFloat(lngRaw, 64)
		radius, err3 := strconv.ParseFloat(radiusRaw, 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, errors.New("lat, lng and radius_km must be provided together")
		}
		input.Latitude = &lat
		input.Longitude = &lng
		input.RadiusKm = &radius
	}

	return input, nil
}
