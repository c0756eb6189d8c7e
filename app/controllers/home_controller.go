package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"realty-hub/app/dto"
	"realty-hub/app/middleware"
	"realty-hub/app/models"
	"realty-hub/app/repo"
	"realty-hub/app/services"
)

type HomeController struct{ Homes *services.HomeService }

func NewHomeController(homes *services.HomeService) *HomeController {
	return &HomeController{Homes: homes}
}

func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// Search handles GET /home with optional city/minPrice/maxPrice/propertyType
// query filters.
func (c *HomeController) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repo.HomeFilter{City: q.Get("city")}
	if raw := q.Get("minPrice"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid minPrice")
			return
		}
		filter.MinPrice = &min
	}
	if raw := q.Get("maxPrice"); raw != "" {
		max, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid maxPrice")
			return
		}
		filter.MaxPrice = &max
	}
	if raw := q.Get("propertyType"); raw != "" {
		if !models.ValidPropertyType(raw) {
			writeError(w, http.StatusBadRequest, "invalid propertyType")
			return
		}
		filter.PropertyType = raw
	}
	homes, err := c.Homes.Search(r.Context(), filter)
	if err != nil {
		if errors.Is(err, services.ErrHomeNotFound) {
			writeError(w, http.StatusNotFound, "no homes found")
			return
		}
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, homes)
}

func (c *HomeController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	home, err := c.Homes.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrHomeNotFound) {
			writeError(w, http.StatusNotFound, "home not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, home)
}

func (c *HomeController) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	var req dto.CreateHomeRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Address == "" || req.City == "" || !models.ValidPropertyType(req.PropertyType) {
		writeError(w, http.StatusBadRequest, "missing or invalid fields")
		return
	}
	home, err := c.Homes.Create(r.Context(), req, claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "create failed")
		return
	}
	writeJSON(w, http.StatusCreated, home)
}

// requireOwner resolves the home's realtor and compares against the caller.
// A missing home is 404; an ownership mismatch is 401.
func (c *HomeController) requireOwner(w http.ResponseWriter, r *http.Request, id uint) bool {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return false
	}
	realtor, err := c.Homes.RealtorByHomeID(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrHomeNotFound) {
			writeError(w, http.StatusNotFound, "home not found")
			return false
		}
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return false
	}
	if realtor.ID != claims.UserID {
		w.WriteHeader(http.StatusUnauthorized)
		return false
	}
	return true
}

func (c *HomeController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if !c.requireOwner(w, r, id) {
		return
	}
	var req dto.UpdateHomeRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.PropertyType != nil && !models.ValidPropertyType(*req.PropertyType) {
		writeError(w, http.StatusBadRequest, "invalid propertyType")
		return
	}
	home, err := c.Homes.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, services.ErrHomeNotFound) {
			writeError(w, http.StatusNotFound, "home not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "update failed")
		return
	}
	writeJSON(w, http.StatusOK, home)
}

func (c *HomeController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if !c.requireOwner(w, r, id) {
		return
	}
	if err := c.Homes.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrHomeNotFound) {
			writeError(w, http.StatusNotFound, "home not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *HomeController) Inquire(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	var req dto.InquireRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	m, err := c.Homes.Inquire(r.Context(), claims.UserID, id, req.Message)
	if err != nil {
		if errors.Is(err, services.ErrHomeNotFound) {
			writeError(w, http.StatusNotFound, "home not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "inquire failed")
		return
	}
	writeJSON(w, http.StatusCreated, dto.InquireResponse{ID: m.ID, HomeID: m.HomeID, Message: m.Body})
}

func (c *HomeController) Messages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if !c.requireOwner(w, r, id) {
		return
	}
	msgs, err := c.Homes.MessagesByHome(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}
