package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"realty-hub/app/dto"
	"realty-hub/app/middleware"
	"realty-hub/app/models"
	"realty-hub/app/services"
)

type AuthController struct{ Auth *services.AuthService }

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

// Signup handles POST /auth/signup/{userType}. Non-BUYER types must present
// a product key derived for their email and role.
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	userType := r.PathValue("userType")
	if !models.ValidRole(userType) {
		writeError(w, http.StatusBadRequest, "invalid user type")
		return
	}
	var req dto.SignupRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Email == "" || req.Password == "" || req.Name == "" || req.Phone == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}
	if userType != models.RoleBuyer {
		if req.ProductKey == "" {
			writeError(w, http.StatusUnauthorized, "product key is required")
			return
		}
		if err := c.Auth.VerifyProductKey(req.ProductKey, req.Email, userType); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid product key")
			return
		}
	}
	token, err := c.Auth.Signup(r.Context(), req.Email, req.Password, req.Name, req.Phone, userType)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "user already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "signup failed")
		return
	}
	writeJSON(w, http.StatusCreated, dto.TokenResponse{AccessToken: token})
}

func (c *AuthController) Signin(w http.ResponseWriter, r *http.Request) {
	var req dto.SigninRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing credentials")
		return
	}
	token, err := c.Auth.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, dto.TokenResponse{AccessToken: token})
}

// GenerateKey handles POST /auth/key. The hashed key is handed out-of-band
// to prospective realtors and admins.
func (c *AuthController) GenerateKey(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductKeyRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Email == "" || !models.ValidRole(req.UserType) {
		writeError(w, http.StatusBadRequest, "email and valid userType required")
		return
	}
	key, err := c.Auth.GenerateProductKey(req.Email, req.UserType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "key generation failed")
		return
	}
	writeJSON(w, http.StatusOK, dto.ProductKeyResponse{ProductKey: key})
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	resp := dto.MeResponse{ID: claims.UserID, Email: claims.Email}
	if claims.IssuedAt != nil {
		resp.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Unix()
	}
	writeJSON(w, http.StatusOK, resp)
}
