package dto

type SignupRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	ProductKey string `json:"productKey"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

type ProductKeyRequest struct {
	Email    string `json:"email"`
	UserType string `json:"userType"`
}

type ProductKeyResponse struct {
	ProductKey string `json:"productKey"`
}

// MeResponse echoes the decoded token identity.
type MeResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
