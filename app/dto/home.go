package dto

// HomeSummary is the listing card shape: first image only.
type HomeSummary struct {
	ID           uint    `json:"id"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	Price        float64 `json:"price"`
	LandSize     float64 `json:"landSize"`
	Bedrooms     int     `json:"numberOfBedrooms"`
	Bathrooms    int     `json:"numberOfBathrooms"`
	PropertyType string  `json:"propertyType"`
	Image        string  `json:"image,omitempty"`
}

type RealtorContact struct {
	ID    uint   `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type HomeDetail struct {
	ID           uint           `json:"id"`
	Address      string         `json:"address"`
	City         string         `json:"city"`
	Price        float64        `json:"price"`
	LandSize     float64        `json:"landSize"`
	Bedrooms     int            `json:"numberOfBedrooms"`
	Bathrooms    int            `json:"numberOfBathrooms"`
	PropertyType string         `json:"propertyType"`
	Images       []string       `json:"images"`
	Realtor      RealtorContact `json:"realtor"`
}

type CreateHomeRequest struct {
	Address      string   `json:"address"`
	City         string   `json:"city"`
	Price        float64  `json:"price"`
	LandSize     float64  `json:"landSize"`
	Bedrooms     int      `json:"numberOfBedrooms"`
	Bathrooms    int      `json:"numberOfBathrooms"`
	PropertyType string   `json:"propertyType"`
	Images       []string `json:"images"`
}

// UpdateHomeRequest carries a partial update; nil fields are left untouched.
type UpdateHomeRequest struct {
	Address      *string  `json:"address"`
	City         *string  `json:"city"`
	Price        *float64 `json:"price"`
	LandSize     *float64 `json:"landSize"`
	Bedrooms     *int     `json:"numberOfBedrooms"`
	Bathrooms    *int     `json:"numberOfBathrooms"`
	PropertyType *string  `json:"propertyType"`
}

type InquireRequest struct {
	Message string `json:"message"`
}

type InquireResponse struct {
	ID      uint   `json:"id"`
	HomeID  uint   `json:"homeId"`
	Message string `json:"message"`
}

type BuyerProfile struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type MessageResponse struct {
	Message string       `json:"message"`
	Buyer   BuyerProfile `json:"buyer"`
}
