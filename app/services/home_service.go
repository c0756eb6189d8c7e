package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"realty-hub/app/dto"
	"realty-hub/app/models"
	"realty-hub/app/repo"
	"realty-hub/global"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var ErrHomeNotFound = errors.New("home not found")

const (
	searchCacheTTL = 60 * time.Second
	searchGenKey   = "homes:gen"
)

type HomeService struct {
	homes    *repo.HomeRepository
	messages *repo.MessageRepository
	cache    *redis.Client
}

// NewHomeService builds the listing service. cache may be nil, which
// disables the search cache.
func NewHomeService(homes *repo.HomeRepository, messages *repo.MessageRepository, cache *redis.Client) *HomeService {
	return &HomeService{homes: homes, messages: messages, cache: cache}
}

// Search returns listing summaries matching the AND-combined filters. An
// empty result set is ErrHomeNotFound; callers treat it as 404.
func (s *HomeService) Search(ctx context.Context, f repo.HomeFilter) ([]dto.HomeSummary, error) {
	if cached, ok := s.cachedSearch(ctx, f); ok {
		return cached, nil
	}
	homes, err := s.homes.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(homes) == 0 {
		return nil, ErrHomeNotFound
	}
	out := make([]dto.HomeSummary, 0, len(homes))
	for i := range homes {
		out = append(out, summarize(&homes[i]))
	}
	s.storeSearch(ctx, f, out)
	return out, nil
}

func (s *HomeService) GetByID(ctx context.Context, id uint) (*dto.HomeDetail, error) {
	h, err := s.homes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHomeNotFound
		}
		return nil, err
	}
	urls := make([]string, 0, len(h.Images))
	for _, img := range h.Images {
		urls = append(urls, img.URL)
	}
	return &dto.HomeDetail{
		ID: h.ID, Address: h.Address, City: h.City, Price: h.Price,
		LandSize: h.LandSize, Bedrooms: h.Bedrooms, Bathrooms: h.Bathrooms,
		PropertyType: h.PropertyType,
		Images:       urls,
		Realtor:      dto.RealtorContact{Name: h.Realtor.Name, Email: h.Realtor.Email, Phone: h.Realtor.Phone},
	}, nil
}

// Create persists the listing and its image rows atomically and returns the
// new summary.
func (s *HomeService) Create(ctx context.Context, req dto.CreateHomeRequest, realtorID uint) (*dto.HomeSummary, error) {
	h := &models.Home{
		Address: req.Address, City: req.City, Price: req.Price,
		LandSize: req.LandSize, Bedrooms: req.Bedrooms, Bathrooms: req.Bathrooms,
		PropertyType: req.PropertyType, RealtorID: realtorID,
	}
	if err := s.homes.CreateWithImages(ctx, h, req.Images); err != nil {
		return nil, err
	}
	s.invalidateSearch(ctx)
	out := summarize(h)
	if len(req.Images) > 0 {
		out.Image = req.Images[0]
	}
	return &out, nil
}

// Update applies a partial update. Ownership is the caller's concern.
func (s *HomeService) Update(ctx context.Context, id uint, req dto.UpdateHomeRequest) (*dto.HomeSummary, error) {
	if _, err := s.homes.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHomeNotFound
		}
		return nil, err
	}
	fields := map[string]interface{}{}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.City != nil {
		fields["city"] = *req.City
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.LandSize != nil {
		fields["land_size"] = *req.LandSize
	}
	if req.Bedrooms != nil {
		fields["bedrooms"] = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		fields["bathrooms"] = *req.Bathrooms
	}
	if req.PropertyType != nil {
		fields["property_type"] = *req.PropertyType
	}
	if len(fields) > 0 {
		if err := s.homes.Update(ctx, id, fields); err != nil {
			return nil, err
		}
		s.invalidateSearch(ctx)
	}
	h, err := s.homes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := summarize(h)
	return &out, nil
}

func (s *HomeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.homes.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHomeNotFound
		}
		return err
	}
	if err := s.homes.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateSearch(ctx)
	return nil
}

// RealtorByHomeID returns the owning realtor's public profile plus id, used
// for display and for ownership comparison at the HTTP boundary.
func (s *HomeService) RealtorByHomeID(ctx context.Context, homeID uint) (*dto.RealtorContact, error) {
	u, err := s.homes.FindRealtor(ctx, homeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHomeNotFound
		}
		return nil, err
	}
	return &dto.RealtorContact{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}, nil
}

// Inquire records a buyer message against the home's realtor. No dedup and
// no rate limit.
func (s *HomeService) Inquire(ctx context.Context, buyerID, homeID uint, body string) (*models.Message, error) {
	realtor, err := s.RealtorByHomeID(ctx, homeID)
	if err != nil {
		return nil, err
	}
	m := &models.Message{Body: body, HomeID: homeID, BuyerID: buyerID, RealtorID: realtor.ID}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *HomeService) MessagesByHome(ctx context.Context, homeID uint) ([]dto.MessageResponse, error) {
	msgs, err := s.messages.ListByHome(ctx, homeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, dto.MessageResponse{
			Message: m.Body,
			Buyer:   dto.BuyerProfile{Name: m.Buyer.Name, Phone: m.Buyer.Phone, Email: m.Buyer.Email},
		})
	}
	return out, nil
}

func summarize(h *models.Home) dto.HomeSummary {
	out := dto.HomeSummary{
		ID: h.ID, Address: h.Address, City: h.City, Price: h.Price,
		LandSize: h.LandSize, Bedrooms: h.Bedrooms, Bathrooms: h.Bathrooms,
		PropertyType: h.PropertyType,
	}
	if len(h.Images) > 0 {
		out.Image = h.Images[0].URL
	}
	return out
}

// The search cache is keyed under a generation counter so mutations can
// invalidate every filter combination with a single INCR.

func (s *HomeService) searchKey(ctx context.Context, f repo.HomeFilter) string {
	gen, _ := s.cache.Get(ctx, searchGenKey).Int64()
	min, max := "", ""
	if f.MinPrice != nil {
		min = fmt.Sprintf("%g", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		max = fmt.Sprintf("%g", *f.MaxPrice)
	}
	return fmt.Sprintf("homes:%d:city=%s&min=%s&max=%s&type=%s", gen, f.City, min, max, f.PropertyType)
}

func (s *HomeService) cachedSearch(ctx context.Context, f repo.HomeFilter) ([]dto.HomeSummary, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.searchKey(ctx, f)).Bytes()
	if err != nil {
		return nil, false
	}
	var out []dto.HomeSummary
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}

func (s *HomeService) storeSearch(ctx context.Context, f repo.HomeFilter, out []dto.HomeSummary) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.searchKey(ctx, f), raw, searchCacheTTL).Err(); err != nil {
		global.Logger.Warn().Err(err).Msg("search cache set failed")
	}
}

func (s *HomeService) invalidateSearch(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Incr(ctx, searchGenKey).Err(); err != nil {
		global.Logger.Warn().Err(err).Msg("search cache invalidate failed")
	}
}
