package repo

import (
	"context"

	"realty-hub/app/models"

	"gorm.io/gorm"
)

// HomeFilter is AND-combined; zero-valued fields are skipped.
type HomeFilter struct {
	City         string
	MinPrice     *float64
	MaxPrice     *float64
	PropertyType string
}

type HomeRepository struct{ db *gorm.DB }

func NewHomeRepository(db *gorm.DB) *HomeRepository { return &HomeRepository{db: db} }

func (r *HomeRepository) Search(ctx context.Context, f HomeFilter) ([]models.Home, error) {
	q := r.db.WithContext(ctx).Model(&models.Home{})
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.PropertyType != "" {
		q = q.Where("property_type = ?", f.PropertyType)
	}
	var homes []models.Home
	if err := q.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("images.id")
	}).Find(&homes).Error; err != nil {
		return nil, err
	}
	return homes, nil
}

func (r *HomeRepository) FindByID(ctx context.Context, id uint) (*models.Home, error) {
	var h models.Home
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("images.id") }).
		Preload("Realtor").
		First(&h, id).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// CreateWithImages persists the home and its image rows in one transaction.
func (r *HomeRepository) CreateWithImages(ctx context.Context, h *models.Home, urls []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(h).Error; err != nil {
			return err
		}
		for _, url := range urls {
			if err := tx.Create(&models.Image{URL: url, HomeID: h.ID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *HomeRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Home{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes the home together with its images and messages.
func (r *HomeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("home_id = ?", id).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Where("home_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Home{}, id).Error
	})
}

// FindRealtor returns the owning realtor of a home, or
// gorm.ErrRecordNotFound if the home does not exist.
func (r *HomeRepository) FindRealtor(ctx context.Context, homeID uint) (*models.User, error) {
	var h models.Home
	if err := r.db.WithContext(ctx).Preload("Realtor").First(&h, homeID).Error; err != nil {
		return nil, err
	}
	return &h.Realtor, nil
}
