package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/appetyte/appetyte/app/models"
)

// providerRepository implements the ProviderRepository interface
type providerRepository struct {
	db *gorm.DB
}

// NewProviderRepository creates a new provider repository instance
func NewProviderRepository(db *gorm.DB) ProviderRepository {
	return &providerRepository{db: db}
}

// Create creates a new provider in the database
func (r *providerRepository) Create(provider *models.Provider) error {
	return r.db.Create(provider).Error
}

// GetByID retrieves a provider by its ID
func (r *providerRepository) GetByID(id uint) (*models.Provider, error) {
	var provider models.Provider
	if err := r.db.First(&provider, id).Error; err != nil {
		return nil, err
	}
	return &provider, nil
}

// GetByEmail retrieves a provider by its login email
func (r *providerRepository) GetByEmail(email string) (*models.Provider, error) {
	var provider models.Provider
	if err := r.db.Where("email = ?", email).First(&provider).Error; err != nil {
		return nil, err
	}
	return &provider, nil
}

// GetBySlug retrieves a provider by its routing slug
func (r *providerRepository) GetBySlug(slug string) (*models.Provider, error) {
	var provider models.Provider
	if err := r.db.Where("slug = ?", strings.ToLower(slug)).First(&provider).Error; err != nil {
		return nil, err
	}
	return &provider, nil
}

// Update updates an existing provider in the database
func (r *providerRepository) Update(provider *models.Provider) error {
	return r.db.Save(provider).Error
}

// SlugExists checks whether a routing slug is already taken
func (r *providerRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Provider{}).Where("slug = ?", strings.ToLower(slug)).Count(&count).Error
	return count > 0, err
}

// EmailExists checks whether a login email is already registered
func (r *providerRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Provider{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
