package repository

import (
	"gorm.io/gorm"

	"github.com/appetyte/appetyte/app/models"
)

// mealRepository implements the MealRepository interface
type mealRepository struct {
	db *gorm.DB
}

// NewMealRepository creates a new meal repository instance
func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

// Create creates a new meal in the database
func (r *mealRepository) Create(meal *models.Meal) error {
	return r.db.Create(meal).Error
}

// GetByID retrieves a meal by its ID
func (r *mealRepository) GetByID(id uint) (*models.Meal, error) {
	var meal models.Meal
	if err := r.db.First(&meal, id).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

// GetByProviderAndDate retrieves all of a provider's meals for one date
func (r *mealRepository) GetByProviderAndDate(providerID uint, date string) ([]models.Meal, error) {
	var meals []models.Meal
	err := r.db.Where("provider_id = ? AND date = ?", providerID, date).
		Order("FIELD(meal_type, 'breakfast', 'lunch', 'dinner')").Find(&meals).Error
	return meals, err
}

// GetByProviderDateAndType retrieves the single meal for a provider, date
// and meal type combination
func (r *mealRepository) GetByProviderDateAndType(providerID uint, date, mealType string) (*models.Meal, error) {
	var meal models.Meal
	err := r.db.Where("provider_id = ? AND date = ? AND meal_type = ?", providerID, date, mealType).
		First(&meal).Error
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

// ListByProvider retrieves a paginated meal history for a provider
func (r *mealRepository) ListByProvider(providerID uint, offset, limit int) ([]models.Meal, error) {
	var meals []models.Meal
	err := r.db.Where("provider_id = ?", providerID).
		Order("date DESC").Offset(offset).Limit(limit).Find(&meals).Error
	return meals, err
}

// Update updates an existing meal in the database
func (r *mealRepository) Update(meal *models.Meal) error {
	return r.db.Save(meal).Error
}

// Delete removes a meal by its ID
func (r *mealRepository) Delete(id uint) error {
	return r.db.Delete(&models.Meal{}, id).Error
}
