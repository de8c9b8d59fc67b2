package services

import (
	"context"
	"strings"

	"github.com/jackgraver/simple-track/models"
	"gorm.io/gorm"
)

type FoodService struct {
	db *gorm.DB
}

func NewFoodService(db *gorm.DB) *FoodService {
	return &FoodService{db: db}
}

// FoodInput is the writable part of a Food. Nutrients are per unit.
type FoodInput struct {
	Name     string  `json:"name" binding:"required"`
	Unit     string  `json:"unit" binding:"required"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fiber    float64 `json:"fiber"`
}

func (in FoodInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Unit) == "" {
		return invalid("food name and unit are required")
	}
	if in.Calories < 0 || in.Protein < 0 || in.Fiber < 0 {
		return invalid("nutrient values must not be negative")
	}
	return nil
}

func (s *FoodService) List(ctx context.Context) ([]models.Food, error) {
	var foods []models.Food
	err := s.db.WithContext(ctx).Order("name").Find(&foods).Error
	return foods, err
}

func (s *FoodService) Get(ctx context.Context, id uint) (*models.Food, error) {
	var food models.Food
	if err := s.db.WithContext(ctx).First(&food, id).Error; err != nil {
		return nil, notFound("food", id, err)
	}
	return &food, nil
}

// Search matches foods whose name contains q, ignoring case.
func (s *FoodService) Search(ctx context.Context, q string) ([]models.Food, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return s.List(ctx)
	}
	var foods []models.Food
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+q+"%").
		Order("name").
		Find(&foods).Error
	return foods, err
}

func (s *FoodService) Create(ctx context.Context, in FoodInput) (*models.Food, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.Food{}).
		Where("name = ?", strings.TrimSpace(in.Name)).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrConflict
	}

	food := &models.Food{
		Name:     strings.TrimSpace(in.Name),
		Unit:     strings.TrimSpace(in.Unit),
		Calories: in.Calories,
		Protein:  in.Protein,
		Fiber:    in.Fiber,
	}
	if err := s.db.WithContext(ctx).Create(food).Error; err != nil {
		return nil, err
	}
	return food, nil
}

func (s *FoodService) Update(ctx context.Context, id uint, in FoodInput) (*models.Food, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	food, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var clash int64
	if err := s.db.WithContext(ctx).Model(&models.Food{}).
		Where("name = ? AND id <> ?", strings.TrimSpace(in.Name), id).
		Count(&clash).Error; err != nil {
		return nil, err
	}
	if clash > 0 {
		return nil, ErrConflict
	}
	food.Name = strings.TrimSpace(in.Name)
	food.Unit = strings.TrimSpace(in.Unit)
	food.Calories = in.Calories
	food.Protein = in.Protein
	food.Fiber = in.Fiber
	if err := s.db.WithContext(ctx).Save(food).Error; err != nil {
		return nil, err
	}
	return food, nil
}

// Delete removes the food. Meal items that reference it are kept and simply
// stop contributing to totals.
func (s *FoodService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Food{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("food", id, gorm.ErrRecordNotFound)
	}
	return nil
}
