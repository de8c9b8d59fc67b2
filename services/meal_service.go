package services

import (
	"context"
	"strings"

	"github.com/jackgraver/simple-track/models"
	"gorm.io/gorm"
)

type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

type MealItemRequest struct {
	FoodID uint    `json:"food_id" binding:"required"`
	Amount float64 `json:"amount"`
}

func (s *MealService) preloaded(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Items.Food")
}

func (s *MealService) List(ctx context.Context) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.preloaded(ctx).Order("name").Find(&meals).Error
	return meals, err
}

func (s *MealService) Get(ctx context.Context, id uint) (*models.Meal, error) {
	var meal models.Meal
	if err := s.preloaded(ctx).First(&meal, id).Error; err != nil {
		return nil, notFound("meal", id, err)
	}
	return &meal, nil
}

// checkItems validates amounts and that every referenced food exists.
func checkItems(tx *gorm.DB, items []MealItemRequest) error {
	for _, it := range items {
		if it.Amount < 0 {
			return invalid("amount for food %d must not be negative", it.FoodID)
		}
		var n int64
		if err := tx.Model(&models.Food{}).Where("id = ?", it.FoodID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return invalid("food %d does not exist", it.FoodID)
		}
	}
	return nil
}

// Create stores a new meal with its items in one transaction.
func (s *MealService) Create(ctx context.Context, name string, items []MealItemRequest) (*models.Meal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("meal name is required")
	}

	meal := &models.Meal{Name: name}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkItems(tx, items); err != nil {
			return err
		}
		if err := tx.Create(meal).Error; err != nil {
			return err
		}
		for _, it := range items {
			mi := &models.MealItem{MealID: meal.ID, FoodID: it.FoodID, Amount: it.Amount}
			if err := tx.Create(mi).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, meal.ID)
}

func (s *MealService) Rename(ctx context.Context, id uint, name string) (*models.Meal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("meal name is required")
	}
	res := s.db.WithContext(ctx).Model(&models.Meal{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, notFound("meal", id, gorm.ErrRecordNotFound)
	}
	return s.Get(ctx, id)
}

func (s *MealService) AddItem(ctx context.Context, mealID uint, req MealItemRequest) (*models.Meal, error) {
	if _, err := s.Get(ctx, mealID); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkItems(tx, []MealItemRequest{req}); err != nil {
			return err
		}
		return tx.Create(&models.MealItem{MealID: mealID, FoodID: req.FoodID, Amount: req.Amount}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, mealID)
}

func (s *MealService) UpdateItemAmount(ctx context.Context, mealID, itemID uint, amount float64) (*models.Meal, error) {
	if amount < 0 {
		return nil, invalid("amount must not be negative")
	}
	res := s.db.WithContext(ctx).Model(&models.MealItem{}).
		Where("id = ? AND meal_id = ?", itemID, mealID).
		Update("amount", amount)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, notFound("meal item", itemID, gorm.ErrRecordNotFound)
	}
	return s.Get(ctx, mealID)
}

func (s *MealService) RemoveItem(ctx context.Context, mealID, itemID uint) (*models.Meal, error) {
	res := s.db.WithContext(ctx).
		Where("id = ? AND meal_id = ?", itemID, mealID).
		Delete(&models.MealItem{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, notFound("meal item", itemID, gorm.ErrRecordNotFound)
	}
	return s.Get(ctx, mealID)
}

// Delete removes the meal, its items, and every day entry that used it.
func (s *MealService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Meal{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("meal", id, gorm.ErrRecordNotFound)
		}
		if err := tx.Where("meal_id = ?", id).Delete(&models.MealItem{}).Error; err != nil {
			return err
		}
		return tx.Where("meal_id = ?", id).Delete(&models.DayMeal{}).Error
	})
}
