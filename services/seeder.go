package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jackgraver/simple-track/logger"
	"github.com/jackgraver/simple-track/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// SeedData is the layout of the seed YAML file.
type SeedData struct {
	Foods []struct {
		Name     string  `yaml:"name"`
		Unit     string  `yaml:"unit"`
		Calories float64 `yaml:"calories"`
		Protein  float64 `yaml:"protein"`
		Fiber    float64 `yaml:"fiber"`
	} `yaml:"foods"`
	Meals []struct {
		Name  string `yaml:"name"`
		Items []struct {
			Food   string  `yaml:"food"`
			Amount float64 `yaml:"amount"`
		} `yaml:"items"`
	} `yaml:"meals"`
}

type SeedResult struct {
	FoodsCreated int
	MealsCreated int
}

type Seeder struct {
	db    *gorm.DB
	foods *FoodService
	meals *MealService
}

func NewSeeder(db *gorm.DB, foods *FoodService, meals *MealService) *Seeder {
	return &Seeder{db: db, foods: foods, meals: meals}
}

func (s *Seeder) SeedFile(ctx context.Context, path string) (*SeedResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return s.Seed(ctx, f)
}

// Seed loads foods and meals from YAML. Entries whose name already exists are
// left untouched, so seeding twice is harmless.
func (s *Seeder) Seed(ctx context.Context, r io.Reader) (*SeedResult, error) {
	var data SeedData
	if err := yaml.NewDecoder(r).Decode(&data); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	res := &SeedResult{}
	ids := map[string]uint{}
	for _, f := range data.Foods {
		food, err := s.foods.Create(ctx, FoodInput{
			Name: f.Name, Unit: f.Unit, Calories: f.Calories, Protein: f.Protein, Fiber: f.Fiber,
		})
		switch {
		case errors.Is(err, ErrConflict):
			var existing models.Food
			if err := s.db.WithContext(ctx).Where("name = ?", f.Name).First(&existing).Error; err != nil {
				return res, err
			}
			ids[f.Name] = existing.ID
		case err != nil:
			return res, fmt.Errorf("seed food %q: %w", f.Name, err)
		default:
			ids[f.Name] = food.ID
			res.FoodsCreated++
		}
	}

	for _, m := range data.Meals {
		var n int64
		if err := s.db.WithContext(ctx).Model(&models.Meal{}).Where("name = ?", m.Name).Count(&n).Error; err != nil {
			return res, err
		}
		if n > 0 {
			continue
		}

		items := make([]MealItemRequest, 0, len(m.Items))
		for _, it := range m.Items {
			id, ok := ids[it.Food]
			if !ok {
				return res, invalid("meal %q uses unknown food %q", m.Name, it.Food)
			}
			items = append(items, MealItemRequest{FoodID: id, Amount: it.Amount})
		}
		if _, err := s.meals.Create(ctx, m.Name, items); err != nil {
			return res, fmt.Errorf("seed meal %q: %w", m.Name, err)
		}
		res.MealsCreated++
	}

	logger.Info("seed complete",
		zap.Int("foods_created", res.FoodsCreated), zap.Int("meals_created", res.MealsCreated))
	return res, nil
}
