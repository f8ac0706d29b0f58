package services

import "backend/models"

// FoodService answers lookups against the static food taxonomy.
type FoodService struct{}

func NewFoodService() *FoodService {
	return &FoodService{}
}

func (s *FoodService) Categories() []models.Category {
	return models.FoodData
}

func (s *FoodService) FindCategory(categoryID string) (*models.Category, bool) {
	for i := range models.FoodData {
		if models.FoodData[i].ID == categoryID {
			return &models.FoodData[i], true
		}
	}
	return nil, false
}

func (s *FoodService) FindGroup(categoryID, groupID string) (*models.Group, bool) {
	cat, ok := s.FindCategory(categoryID)
	if !ok {
		return nil, false
	}
	for i := range cat.Groups {
		if cat.Groups[i].ID == groupID {
			return &cat.Groups[i], true
		}
	}
	return nil, false
}

// AllowMultiple reports whether a category accepts portions from more
// than one group in a single meal. Unknown categories behave as
// single-select.
func (s *FoodService) AllowMultiple(categoryID string) bool {
	cat, ok := s.FindCategory(categoryID)
	return ok && cat.AllowMultiple
}
