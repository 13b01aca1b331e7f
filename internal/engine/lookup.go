package engine

import (
	"strings"

	"github.com/Veraticus/budget/internal/model"
)

// ResolveCategory finds a category by id. Transactions may point at deleted
// categories, so a miss is an ordinary result.
func ResolveCategory(cats []model.Category, id string) (model.Category, bool) {
	for _, c := range cats {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

// CategoryName returns the display name for id, or "Unknown".
func CategoryName(cats []model.Category, id string) string {
	if c, ok := ResolveCategory(cats, id); ok {
		return c.Name
	}
	return model.UnknownCategoryName
}

// CategoryColor returns the color for id, or the fallback color.
func CategoryColor(cats []model.Category, id string) string {
	if c, ok := ResolveCategory(cats, id); ok && c.Color != "" {
		return c.Color
	}
	return model.FallbackColor
}

// CategoryByName matches a category name case-insensitively.
func CategoryByName(cats []model.Category, name string) (model.Category, bool) {
	for _, c := range cats {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return model.Category{}, false
}
