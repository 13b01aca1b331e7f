package ledger

import (
	"context"
	"fmt"
	"slices"

	"github.com/Veraticus/budget/internal/common"
	"github.com/Veraticus/budget/internal/model"
)

// AddCategory appends a category. When in.ID is empty the id is derived
// from the name; a derived id that is already taken gets a numeric suffix
// ("food-2"). An explicit id that is already taken is rejected with
// common.ErrDuplicateEntry.
func (s *Store) AddCategory(ctx context.Context, in model.CategoryInput) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := in.ID
	if id == "" {
		id = s.uniqueCategoryID(model.SlugFromName(in.Name))
	} else if s.categoryIndex(id) >= 0 {
		return model.Category{}, fmt.Errorf("%w: category %q", common.ErrDuplicateEntry, id)
	}

	cat := model.Category{
		ID:          id,
		Name:        in.Name,
		Color:       in.Color,
		BudgetLimit: model.NormalizeAmount(in.BudgetLimit),
	}
	s.categories = append(s.categories, cat)

	if err := s.flushCategories(ctx); err != nil {
		return cat, err
	}
	return cat, nil
}

func (s *Store) uniqueCategoryID(base string) string {
	if s.categoryIndex(base) < 0 {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if s.categoryIndex(candidate) < 0 {
			return candidate
		}
	}
}

// UpdateCategory merges patch onto the category with the given id.
// Unknown ids are ignored.
func (s *Store) UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndex(id)
	if i < 0 {
		return nil
	}
	s.categories[i] = patch.Apply(s.categories[i])

	return s.flushCategories(ctx)
}

// DeleteCategory removes the category with the given id. Transactions that
// reference it are left untouched. Unknown ids are ignored.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndex(id)
	if i < 0 {
		return nil
	}
	s.categories = slices.Delete(s.categories, i, i+1)

	return s.flushCategories(ctx)
}
