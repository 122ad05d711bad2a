package site

import (
	"fmt"
	"strconv"

	"lounge-site/internal/contentapi"
)

// MenuGroup is one category tab with its dishes.
type MenuGroup struct {
	Key    string
	Title  string
	Dishes []DishView
}

// DishView is a dish ready for rendering.
type DishView struct {
	ID          int64
	Title       string
	Description string
	Price       string
	Image       string
}

// BuildMenuGroups selects the menu's categories (in category-list order) and
// fills each with the dishes it lists (in dish-list order).
func BuildMenuGroups(menu contentapi.Menu, categories []contentapi.Category, dishes []contentapi.Dish, locale string, media contentapi.MediaResolver) []MenuGroup {
	inMenu := make(map[int64]bool, len(menu.Categories))
	for _, id := range menu.Categories {
		inMenu[id] = true
	}

	groups := make([]MenuGroup, 0, len(menu.Categories))
	for _, cat := range categories {
		if !inMenu[cat.ID] {
			continue
		}
		listed := make(map[int64]bool, len(cat.Dishes))
		for _, id := range cat.Dishes {
			listed[id] = true
		}

		g := MenuGroup{
			Key:   "cat-" + strconv.FormatInt(cat.ID, 10),
			Title: cat.Name(locale),
		}
		for _, d := range dishes {
			if !listed[d.ID] {
				continue
			}
			g.Dishes = append(g.Dishes, DishView{
				ID:          d.ID,
				Title:       d.Name(locale),
				Description: d.DescriptionRU,
				Price:       d.Price,
				Image:       media.DishImage(d),
			})
		}
		groups = append(groups, g)
	}
	return groups
}

// ClampTab keeps a requested tab index inside [0, n-1]; with no tabs it is 0.
func ClampTab(index, n int) int {
	if n <= 0 || index < 0 {
		return 0
	}
	if index >= n {
		return n - 1
	}
	return index
}

// ParseTab reads the ?tab= value; anything unparsable selects the first tab.
func ParseTab(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// TabHref links a tab to its panel while keeping the selection in the URL.
func TabHref(index int, key string) string {
	return fmt.Sprintf("?tab=%d#group-%s", index, key)
}
