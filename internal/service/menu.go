package service

import (
	"strings"

	"tea-estate/internal/domain"
)

// FilterAll selects every category.
const FilterAll = "all"

// MenuFilter narrows the menu by category name and free text.
type MenuFilter struct {
	Category string
	Search   string
}

// Apply returns the categories that survive the filter. The category match
// is case-insensitive on the name; the search term matches item names and
// descriptions case-insensitively and drops categories left empty.
func (f MenuFilter) Apply(menu []domain.Category) []domain.Category {
	category := strings.ToLower(strings.TrimSpace(f.Category))
	term := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]domain.Category, 0, len(menu))
	for _, c := range menu {
		if category != "" && category != FilterAll && strings.ToLower(c.Name) != category {
			continue
		}
		if term == "" {
			out = append(out, c)
			continue
		}
		var items []domain.MenuItem
		for _, item := range c.Items {
			if strings.Contains(strings.ToLower(item.Name), term) ||
				strings.Contains(strings.ToLower(item.Description), term) {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			c.Items = items
			out = append(out, c)
		}
	}
	return out
}

func CountItems(menu []domain.Category) int {
	n := 0
	for _, c := range menu {
		n += len(c.Items)
	}
	return n
}

// Bestseller is a featured item together with the category it came from.
type Bestseller struct {
	domain.MenuItem
	Category string
}

// Bestsellers features the first of every three items in each category.
func Bestsellers(menu []domain.Category) []Bestseller {
	var out []Bestseller
	for _, c := range menu {
		for i, item := range c.Items {
			if i%3 == 0 {
				out = append(out, Bestseller{MenuItem: item, Category: c.Name})
			}
		}
	}
	return out
}

// DemoMenu is shown when the menu cannot be fetched.
func DemoMenu() []domain.Category {
	item := func(id int, name, description string, price float64) domain.MenuItem {
		return domain.MenuItem{ID: id, Name: name, Description: description, Price: price, IsAvailable: true}
	}
	return []domain.Category{
		{ID: 1, Name: "Tea", DisplayOrder: 1, Items: []domain.MenuItem{
			item(1, "Masala Chai", "Traditional spiced tea with aromatic herbs", 25),
			item(2, "Green Tea", "Fresh and healthy antioxidant-rich tea", 30),
			item(3, "Earl Grey", "Classic black tea with bergamot essence", 35),
		}},
		{ID: 2, Name: "Coffee", DisplayOrder: 2, Items: []domain.MenuItem{
			item(4, "Filter Coffee", "South Indian style filter coffee", 40),
			item(5, "Cappuccino", "Italian coffee with steamed milk foam", 65),
		}},
		{ID: 3, Name: "Snacks", DisplayOrder: 3, Items: []domain.MenuItem{
			item(6, "Samosa", "Crispy pastry with spiced potato filling", 20),
			item(7, "Pakora", "Deep-fried fritters with mint chutney", 35),
		}},
		{ID: 4, Name: "Sweets", DisplayOrder: 4, Items: []domain.MenuItem{
			item(8, "Gulab Jamun", "Sweet milk dumplings in sugar syrup", 45),
			item(9, "Kulfi", "Traditional Indian ice cream", 50),
		}},
	}
}
