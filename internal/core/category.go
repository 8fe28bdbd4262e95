package core

import "strings"

// Category is a member of the fixed spending taxonomy. Declaration order
// matters: it is the tie-break order for most-frequent-category queries.
type Category string

const (
	CategoryHome           Category = "home"
	CategoryFood           Category = "food"
	CategoryEntertainment  Category = "entertainment"
	CategoryClothing       Category = "clothing"
	CategoryHealth         Category = "health"
	CategoryPersonalCare   Category = "personal_care"
	CategoryTransportation Category = "transportation"
	CategoryEducation      Category = "education"
	CategorySavings        Category = "savings"
	CategoryOther          Category = "other"
	CategoryIncome         Category = "income"
)

// Categories lists every category in declaration order.
var Categories = []Category{
	CategoryHome,
	CategoryFood,
	CategoryEntertainment,
	CategoryClothing,
	CategoryHealth,
	CategoryPersonalCare,
	CategoryTransportation,
	CategoryEducation,
	CategorySavings,
	CategoryOther,
	CategoryIncome,
}

type categoryInfo struct {
	glyph string
	label string
}

var categoryInfos = map[Category]categoryInfo{
	CategoryHome:           {"🏠", "Home"},
	CategoryFood:           {"🍕", "Food & Groceries"},
	CategoryEntertainment:  {"💻", "Entertainment"},
	CategoryClothing:       {"👔", "Clothing & Accessories"},
	CategoryHealth:         {"❤️", "Health & Wellness"},
	CategoryPersonalCare:   {"🛁", "Personal Care"},
	CategoryTransportation: {"🚗", "Transportation"},
	CategoryEducation:      {"🎓", "Education"},
	CategorySavings:        {"💎", "Saving & Investments"},
	CategoryOther:          {"⚙️", "Other"},
	CategoryIncome:         {"💰", "Income"},
}

// Glyph returns the category's display emoji.
func (c Category) Glyph() string { return categoryInfos[c].glyph }

// Label returns the category's display name.
func (c Category) Label() string { return categoryInfos[c].label }

// Rank returns the category's position in declaration order, or
// len(Categories) for an unknown value.
func (c Category) Rank() int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return len(Categories)
}

// ParseCategory maps a stored name to a category, defaulting to
// CategoryOther for unknown names.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := categoryInfos[c]; ok {
		return c
	}
	return CategoryOther
}
