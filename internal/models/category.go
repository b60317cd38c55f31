package models

// Category groups expenses under a display name. Categories with a nil UserID
// are the shared defaults seeded at startup; all others belong to one user.
type Category struct {
	Base
	UserID      *string `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Name        string  `gorm:"not null" json:"name"`
	Description *string `json:"description,omitempty"`
}

// IsDefault reports whether the category is one of the shared defaults.
func (c *Category) IsDefault() bool {
	return c.UserID == nil
}

// Fixed IDs of the default categories. They are stable across deployments so
// that imported data and fixtures can reference them directly.
const (
	CategoryHousingID        = "01900000-0000-7000-8000-000000000001"
	CategoryTransportationID = "01900000-0000-7000-8000-000000000002"
	CategoryFoodID           = "01900000-0000-7000-8000-000000000003"
	CategoryUtilitiesID      = "01900000-0000-7000-8000-000000000004"
	CategoryEntertainmentID  = "01900000-0000-7000-8000-000000000005"
	CategoryHealthcareID     = "01900000-0000-7000-8000-000000000006"
	CategoryPersonalID       = "01900000-0000-7000-8000-000000000007"
	CategoryEducationID      = "01900000-0000-7000-8000-000000000008"
)

// DefaultCategories returns fresh copies of the eight default categories.
func DefaultCategories() []Category {
	def := func(id, name, description string) Category {
		return Category{Base: Base{ID: id}, Name: name, Description: &description}
	}
	return []Category{
		def(CategoryHousingID, "Housing", "Rent, mortgage, repairs"),
		def(CategoryTransportationID, "Transportation", "Car payments, gas, public transit"),
		def(CategoryFoodID, "Food", "Groceries, dining out"),
		def(CategoryUtilitiesID, "Utilities", "Electricity, water, internet"),
		def(CategoryEntertainmentID, "Entertainment", "Movies, games, hobbies"),
		def(CategoryHealthcareID, "Healthcare", "Insurance, medications, doctor visits"),
		def(CategoryPersonalID, "Personal", "Clothing, haircuts, gym"),
		def(CategoryEducationID, "Education", "Tuition, books, courses"),
	}
}
