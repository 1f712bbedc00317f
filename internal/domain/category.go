package domain

// Category is the closed set of ticket topics the classifier predicts.
type Category string

const (
	CategoryBilling  Category = "billing"
	CategoryTech     Category = "tech"
	CategoryShipping Category = "shipping"
	CategoryOther    Category = "other"
)

// Categories lists all valid categories in declaration order.
func Categories() []Category {
	return []Category{CategoryBilling, CategoryTech, CategoryShipping, CategoryOther}
}

// ValidCategory reports whether c is a member of the closed set.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryBilling, CategoryTech, CategoryShipping, CategoryOther:
		return true
	}
	return false
}
