package model

// Category is the fixed set of product categories.
//
// There is exactly ONE category enum in the codebase. Both the catalog
// (validation on create/update) and the price advisor (baseline market
// prices) work off this list — keeping them in one place means they can
// never drift apart.
type Category string

const (
	CategoryElectronics    Category = "Electronics"
	CategoryHomeAppliances Category = "Home Appliances"
	CategoryClothing       Category = "Clothing & Fashion"
	CategoryFurniture      Category = "Furniture & Decor"
	CategoryBooks          Category = "Books & Media"
	CategorySports         Category = "Sports & Fitness"
	CategoryBeauty         Category = "Beauty & Personal Care"
	CategoryGroceries      Category = "Groceries & Food"
	CategoryAutomotive     Category = "Automotive"
	CategoryHealth         Category = "Health & Wellness"
	CategoryToys           Category = "Toys & Games"
	CategoryOffice         Category = "Office & Stationery"
	CategoryJewelry        Category = "Jewelry & Accessories"
	CategoryGarden         Category = "Garden & Outdoor"
	CategoryOther          Category = "Other"
)

// Categories returns all valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryElectronics,
		CategoryHomeAppliances,
		CategoryClothing,
		CategoryFurniture,
		CategoryBooks,
		CategorySports,
		CategoryBeauty,
		CategoryGroceries,
		CategoryAutomotive,
		CategoryHealth,
		CategoryToys,
		CategoryOffice,
		CategoryJewelry,
		CategoryGarden,
		CategoryOther,
	}
}

// ValidCategory reports whether c is a member of the category enum.
func ValidCategory(c Category) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}
