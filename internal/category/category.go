// Package category canonicalizes merchant category labels and detects the
// intended category of a query.
package category

import (
	"strings"
)

// Category is a canonical catalog category.
type Category string

const (
	Smartphones Category = "Smartphones"
	Laptops     Category = "Laptops"
	Electronics Category = "Electronics"
	Footwear    Category = "Footwear"
	Clothing    Category = "Clothing"
	Accessories Category = "Accessories"
	Sports      Category = "Sports"
	Furniture   Category = "Furniture"
	Unknown     Category = "Unknown"
)

// canonical lists every known category for exact matching.
var canonical = []Category{
	Smartphones, Laptops, Electronics, Footwear,
	Clothing, Accessories, Sports, Furniture,
}

// categoryKeywords maps product-type words to their canonical category.
// Merchant feeds label the same goods dozens of ways ("Mobiles & Tablets",
// "mobile phone", "cell phones"); the reverse lookup absorbs that spread.
var categoryKeywords = map[string]Category{
	"smartphone": Smartphones,
	"mobile":     Smartphones,
	"mobiles":    Smartphones,
	"phone":      Smartphones,
	"phones":     Smartphones,
	"iphone":     Smartphones,
	"cellphone":  Smartphones,
	"cell":       Smartphones,

	"laptop":     Laptops,
	"laptops":    Laptops,
	"notebook":   Laptops,
	"macbook":    Laptops,
	"ultrabook":  Laptops,
	"chromebook": Laptops,

	"electronics": Electronics,
	"tv":          Electronics,
	"television":  Electronics,
	"earphone":    Electronics,
	"earphones":   Electronics,
	"headphone":   Electronics,
	"headphones":  Electronics,
	"earbuds":     Electronics,
	"speaker":     Electronics,
	"speakers":    Electronics,
	"camera":      Electronics,
	"tablet":      Electronics,
	"smartwatch":  Electronics,
	"powerbank":   Electronics,
	"charger":     Electronics,
	"refrigerator": Electronics,
	"fridge":       Electronics,
	"washing":      Electronics,
	"microwave":    Electronics,

	"footwear": Footwear,
	"shoe":     Footwear,
	"shoes":    Footwear,
	"sneaker":  Footwear,
	"sneakers": Footwear,
	"sandal":   Footwear,
	"sandals":  Footwear,
	"slipper":  Footwear,
	"slippers": Footwear,
	"chappal":  Footwear,
	"boot":     Footwear,
	"boots":    Footwear,
	"heels":    Footwear,

	"clothing": Clothing,
	"clothes":  Clothing,
	"apparel":  Clothing,
	"shirt":    Clothing,
	"shirts":   Clothing,
	"tshirt":   Clothing,
	"tshirts":  Clothing,
	"jeans":    Clothing,
	"kurta":    Clothing,
	"kurti":    Clothing,
	"saree":    Clothing,
	"dress":    Clothing,
	"dresses":  Clothing,
	"trousers": Clothing,
	"jacket":   Clothing,
	"hoodie":   Clothing,
	"lehenga":  Clothing,

	"accessories": Accessories,
	"accessory":   Accessories,
	"wallet":      Accessories,
	"wallets":     Accessories,
	"belt":        Accessories,
	"belts":       Accessories,
	"watch":       Accessories,
	"watches":     Accessories,
	"sunglasses":  Accessories,
	"handbag":     Accessories,
	"handbags":    Accessories,
	"backpack":    Accessories,
	"jewellery":   Accessories,
	"jewelry":     Accessories,

	"sports":    Sports,
	"sport":     Sports,
	"cricket":   Sports,
	"football":  Sports,
	"badminton": Sports,
	"gym":       Sports,
	"fitness":   Sports,
	"yoga":      Sports,
	"cycling":   Sports,
	"dumbbell":  Sports,
	"dumbbells": Sports,

	"furniture": Furniture,
	"sofa":      Furniture,
	"sofas":     Furniture,
	"bed":       Furniture,
	"beds":      Furniture,
	"mattress":  Furniture,
	"table":     Furniture,
	"tables":    Furniture,
	"chair":     Furniture,
	"chairs":    Furniture,
	"wardrobe":  Furniture,
	"bookshelf": Furniture,
}

// Normalize maps a raw merchant label onto a canonical category. Unknown
// labels pass through title-cased so downstream comparisons still work.
// Normalize is idempotent: Normalize(string(Normalize(x))) == Normalize(x).
func Normalize(raw string) Category {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Unknown
	}
	lower := strings.ToLower(trimmed)

	for _, c := range canonical {
		if lower == strings.ToLower(string(c)) {
			return c
		}
	}

	for _, word := range strings.FieldsFunc(lower, func(r rune) bool {
		return r == ' ' || r == ',' || r == '&' || r == '/' || r == '-' || r == '_'
	}) {
		if c, ok := categoryKeywords[word]; ok {
			return c
		}
	}

	for _, c := range canonical {
		if strings.Contains(lower, strings.ToLower(string(c))) {
			return c
		}
	}

	return Category(titleCase(lower))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
