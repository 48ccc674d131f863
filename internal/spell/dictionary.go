package spell

// Term weights: brand and model names matter more than generic product words,
// so a typo resolves to "iphone" before it resolves to "phone".
const (
	weightBrand   = 3.0
	weightModel   = 2.0
	weightGeneric = 1.0
)

var brandTerms = []string{
	"apple", "samsung", "xiaomi", "redmi", "realme", "oneplus", "oppo", "vivo",
	"motorola", "nokia", "google", "pixel", "iphone", "ipad", "macbook",
	"lenovo", "dell", "asus", "acer", "msi", "sony", "lg", "panasonic",
	"boat", "jbl", "bose", "sennheiser", "skullcandy", "noise", "boult",
	"nike", "adidas", "puma", "reebok", "bata", "woodland", "sparx", "campus",
	"titan", "fastrack", "casio", "fossil", "levis", "wrangler", "allen solly",
	"ikea", "nilkamal", "godrej", "duroflex", "sleepwell",
}

var modelTerms = []string{
	"galaxy", "note", "ultra", "pro", "max", "mini", "plus", "lite", "prime",
	"airpods", "buds", "watch", "band", "airdopes", "rockerz",
	"thinkpad", "ideapad", "inspiron", "vostro", "pavilion", "envy", "omen",
	"bravia", "airmax", "jordan", "superstar",
}

var genericTerms = []string{
	"phone", "smartphone", "mobile", "laptop", "tablet", "computer", "desktop",
	"headphone", "headphones", "earphone", "earphones", "earbuds", "speaker",
	"charger", "cable", "adapter", "powerbank", "cover", "case", "screen",
	"guard", "television", "monitor", "keyboard", "mouse", "camera", "lens",
	"shoes", "sneakers", "sandals", "slippers", "boots", "running", "casual",
	"shirt", "tshirt", "jeans", "trousers", "jacket", "hoodie", "kurta",
	"saree", "dress", "watch", "wallet", "belt", "backpack", "sunglasses",
	"sofa", "table", "chair", "mattress", "wardrobe", "bookshelf", "bed",
	"cricket", "football", "badminton", "yoga", "dumbbell", "treadmill",
	"under", "below", "above", "between", "cheap", "best", "new", "used",
	"refurbished", "black", "white", "blue", "red", "green", "silver", "gold",
	"with", "without", "for", "and",
}

// dictEntry is a dictionary term with its correction weight.
type dictEntry struct {
	term   string
	weight float64
}

// buildDictionary flattens the term lists into a weighted lookup.
func buildDictionary() ([]dictEntry, map[string]struct{}) {
	entries := make([]dictEntry, 0, len(brandTerms)+len(modelTerms)+len(genericTerms))
	set := make(map[string]struct{})
	add := func(terms []string, w float64) {
		for _, t := range terms {
			if _, ok := set[t]; ok {
				continue
			}
			entries = append(entries, dictEntry{term: t, weight: w})
			set[t] = struct{}{}
		}
	}
	add(brandTerms, weightBrand)
	add(modelTerms, weightModel)
	add(genericTerms, weightGeneric)
	return entries, set
}
