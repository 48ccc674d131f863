package features

// brandLexicon backs brand entity recognition. Multi-word brands are matched
// before single words.
var brandLexicon = []string{
	"allen solly", "us polo",
	"apple", "samsung", "xiaomi", "redmi", "realme", "oneplus", "oppo", "vivo",
	"motorola", "nokia", "google", "iphone", "ipad", "macbook", "pixel",
	"lenovo", "dell", "hp", "asus", "acer", "msi", "sony", "lg", "panasonic",
	"boat", "jbl", "bose", "sennheiser", "skullcandy", "noise", "boult",
	"nike", "adidas", "puma", "reebok", "bata", "woodland", "sparx", "campus",
	"titan", "fastrack", "casio", "fossil", "levis", "wrangler",
	"ikea", "nilkamal", "godrej", "duroflex", "sleepwell",
}

var colorLexicon = []string{
	"black", "white", "blue", "red", "green", "silver", "gold", "grey", "gray",
	"pink", "purple", "yellow", "orange", "brown", "beige", "navy", "maroon",
	"midnight", "starlight", "graphite", "titanium",
}
