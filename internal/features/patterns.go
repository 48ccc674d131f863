package features

import "regexp"

// attrPattern extracts one attribute occurrence. Submatch 1 is the value;
// normalize optionally canonicalizes it.
type attrPattern struct {
	attr      string
	pattern   *regexp.Regexp
	normalize func(string) string
}

var attrPatterns = []attrPattern{
	// storage capacity
	{"storage", regexp.MustCompile(`\b(\d+)\s*gb\b(?:\s+(?:storage|rom|internal))?`), suffix("gb")},
	{"storage", regexp.MustCompile(`\b(\d+)\s*tb\b`), suffix("tb")},
	{"storage", regexp.MustCompile(`\b(\d+)\s*gb\s+rom\b`), suffix("gb")},

	// RAM
	{"ram", regexp.MustCompile(`\b(\d+)\s*gb\s+ram\b`), suffix("gb")},
	{"ram", regexp.MustCompile(`\bram\s+(\d+)\s*gb\b`), suffix("gb")},
	{"ram", regexp.MustCompile(`\b(\d+)gb\s+ram\b`), suffix("gb")},

	// screen size
	{"screen_size", regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*(?:inch(?:es)?)\b`), suffix("inch")},
	{"screen_size", regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*(?:"|'')`), suffix("inch")},
	{"screen_size", regexp.MustCompile(`\b(\d+(?:\.\d+)?)inch\b`), suffix("inch")},

	// battery
	{"battery", regexp.MustCompile(`\b(\d{3,5})\s*mah\b`), suffix("mah")},
	{"battery", regexp.MustCompile(`\b(\d{3,5})mah\b`), suffix("mah")},

	// camera
	{"camera", regexp.MustCompile(`\b(\d{1,3})\s*mp\b`), suffix("mp")},
	{"camera", regexp.MustCompile(`\b(\d{1,3})mp\s+camera\b`), suffix("mp")},

	// price ceiling
	{"price_max", regexp.MustCompile(`\bunder\s+(?:rs\.?\s*|₹\s*)?(\d+)`), nil},
	{"price_max", regexp.MustCompile(`\bbelow\s+(?:rs\.?\s*|₹\s*)?(\d+)`), nil},
	{"price_max", regexp.MustCompile(`\bupto\s+(?:rs\.?\s*|₹\s*)?(\d+)`), nil},
	{"price_max", regexp.MustCompile(`\bup\s+to\s+(?:rs\.?\s*|₹\s*)?(\d+)`), nil},
	{"price_max", regexp.MustCompile(`\bwithin\s+(?:rs\.?\s*|₹\s*)?(\d+)`), nil},
	{"price_max", regexp.MustCompile(`\bmax\s+(?:rs\.?\s*|₹\s*)?(\d+)`), nil},
	{"price_max", regexp.MustCompile(`\b(?:budget|range)\s+(?:of\s+)?(?:rs\.?\s*|₹\s*)?(\d+)`), nil},
	{"price_max", regexp.MustCompile(`\bless\s+than\s+(?:rs\.?\s*|₹\s*)?(\d+)`), nil},

	// price floor
	{"price_min", regexp.MustCompile(`\babove\s+(?:rs\.?\s*|₹\s*)?(\d+)`), nil},
	{"price_min", regexp.MustCompile(`\bover\s+(?:rs\.?\s*|₹\s*)?(\d+)`), nil},
	{"price_min", regexp.MustCompile(`\bmore\s+than\s+(?:rs\.?\s*|₹\s*)?(\d+)`), nil},
	{"price_min", regexp.MustCompile(`\bminimum\s+(?:rs\.?\s*|₹\s*)?(\d+)`), nil},
	{"price_min", regexp.MustCompile(`\bstarting\s+(?:from\s+)?(?:rs\.?\s*|₹\s*)?(\d+)`), nil},

	// condition
	{"condition", regexp.MustCompile(`\b(new|used|refurbished)\b`), nil},

	// connectivity / variant qualifiers
	{"connectivity", regexp.MustCompile(`\b(5g|4g|wifi|bluetooth|wired|wireless)\b`), nil},
	{"size", regexp.MustCompile(`\bsize\s+(\d{1,2})\b`), nil},
	{"size", regexp.MustCompile(`\buk\s+(\d{1,2})\b`), nil},
	{"size", regexp.MustCompile(`\b(x?s|m|l|xl|xxl|xxxl)\s+size\b`), nil},
	{"gender", regexp.MustCompile(`\b(men|women|kids|unisex)\b`), nil},

	// processor
	{"processor", regexp.MustCompile(`\b(snapdragon|mediatek|dimensity|exynos|bionic|kirin)\b`), nil},
	{"processor", regexp.MustCompile(`\bcore\s+(i[3579])\b`), nil},
	{"processor", regexp.MustCompile(`\b(ryzen\s+[3579])\b`), nil},
	{"processor", regexp.MustCompile(`\b(m[1-4])\s+(?:chip|macbook)\b`), nil},

	// display
	{"display", regexp.MustCompile(`\b(amoled|oled|lcd|ips|retina)\b`), nil},
	{"refresh_rate", regexp.MustCompile(`\b(\d{2,3})\s*hz\b`), suffix("hz")},
	{"resolution", regexp.MustCompile(`\b(720p|1080p|1440p|4k|8k|uhd|fhd)\b`), nil},

	// pack / combo sizes
	{"pack_size", regexp.MustCompile(`\bpack\s+of\s+(\d+)\b`), nil},
	{"pack_size", regexp.MustCompile(`\b(\d+)\s*pack\b`), nil},
	{"pack_size", regexp.MustCompile(`\b(?:combo|set)\s+of\s+(\d+)\b`), nil},

	// warranty
	{"warranty", regexp.MustCompile(`\b(\d+)\s*(?:year|yr)s?\s+warranty\b`), suffix("year")},
	{"warranty", regexp.MustCompile(`\b(\d+)\s*months?\s+warranty\b`), suffix("month")},

	// weight
	{"weight", regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*kgs?\b`), suffix("kg")},
	{"weight", regexp.MustCompile(`\b(\d+)\s*(?:gm|gms|grams?)\b`), suffix("g")},

	// capacity (appliances, bottles) and power
	{"capacity", regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*(?:litres?|liters?|ltrs?)\b`), suffix("l")},
	{"capacity", regexp.MustCompile(`\b(\d+)\s*ml\b`), suffix("ml")},
	{"power", regexp.MustCompile(`\b(\d+)\s*watts?\b`), suffix("w")},

	// material
	{"material", regexp.MustCompile(`\b(cotton|leather|silk|denim|wool|polyester|suede|canvas|linen)\b`), nil},
	{"material", regexp.MustCompile(`\b(stainless\s+steel|cast\s+iron|ceramic|wooden|wood)\b`), nil},

	// apparel qualifiers
	{"fit", regexp.MustCompile(`\b(slim|regular|loose|oversized)\s+fit\b`), nil},
	{"occasion", regexp.MustCompile(`\b(casual|formal|party|wedding|running|training|gym)\b`), nil},
}

// price range: "between X and Y" fills both bounds
var priceRangePattern = regexp.MustCompile(`\bbetween\s+(?:rs\.?\s*|₹\s*)?(\d+)\s+(?:and|to|-)\s+(?:rs\.?\s*|₹\s*)?(\d+)`)

func suffix(s string) func(string) string {
	return func(v string) string { return v + s }
}
