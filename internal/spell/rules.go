package spell

import "regexp"

// rewriteRule is a fixed query-rewrite pattern applied after dictionary
// correction. Rules canonicalize the shorthand people actually type into
// shopping boxes so later stages see one form.
type rewriteRule struct {
	name    string
	pattern *regexp.Regexp
	replace string
}

var rewriteRules = []rewriteRule{
	// price shorthand
	{"price-k", regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*k\b`), "${1}000"},
	{"price-lakh", regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*(?:lakh|lac)s?\b`), "${1}00000"},
	{"price-rs", regexp.MustCompile(`\b(?:rs\.?|inr|rupees?)\s*(\d+)`), "$1"},
	{"price-under", regexp.MustCompile(`\bwithin\s+(\d+)`), "under $1"},
	{"price-less-than", regexp.MustCompile(`\bless\s+than\s+(\d+)`), "under $1"},
	{"price-below", regexp.MustCompile(`\bbelow\s+(\d+)`), "under $1"},
	{"price-max", regexp.MustCompile(`\bmax(?:imum)?\s+(?:price\s+)?(\d+)`), "under $1"},
	{"price-above", regexp.MustCompile(`\bmore\s+than\s+(\d+)`), "above $1"},
	{"price-budget-of", regexp.MustCompile(`\bbudget\s+(?:of\s+)?(\d+)`), "under $1"},

	// unit shorthand
	{"unit-gb", regexp.MustCompile(`\b(\d+)\s+gb\b`), "${1}gb"},
	{"unit-tb", regexp.MustCompile(`\b(\d+)\s+tb\b`), "${1}tb"},
	{"unit-mah", regexp.MustCompile(`\b(\d+)\s+mah\b`), "${1}mah"},
	{"unit-mp", regexp.MustCompile(`\b(\d+)\s+mp\b`), "${1}mp"},
	{"unit-inch", regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*(?:inches|inch|in)\b`), "${1}inch"},
	{"unit-ram", regexp.MustCompile(`\bram\s+(\d+gb)\b`), "${1} ram"},

	// product shorthand
	{"abbrev-tv", regexp.MustCompile(`\btv\b`), "television"},
	{"abbrev-ac", regexp.MustCompile(`\bac\b`), "air conditioner"},
	{"abbrev-sgl", regexp.MustCompile(`\bspecs\b`), "sunglasses"},
	{"abbrev-mob", regexp.MustCompile(`\bmob\b`), "mobile"},
	{"abbrev-lappy", regexp.MustCompile(`\blapp(?:y|ie)\b`), "laptop"},
	{"abbrev-tws", regexp.MustCompile(`\btws\b`), "earbuds"},
	{"abbrev-anc", regexp.MustCompile(`\banc\b`), "noise cancelling"},
	{"abbrev-bt", regexp.MustCompile(`\bbluetooth\s+earphones?\b`), "earphones bluetooth"},
	{"abbrev-sports-shoes", regexp.MustCompile(`\bsport\s+shoes\b`), "sports shoes"},
	{"abbrev-chappal", regexp.MustCompile(`\bchappals?\b`), "slippers"},
	{"abbrev-tee", regexp.MustCompile(`\btees?\b`), "tshirt"},
	{"abbrev-t-shirt", regexp.MustCompile(`\bt[- ]shirts?\b`), "tshirt"},

	// condition
	{"cond-second-hand", regexp.MustCompile(`\b(?:2nd|second)\s+hand\b`), "used"},
	{"cond-preowned", regexp.MustCompile(`\bpre[- ]?owned\b`), "used"},
	{"cond-refurb", regexp.MustCompile(`\brefurb(?:ished)?\b`), "refurbished"},
	{"cond-brand-new", regexp.MustCompile(`\bbrand\s+new\b`), "new"},

	// noise words that carry no signal
	{"noise-buy", regexp.MustCompile(`\b(?:buy|purchase|shop(?:ping)?\s+for|i\s+want\s+to\s+buy)\b`), ""},
	{"noise-show", regexp.MustCompile(`\b(?:show\s+me|search\s+for|looking\s+for|find\s+me)\b`), ""},
	{"noise-please", regexp.MustCompile(`\b(?:please|pls|plz)\b`), ""},
	{"noise-online", regexp.MustCompile(`\bonline\b`), ""},
	{"noise-price-word", regexp.MustCompile(`\b(?:price|cost|rate)\s+(?:of|for)\b`), ""},

	// qualifier canonicalization
	{"qual-cheapest", regexp.MustCompile(`\bcheapest\b`), "cheap"},
	{"qual-best", regexp.MustCompile(`\b(?:top|best)\s+(?:rated\s+)?`), ""},
	{"qual-latest", regexp.MustCompile(`\b(?:latest|newest)\b`), "new"},
	{"qual-original", regexp.MustCompile(`\b(?:original|genuine)\b`), ""},
	{"qual-girls", regexp.MustCompile(`\b(?:girls?|ladies|womens?)\b`), "women"},
	{"qual-boys", regexp.MustCompile(`\b(?:boys?|gents|mens?)\b`), "men"},
}
