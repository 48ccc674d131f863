// Package features extracts structured attributes (storage, RAM, price
// bounds, brand, color, …) from normalized query text using a fixed regex
// library and entity lexicons. Every match is retained; nothing is dropped.
package features

import "strings"

// Extractor extracts attribute values from query text.
type Extractor struct{}

// NewExtractor creates a feature extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns attribute name -> all extracted values, in match order.
// Input is expected lowercase (the normalizer runs first); mixed case is
// tolerated.
func (e *Extractor) Extract(text string) map[string][]string {
	text = strings.ToLower(text)
	out := make(map[string][]string)

	add := func(attr, value string) {
		for _, v := range out[attr] {
			if v == value {
				return
			}
		}
		out[attr] = append(out[attr], value)
	}

	for _, m := range priceRangePattern.FindAllStringSubmatch(text, -1) {
		add("price_min", m[1])
		add("price_max", m[2])
	}

	for _, p := range attrPatterns {
		for _, m := range p.pattern.FindAllStringSubmatch(text, -1) {
			v := m[1]
			if p.normalize != nil {
				v = p.normalize(v)
			}
			add(p.attr, v)
		}
	}

	for _, brand := range brandLexicon {
		if containsWord(text, brand) {
			add("brand", brand)
		}
	}
	for _, color := range colorLexicon {
		if containsWord(text, color) {
			add("color", color)
		}
	}

	// a RAM capture is also a storage-pattern match; drop the duplicate
	if rams, ok := out["ram"]; ok {
		out["storage"] = removeValues(out["storage"], rams)
		if len(out["storage"]) == 0 {
			delete(out, "storage")
		}
	}

	return out
}

// containsWord reports whether phrase occurs in text on word boundaries.
func containsWord(text, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		beforeOK := start == 0 || !isWordByte(text[start-1])
		afterOK := end == len(text) || !isWordByte(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

func removeValues(vals, remove []string) []string {
	out := vals[:0]
	for _, v := range vals {
		drop := false
		for _, r := range remove {
			if v == r {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, v)
		}
	}
	return out
}
