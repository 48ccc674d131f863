package expand

// thesaurus is the general-purpose synonym table for shopping vocabulary.
var thesaurus = map[string][]string{
	"phone":      {"smartphone", "mobile", "handset"},
	"smartphone": {"phone", "mobile"},
	"mobile":     {"phone", "smartphone"},
	"laptop":     {"notebook", "ultrabook"},
	"notebook":   {"laptop"},
	"television": {"tv", "smart tv"},
	"earphones":  {"earbuds", "headphones", "earpods"},
	"earbuds":    {"earphones", "headphones"},
	"headphones": {"earphones", "headset"},
	"speaker":    {"soundbar", "bluetooth speaker"},
	"charger":    {"adapter", "power brick"},
	"powerbank":  {"power bank", "battery pack"},
	"shoes":      {"sneakers", "footwear"},
	"sneakers":   {"shoes", "trainers"},
	"slippers":   {"flip flops", "sandals"},
	"tshirt":     {"t-shirt", "tee"},
	"jeans":      {"denim", "trousers"},
	"jacket":     {"coat", "blazer"},
	"watch":      {"wristwatch", "smartwatch"},
	"backpack":   {"bag", "rucksack"},
	"sofa":       {"couch", "settee"},
	"mattress":   {"bed mattress"},
	"wardrobe":   {"almirah", "closet"},
	"table":      {"desk"},
	"cheap":      {"budget", "affordable", "low cost"},
	"premium":    {"high end", "flagship"},
	"big":        {"large"},
	"small":      {"compact", "mini"},
	"wireless":   {"bluetooth", "cordless"},
	"cover":      {"case", "back cover"},
}

// slangTable maps Indian-market shopping slang and hinglish vocabulary to
// catalog terms. Checked before the thesaurus.
var slangTable = map[string][]string{
	"sasta":    {"cheap", "budget"},
	"sasti":    {"cheap", "budget"},
	"mehenga":  {"premium", "expensive"},
	"accha":    {"good", "best"},
	"badhiya":  {"good", "premium"},
	"chashma":  {"sunglasses", "spectacles"},
	"chappal":  {"slippers", "sandals"},
	"kapde":    {"clothing", "clothes"},
	"joota":    {"shoes", "footwear"},
	"joote":    {"shoes", "footwear"},
	"ghadi":    {"watch"},
	"almirah":  {"wardrobe"},
	"gaddi":    {"mattress"},
	"mixie":    {"mixer grinder"},
	"fridge":   {"refrigerator"},
	"lappy":    {"laptop"},
	"earpods":  {"earbuds", "earphones"},
	"mobiles":  {"mobile", "smartphone"},
	"footwear": {"shoes", "slippers"},
}
