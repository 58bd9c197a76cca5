package categorize

// DefaultFallback is the label for transactions no rule matches.
const DefaultFallback = "Overig"

// Default returns the built-in ruleset. Labels and keywords target Dutch
// bank statements; order matters where keywords overlap (e.g. "geldmaat"
// appears under both Transport and Contant, so Transport wins).
func Default() *Ruleset {
	return New([]Rule{
		{Category: "Boodschappen", Keywords: []string{
			"albert heijn", "ah to go", "jumbo", "lidl", "aldi", "plus supermarkt",
			"plus berntsen", "dirk", "coop", "spar", "ekoplaza", "vomar",
			"deen", "hoogvliet", "emte", "dekamarkt", "picnic",
		}},
		{Category: "Transport", Keywords: []string{
			"shell", "esso", "bp", "bp de hucht", "total", "texaco",
			"parkeren", "parking", "park ", "q park",
			"ns ", "ov-chipkaart", "uber", "bolt", "taxi",
			"geldmaat", "benzine", "diesel", "tanken",
		}},
		{Category: "Utilities", Keywords: []string{
			"ziggo", "vattenfall", "eneco", "nuon", "essent", "kpn",
			"vodafone", "t-mobile", "tele2", "waterbedrijf", "waterleiding",
			"energie", "gas", "elektra", "internet", "telefoon",
		}},
		{Category: "Restaurants/Uit eten", Keywords: []string{
			"mcdonald", "burger king", "kfc", "domino", "pizza",
			"starbucks", "bagels", "restaurant", "cafe", "bar ",
			"amazing oriental", "zwarte cross", "drift beachclub",
			"brasserie de bank", "luigis", "uitjedak horeca",
			"ijssalon torino", "darras coffee", "bagels beans",
			"goc*zwarte cross", "gerstali", "kok experience",
			"brasserie", "eetcafe", "grand cafe", "lunchroom",
			"ijssalon", "bakkerij", "banket",
		}},
		{Category: "Vrije tijd", Keywords: []string{
			"bioscoop", "cinema", "netflix", "spotify", "disney",
			"videoland", "pathé", "kinepolis",
			"bol.com", "amazon", "coolblue", "mediamarkt", "wehkamp",
			"hema", "action", "kruidvat", "etos", "bloemen", "blokker",
			"zeeman", "primark", "c&a", "h&m", "zara", "bijenkorf",
		}},
		{Category: "Verzekeringen", Keywords: []string{
			"verzekering", "insurance", "asr ", "aegon",
			"nationale nederlanden", "nn ", "ditzo",
			"zilveren kruis", "zorgverzekering", "inshared",
			"centraal beheer", "interpolis", "allianz", "reaal",
			"assuradeuren", "gilde",
		}},
		{Category: "Wonen", Keywords: []string{
			"huur", "rent", "hypotheek", "mortgage", "woningborg",
			"vastgoed", "makelaardij", "woonlasten", "servicekosten",
			"energie", "bouwmarkt", "praxis", "karwei", "gamma", "hornbach",
			"ikea", "kwantum", "jysk", "tuincentrum",
		}},
		{Category: "Zorg", Keywords: []string{
			"apotheek", "pharmacy", "huisarts", "tandarts",
			"ziekenhuis", "hospital", "fysiotherap", "medisch",
			"dokter", "specialist", "behandeling", "opticien",
			"pearle", "vgz", "menzis", "cz", "uzr",
		}},
		{Category: "Inkomen", Keywords: []string{
			"salaris", "loon", "salary", "inkomen", "uitkering",
			"belasting teruggave", "toeslagen", "subsidie",
			"belastingdienst", "toeslagenpartner", "svb",
		}},
		{Category: "Sparen", Keywords: []string{
			"spaar", "saving", "belegg", "investment", "deposito",
			"aandelen", "obligatie", "fonds", "degiro", "binck",
		}},
		{Category: "Contant", Keywords: []string{
			"geldautomaat", "atm", "pinautomaat", "opname",
			"withdrawal", "geldmaat", "opnemen", "gea,",
		}},
	}, DefaultFallback)
}
