package domain

// CountryCode is the only country this storefront ships to
const CountryCode = "DZ"

// WilayaCodeMap translates wilaya names to the commerce backend's location
// code format "DZ:DZ-NN" where NN is the official wilaya number (01-58).
var WilayaCodeMap = map[string]string{
	"Adrar":               "DZ:DZ-01",
	"Chlef":               "DZ:DZ-02",
	"Laghouat":            "DZ:DZ-03",
	"Oum El Bouaghi":      "DZ:DZ-04",
	"Batna":               "DZ:DZ-05",
	"Béjaïa":              "DZ:DZ-06",
	"Biskra":              "DZ:DZ-07",
	"Béchar":              "DZ:DZ-08",
	"Blida":               "DZ:DZ-09",
	"Bouira":              "DZ:DZ-10",
	"Tamanrasset":         "DZ:DZ-11",
	"Tébessa":             "DZ:DZ-12",
	"Tlemcen":             "DZ:DZ-13",
	"Tiaret":              "DZ:DZ-14",
	"Tizi Ouzou":          "DZ:DZ-15",
	"Alger":               "DZ:DZ-16",
	"Djelfa":              "DZ:DZ-17",
	"Jijel":               "DZ:DZ-18",
	"Sétif":               "DZ:DZ-19",
	"Saïda":               "DZ:DZ-20",
	"Skikda":              "DZ:DZ-21",
	"Sidi Bel Abbès":      "DZ:DZ-22",
	"Annaba":              "DZ:DZ-23",
	"Guelma":              "DZ:DZ-24",
	"Constantine":         "DZ:DZ-25",
	"Médéa":               "DZ:DZ-26",
	"Mostaganem":          "DZ:DZ-27",
	"M'Sila":              "DZ:DZ-28",
	"Mascara":             "DZ:DZ-29",
	"Ouargla":             "DZ:DZ-30",
	"Oran":                "DZ:DZ-31",
	"El Bayadh":           "DZ:DZ-32",
	"Illizi":              "DZ:DZ-33",
	"Bordj Bou Arreridj":  "DZ:DZ-34",
	"Boumerdès":           "DZ:DZ-35",
	"El Tarf":             "DZ:DZ-36",
	"Tindouf":             "DZ:DZ-37",
	"Tissemsilt":          "DZ:DZ-38",
	"El Oued":             "DZ:DZ-39",
	"Khenchela":           "DZ:DZ-40",
	"Souk Ahras":          "DZ:DZ-41",
	"Tipaza":              "DZ:DZ-42",
	"Mila":                "DZ:DZ-43",
	"Aïn Defla":           "DZ:DZ-44",
	"Naâma":               "DZ:DZ-45",
	"Aïn Témouchent":      "DZ:DZ-46",
	"Ghardaïa":            "DZ:DZ-47",
	"Relizane":            "DZ:DZ-48",
	"Timimoun":            "DZ:DZ-49",
	"Bordj Badji Mokhtar": "DZ:DZ-50",
	"Ouled Djellal":       "DZ:DZ-51",
	"Béni Abbès":          "DZ:DZ-52",
	"In Salah":            "DZ:DZ-53",
	"In Guezzam":          "DZ:DZ-54",
	"Touggourt":           "DZ:DZ-55",
	"Djanet":              "DZ:DZ-56",
	"El M'Ghair":          "DZ:DZ-57",
	"El Meniaa":           "DZ:DZ-58",
}

// Wilayas lists all 58 wilayas in official order
var Wilayas = []string{
	"Adrar", "Chlef", "Laghouat", "Oum El Bouaghi", "Batna", "Béjaïa",
	"Biskra", "Béchar", "Blida", "Bouira", "Tamanrasset", "Tébessa",
	"Tlemcen", "Tiaret", "Tizi Ouzou", "Alger", "Djelfa", "Jijel",
	"Sétif", "Saïda", "Skikda", "Sidi Bel Abbès", "Annaba", "Guelma",
	"Constantine", "Médéa", "Mostaganem", "M'Sila", "Mascara", "Ouargla",
	"Oran", "El Bayadh", "Illizi", "Bordj Bou Arreridj", "Boumerdès",
	"El Tarf", "Tindouf", "Tissemsilt", "El Oued", "Khenchela",
	"Souk Ahras", "Tipaza", "Mila", "Aïn Defla", "Naâma",
	"Aïn Témouchent", "Ghardaïa", "Relizane", "Timimoun",
	"Bordj Badji Mokhtar", "Ouled Djellal", "Béni Abbès", "In Salah",
	"In Guezzam", "Touggourt", "Djanet", "El M'Ghair", "El Meniaa",
}

// IsValidWilaya reports whether name is a known wilaya
func IsValidWilaya(name string) bool {
	_, ok := WilayaCodeMap[name]
	return ok
}
