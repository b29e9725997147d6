// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package region maps institution country codes to coarse geographic regions.
package region

import "strings"

// Region names written into the dataset.
const (
	NorthAmerica = "North America"
	SouthAmerica = "South America"
	Europe       = "Europe"
	Asia         = "Asia"
	Africa       = "Africa"
	Oceania      = "Oceania"
	Other        = "Other"
)

// All lists every region Classify can return.
var All = []string{NorthAmerica, SouthAmerica, Europe, Asia, Africa, Oceania, Other}

// countryRegion maps upper-case ISO 3166-1 alpha-2 codes to regions.
// Central America and the Caribbean count as North America; Turkey, Russia
// and the southern Caucasus (except Azerbaijan) count as Europe.
var countryRegion = map[string]string{
	// North America
	"US": NorthAmerica, "CA": NorthAmerica, "MX": NorthAmerica, "GL": NorthAmerica,
	"BZ": NorthAmerica, "CR": NorthAmerica, "GT": NorthAmerica, "HN": NorthAmerica,
	"NI": NorthAmerica, "PA": NorthAmerica, "SV": NorthAmerica, "CU": NorthAmerica,
	"DO": NorthAmerica, "HT": NorthAmerica, "JM": NorthAmerica, "TT": NorthAmerica,
	"BB": NorthAmerica, "BS": NorthAmerica,

	// Europe
	"AL": Europe, "AD": Europe, "AM": Europe, "AT": Europe, "BA": Europe,
	"BE": Europe, "BG": Europe, "BY": Europe, "CH": Europe, "CY": Europe,
	"CZ": Europe, "DE": Europe, "DK": Europe, "EE": Europe, "ES": Europe,
	"FI": Europe, "FR": Europe, "GB": Europe, "GE": Europe, "GR": Europe,
	"HR": Europe, "HU": Europe, "IE": Europe, "IS": Europe, "IT": Europe,
	"LI": Europe, "LT": Europe, "LU": Europe, "LV": Europe, "MC": Europe,
	"MD": Europe, "ME": Europe, "MK": Europe, "MT": Europe, "NL": Europe,
	"NO": Europe, "PL": Europe, "PT": Europe, "RO": Europe, "RS": Europe,
	"RU": Europe, "SE": Europe, "SI": Europe, "SK": Europe, "SM": Europe,
	"UA": Europe, "VA": Europe, "UK": Europe, "TR": Europe,

	// Asia
	"AE": Asia, "AF": Asia, "AZ": Asia, "BH": Asia, "BD": Asia, "BN": Asia,
	"BT": Asia, "CN": Asia, "HK": Asia, "ID": Asia, "IL": Asia, "IN": Asia,
	"IQ": Asia, "IR": Asia, "JO": Asia, "JP": Asia, "KG": Asia, "KH": Asia,
	"KP": Asia, "KR": Asia, "KW": Asia, "KZ": Asia, "LA": Asia, "LB": Asia,
	"LK": Asia, "MM": Asia, "MN": Asia, "MO": Asia, "MY": Asia, "NP": Asia,
	"OM": Asia, "PH": Asia, "PK": Asia, "PS": Asia, "QA": Asia, "SA": Asia,
	"SG": Asia, "SY": Asia, "TH": Asia, "TJ": Asia, "TL": Asia, "TM": Asia,
	"TW": Asia, "UZ": Asia, "VN": Asia, "YE": Asia,

	// Oceania
	"AU": Oceania, "NZ": Oceania, "FJ": Oceania, "PG": Oceania, "SB": Oceania,
	"TO": Oceania, "VU": Oceania, "WS": Oceania, "NR": Oceania, "KI": Oceania,
	"TV": Oceania, "FM": Oceania, "MH": Oceania, "PW": Oceania,

	// South America
	"AR": SouthAmerica, "BO": SouthAmerica, "BR": SouthAmerica, "CL": SouthAmerica,
	"CO": SouthAmerica, "EC": SouthAmerica, "GY": SouthAmerica, "PE": SouthAmerica,
	"PY": SouthAmerica, "SR": SouthAmerica, "UY": SouthAmerica, "VE": SouthAmerica,

	// Africa
	"DZ": Africa, "AO": Africa, "BF": Africa, "BI": Africa, "BJ": Africa,
	"BW": Africa, "CD": Africa, "CF": Africa, "CG": Africa, "CI": Africa,
	"CM": Africa, "CV": Africa, "DJ": Africa, "EG": Africa, "ER": Africa,
	"ET": Africa, "GA": Africa, "GH": Africa, "GM": Africa, "GN": Africa,
	"GQ": Africa, "KE": Africa, "KM": Africa, "LR": Africa, "LS": Africa,
	"LY": Africa, "MA": Africa, "MG": Africa, "ML": Africa, "MR": Africa,
	"MU": Africa, "MW": Africa, "MZ": Africa, "NA": Africa, "NE": Africa,
	"NG": Africa, "RW": Africa, "SC": Africa, "SD": Africa, "SL": Africa,
	"SN": Africa, "SO": Africa, "SS": Africa, "ST": Africa, "SZ": Africa,
	"TD": Africa, "TG": Africa, "TN": Africa, "TZ": Africa, "UG": Africa,
	"ZA": Africa, "ZM": Africa, "ZW": Africa,
}

// Classify returns the region for a country code. Matching is
// case-insensitive and ignores surrounding whitespace; empty or unknown codes
// map to Other.
func Classify(countryCode string) string {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if code == "" {
		return Other
	}
	if r, ok := countryRegion[code]; ok {
		return r
	}
	return Other
}
