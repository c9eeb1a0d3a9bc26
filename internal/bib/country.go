package bib

import "strings"

// CountryClass buckets a MARC country code for run reporting. Copyright
// status analysis only cares whether a record is a US publication; the
// exact code is kept on the record for export.
type CountryClass string

const (
	CountryUS      CountryClass = "us"
	CountryNonUS   CountryClass = "non-us"
	CountryUnknown CountryClass = "unknown"
)

// usCountryCodes are the official MARC country codes for US states and
// territories, per the Library of Congress list.
var usCountryCodes = map[string]struct{}{
	"aku": {}, "alu": {}, "aru": {}, "azu": {}, "cau": {}, "cou": {},
	"ctu": {}, "dcu": {}, "deu": {}, "flu": {}, "gau": {}, "hiu": {},
	"iau": {}, "idu": {}, "ilu": {}, "inu": {}, "ksu": {}, "kyu": {},
	"lau": {}, "mau": {}, "mdu": {}, "meu": {}, "miu": {}, "mnu": {},
	"mou": {}, "msu": {}, "mtu": {}, "nbu": {}, "ncu": {}, "ndu": {},
	"nhu": {}, "nju": {}, "nmu": {}, "nvu": {}, "nyu": {}, "ohu": {},
	"oku": {}, "oru": {}, "pau": {}, "riu": {}, "scu": {}, "sdu": {},
	"tnu": {}, "txu": {}, "utu": {}, "vau": {}, "vtu": {}, "wau": {},
	"wvu": {}, "wyu": {}, "xxu": {},
}

// ClassifyCountry buckets a MARC 008 country code. Empty or malformed
// codes (wrong length, non-alphabetic) are unknown; codes on the US
// list are US; any other well-formed code is non-US.
func ClassifyCountry(code string) CountryClass {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || len(code) > 3 || !isAllLetters(code) {
		return CountryUnknown
	}
	if _, ok := usCountryCodes[code]; ok {
		return CountryUS
	}
	return CountryNonUS
}

func isAllLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
