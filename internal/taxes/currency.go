package taxes

import "strings"

// currencyPrecision lists the ISO 4217 currencies whose minor unit is not the
// common 2 digits. Anything absent from this table rounds to 2 decimal places.
var currencyPrecision = map[string]int{
	"bhd": 3,
	"bif": 0,
	"clp": 0,
	"djf": 0,
	"gnf": 0,
	"iqd": 3,
	"isk": 0,
	"jod": 3,
	"jpy": 0,
	"kmf": 0,
	"krw": 0,
	"kwd": 3,
	"lyd": 3,
	"omr": 3,
	"pyg": 0,
	"rwf": 0,
	"tnd": 3,
	"ugx": 0,
	"vnd": 0,
	"vuv": 0,
	"xaf": 0,
	"xof": 0,
	"xpf": 0,
}

// Precision returns the number of decimal digits for the given currency code.
func Precision(currency string) int {
	if digits, ok := currencyPrecision[strings.ToLower(currency)]; ok {
		return digits
	}
	return 2
}
