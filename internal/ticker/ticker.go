// Package ticker validates domestic A-share ticker codes.
package ticker

// exchanges maps an accepted two-digit prefix to its exchange.
var exchanges = map[string]string{
	"60": "SH", // Shanghai main board
	"68": "SH", // STAR market
	"00": "SZ", // Shenzhen main board
	"30": "SZ", // ChiNext
	"83": "BJ",
	"43": "BJ",
	"87": "BJ",
}

// IsValid reports whether code is exactly six ASCII digits with an accepted
// exchange prefix.
func IsValid(code string) bool {
	if len(code) != 6 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	_, ok := exchanges[code[:2]]
	return ok
}

// Exchange returns "SH", "SZ" or "BJ" for a valid code, or "" otherwise.
func Exchange(code string) string {
	if !IsValid(code) {
		return ""
	}
	return exchanges[code[:2]]
}
