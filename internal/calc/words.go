package calc

import (
	"math"
	"strings"
)

var onesWords = []string{
	"", "ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN", "EIGHT",
	"NINE", "TEN", "ELEVEN", "TWELVE", "THIRTEEN", "FOURTEEN", "FIFTEEN",
	"SIXTEEN", "SEVENTEEN", "EIGHTEEN", "NINETEEN",
}

var tensWords = []string{
	"", "", "TWENTY", "THIRTY", "FORTY", "FIFTY", "SIXTY", "SEVENTY",
	"EIGHTY", "NINETY",
}

var currencyNames = map[string]string{
	"USD": "US DOLLARS",
	"EUR": "EUROS",
	"INR": "INDIAN RUPEES",
	"GBP": "BRITISH POUNDS",
}

// AmountInWords spells the whole-number part of an amount in upper-case
// short-scale English with the currency's plural name, e.g. "ONE THOUSAND
// TWO HUNDRED AND THIRTY FOUR US DOLLARS ONLY". The fraction is dropped,
// not rounded, and a zero amount comes back as just "ZERO".
func AmountInWords(amount float64, currency string) string {
	n := int64(math.Floor(amount))
	if n <= 0 {
		return "ZERO"
	}

	name, ok := currencyNames[strings.ToUpper(currency)]
	if !ok {
		name = "DOLLARS"
	}
	return spell(n) + " " + name + " ONLY"
}

func spell(n int64) string {
	switch {
	case n < 20:
		return onesWords[n]
	case n < 100:
		s := tensWords[n/10]
		if n%10 != 0 {
			s += " " + onesWords[n%10]
		}
		return s
	case n < 1000:
		s := onesWords[n/100] + " HUNDRED"
		if n%100 != 0 {
			s += " AND " + spell(n%100)
		}
		return s
	case n < 1000000:
		s := spell(n/1000) + " THOUSAND"
		if n%1000 != 0 {
			s += " " + spell(n%1000)
		}
		return s
	default:
		s := spell(n/1000000) + " MILLION"
		if n%1000000 != 0 {
			s += " " + spell(n%1000000)
		}
		return s
	}
}
