package pdf

import (
	"fmt"
	"math"
	"strings"
)

// currencyBehavior defines how a currency is formatted on documents.
type currencyBehavior struct {
	symbol string
	group  string // thousands separator
	dec    string // decimal separator
}

var currencyBehaviors = map[string]currencyBehavior{
	"EUR": {symbol: "€", group: " ", dec: ","}, // fr-FR style
	"USD": {symbol: "$", group: ",", dec: "."},
	"GBP": {symbol: "£", group: ",", dec: "."},
}

// FormatMoney renders amount with two decimals, thousand grouping, and the
// currency symbol. Unknown codes fall back to printing the code itself.
func FormatMoney(amount float64, currency string) string {
	b, ok := currencyBehaviors[strings.ToUpper(currency)]
	if !ok {
		return fmt.Sprintf("%s %s", currency, formatGrouped(amount, ",", "."))
	}
	return b.symbol + formatGrouped(amount, b.group, b.dec)
}

// formatGrouped formats with 2 decimals, using group as the thousands
// separator and dec as the decimal separator. Negative amounts keep their
// sign in front of the symbol-free number. Non-finite amounts print as-is;
// %.2f emits them without a decimal part.
func formatGrouped(amount float64, group, dec string) string {
	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		return fmt.Sprintf("%f", amount)
	}
	str := fmt.Sprintf("%.2f", amount)
	sign := ""
	if strings.HasPrefix(str, "-") {
		sign = "-"
		str = str[1:]
	}
	parts := strings.SplitN(str, ".", 2)
	intPart := parts[0]
	var out strings.Builder
	out.WriteString(sign)
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out.WriteString(group)
		}
		out.WriteRune(digit)
	}
	out.WriteString(dec)
	out.WriteString(parts[1])
	return out.String()
}
