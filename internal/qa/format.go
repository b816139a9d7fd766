package qa

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders money amounts with a currency symbol and thousands separators
type Formatter struct {
	currency string
	printer  *message.Printer
}

// NewFormatter creates a formatter for the given currency symbol
func NewFormatter(currency string) *Formatter {
	return &Formatter{
		currency: currency,
		printer:  message.NewPrinter(language.English),
	}
}

// Amount formats d as e.g. "₹1,500.00" or "-₹20.50". Digits come from the
// decimal itself, so amounts beyond float64 precision print exactly.
func (f *Formatter) Amount(d decimal.Decimal) string {
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	return sign + f.currency + f.group(whole) + "." + frac
}

// group inserts thousands separators into a string of digits
func (f *Formatter) group(digits string) string {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return f.printer.Sprintf("%d", n)
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
