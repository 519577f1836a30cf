package invoice

import (
	"strconv"
	"strings"
)

var amountCleaner = strings.NewReplacer("€", "", "$", "", " ", "")

// ParseAmount parses a detected monetary value into a float. It tolerates
// currency symbols, spaces, and both US ("1,234.56") and European
// ("1.234,56") separator conventions. A lone comma with no period is treated
// as a thousands separator.
func ParseAmount(s string) (float64, bool) {
	cleaned := strings.TrimSpace(amountCleaner.Replace(s))
	if cleaned == "" {
		return 0, false
	}

	commas := strings.Count(cleaned, ",")
	periods := strings.Count(cleaned, ".")

	switch {
	case periods > 0 && commas == 1 && strings.LastIndex(cleaned, ".") < strings.LastIndex(cleaned, ","):
		// European style: period groups thousands, comma is the decimal mark.
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case commas > 0 && (periods == 0 || strings.LastIndex(cleaned, ",") < strings.LastIndex(cleaned, ".")):
		// US style: commas group thousands.
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
