package invoice

import (
	"regexp"
	"strings"
)

// Payment-terms label shapes seen across vendor invoice layouts. The first
// capture group is whatever trails the label on the same line.
var termsLabelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bpayment\s+terms?\b[ \t]*[:\-]?[ \t]*(.*)`),
	regexp.MustCompile(`(?i)\bterms\s+of\s+payment\b[ \t]*[:\-]?[ \t]*(.*)`),
	regexp.MustCompile(`(?i)\bterms[ \t]*:[ \t]*(.*)`),
}

// Keywords that mark a line as stating payment terms even without a label.
var termsKeywords = []string{
	"payment is due",
	"late payment",
	"immediate payment",
	"please pay",
	"balance due",
	"unpaid for",
	"penalty",
	"interest",
	"please remit",
	"net 15",
	"net 30",
	"net 60",
	"net 90",
	"due upon receipt",
}

// FindPaymentTerms scans detected text lines, in the order the detection
// emitted them, for a payment-terms statement. The first match wins and the
// scan stops there.
//
// A labeled line ("Payment Terms: Net 30") yields the text after the label;
// when the label ends the line, the content is taken from the next non-empty
// line. If no label is found anywhere, a second pass returns the first line
// containing a known payment-terms keyword verbatim. An empty result means
// no terms were detected, which is not an error.
func FindPaymentTerms(lines []string) string {
	for i, line := range lines {
		for _, re := range termsLabelPatterns {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if trailing := strings.TrimSpace(m[1]); trailing != "" {
				return trailing
			}
			// Label and value split across adjacent lines.
			for _, next := range lines[i+1:] {
				if v := strings.TrimSpace(next); v != "" {
					return v
				}
			}
			return ""
		}
	}

	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, kw := range termsKeywords {
			if strings.Contains(lower, kw) {
				return strings.TrimSpace(line)
			}
		}
	}

	return ""
}
