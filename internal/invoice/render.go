package invoice

import (
	"fmt"
	"io"
	"strings"
)

const (
	ruleWidth  = 100
	descWidth  = 50
	numWidth   = 4
	qtyWidth   = 8
	priceWidth = 15
)

// Render writes the record to w as a readable text report: summary fields
// first, then a line-item table. This is the system's only output format.
func (r *Record) Render(w io.Writer) {
	rule := strings.Repeat("=", ruleWidth)

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Extraction Results for: %s\n", r.SourcePath)
	fmt.Fprintln(w, rule)

	fmt.Fprintf(w, "Vendor:         %s\n", orNA(r.Vendor))
	fmt.Fprintf(w, "Invoice Number: %s\n", orNA(r.InvoiceNumber))
	fmt.Fprintf(w, "Invoice Date:   %s\n", orNA(r.InvoiceDate))
	fmt.Fprintf(w, "Invoice Total:  %s\n", orNA(r.Total))

	terms := r.PaymentTerms
	if terms == "" {
		terms = "Not available"
	}
	renderWrapped(w, "Payment Terms:  ", terms)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- Line Items ---")
	if len(r.LineItems) == 0 {
		fmt.Fprintln(w, "  No line items found.")
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w)
		return
	}

	// A single invoice is either a goods or a service invoice; the first
	// item decides which column set applies.
	service := r.LineItems[0].IsService()

	var header string
	if service {
		header = fmt.Sprintf("%-*s | %-*s | %-*s | %-*s | %-*s",
			numWidth, "#", descWidth, "Description", qtyWidth, "Hours", priceWidth, "Rate", priceWidth, "Amount")
	} else {
		header = fmt.Sprintf("%-*s | %-*s | %-*s | %-*s | %-*s",
			numWidth, "#", descWidth, "Description", qtyWidth, "Qty", priceWidth, "Unit Price", priceWidth, "Amount")
	}
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	for i, item := range r.LineItems {
		desc := strings.ReplaceAll(orNA(item.Description), "\n", " ")
		descLines := wrapText(desc, descWidth)
		first := ""
		if len(descLines) > 0 {
			first = descLines[0]
		}

		if service {
			fmt.Fprintf(w, "%-*d | %-*s | %-*s | %-*s | %-*s\n",
				numWidth, i+1, descWidth, first,
				qtyWidth, orNA(item.Hours), priceWidth, orNA(item.Rate), priceWidth, orNA(item.Amount))
		} else {
			fmt.Fprintf(w, "%-*d | %-*s | %-*s | %-*s | %-*s\n",
				numWidth, i+1, descWidth, first,
				qtyWidth, orNA(item.Quantity), priceWidth, orNA(item.UnitPrice), priceWidth, orNA(item.Amount))
		}

		for _, cont := range descLines[1:] {
			fmt.Fprintf(w, "%-*s | %-*s | %-*s | %-*s | %-*s\n",
				numWidth, "", descWidth, cont, qtyWidth, "", priceWidth, "", priceWidth, "")
		}

		if i < len(r.LineItems)-1 {
			fmt.Fprintf(w, "%s | %s | %s | %s | %s\n",
				strings.Repeat("-", numWidth), strings.Repeat("-", descWidth),
				strings.Repeat("-", qtyWidth), strings.Repeat("-", priceWidth), strings.Repeat("-", priceWidth))
		}
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// renderWrapped prints text wrapped to the rule width, with continuation
// lines indented under the value column.
func renderWrapped(w io.Writer, label, text string) {
	indent := strings.Repeat(" ", len(label))
	lines := wrapText(text, ruleWidth-len(label))
	for i, line := range lines {
		if i == 0 {
			fmt.Fprintf(w, "%s%s\n", label, line)
		} else {
			fmt.Fprintf(w, "%s%s\n", indent, line)
		}
	}
	if len(lines) == 0 {
		fmt.Fprintln(w, label)
	}
}

// wrapText greedily wraps text at word boundaries. Words longer than the
// width are emitted on their own line rather than split.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) <= width {
			current += " " + word
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	return append(lines, current)
}
