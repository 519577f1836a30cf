package expense

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/dvloznov/invoice-extract/internal/invoice"
)

// Extraction is the mapped result of one expense analysis. Fields the
// analysis did not detect stay empty; that is a normal outcome, not an
// error.
type Extraction struct {
	Vendor        string
	InvoiceNumber string
	InvoiceDate   string
	Total         string
	PaymentTerms  string
	LineItems     []invoice.LineItem
}

// Summary field types that describe the invoice itself rather than a
// purchasable line, and so must not be turned into fallback line items.
var nonItemSummaryTypes = map[string]bool{
	"TOTAL":                    true,
	"TAX":                      true,
	"INVOICE_RECEIPT_ID":       true,
	"INVOICE_RECEIPT_DATE":     true,
	"VENDOR_NAME":              true,
	"VENDOR_ADDRESS":           true,
	"RECEIVER_NAME":            true,
	"RECEIVER_ADDRESS":         true,
	"DUE_DATE":                 true,
	"PAYMENT_TERMS":            true,
	"TERMS":                    true,
	"SHIPPING_HANDLING_CHARGE": true,
	"GRATUITY":                 true,
	"ADDRESS":                  true,
	"STREET":                   true,
	"CITY":                     true,
	"STATE":                    true,
	"ZIP_CODE":                 true,
	"NAME":                     true,
	"ADDRESS_BLOCK":            true,
	"CLIENT_MATTER":            true,
	"CLIENT_ID":                true,
}

// parseExpenseDocuments maps the analysis response into an Extraction.
// Multi-section responses are merged first so one input file yields exactly
// one extraction.
func parseExpenseDocuments(docs []types.ExpenseDocument) *Extraction {
	summary, fields := mergeSummaryFields(docs)

	x := &Extraction{
		Vendor:        summary["VENDOR_NAME"],
		InvoiceNumber: summary["INVOICE_RECEIPT_ID"],
		InvoiceDate:   summary["INVOICE_RECEIPT_DATE"],
		Total:         summary["TOTAL"],
	}

	// Some vendors label the field TERMS instead of PAYMENT_TERMS. A blank
	// value counts as absent so the fallback detection can run.
	terms := summary["PAYMENT_TERMS"]
	if strings.TrimSpace(terms) == "" {
		terms = summary["TERMS"]
	}
	x.PaymentTerms = strings.TrimSpace(terms)

	x.LineItems = parseLineItems(docs)
	if len(x.LineItems) == 0 {
		x.LineItems = fallbackLineItems(fields)
	}

	return x
}

// mergeSummaryFields folds the summary fields of every document section
// into one label→value map. The first section keeps all of its fields,
// duplicate types included, and later sections contribute only types not
// seen before; when a type repeats, the last kept occurrence wins the
// lookup. The ordered field list is kept for fallback line-item extraction.
func mergeSummaryFields(docs []types.ExpenseDocument) (map[string]string, []types.ExpenseField) {
	summary := make(map[string]string)
	var ordered []types.ExpenseField

	seen := make(map[string]bool)
	for i, doc := range docs {
		for _, f := range doc.SummaryFields {
			fieldType := expenseTypeText(f)
			if fieldType == "" {
				continue
			}
			if i > 0 && seen[fieldType] {
				continue
			}
			seen[fieldType] = true
			summary[fieldType] = detectionText(f.ValueDetection)
			ordered = append(ordered, f)
		}
	}

	return summary, ordered
}

// parseLineItems walks every LineItemGroup across all document sections in
// the order the API emitted them.
func parseLineItems(docs []types.ExpenseDocument) []invoice.LineItem {
	var items []invoice.LineItem

	for _, doc := range docs {
		for _, group := range doc.LineItemGroups {
			for _, li := range group.LineItems {
				raw := make(map[string]string, len(li.LineItemExpenseFields))
				for _, f := range li.LineItemExpenseFields {
					if t := expenseTypeText(f); t != "" {
						raw[t] = detectionText(f.ValueDetection)
					}
				}

				// Rows without an ITEM are layout noise, not purchases.
				desc, ok := raw["ITEM"]
				if !ok {
					continue
				}

				item := invoice.LineItem{Description: desc}

				// The line total is usually PRICE; some documents emit AMOUNT.
				item.Amount = raw["PRICE"]
				if item.Amount == "" {
					item.Amount = raw["AMOUNT"]
				}

				quantity := raw["QUANTITY"]
				hours := raw["HOURS"]

				// A fractional quantity means the row is billed by time.
				if hours != "" || strings.Contains(quantity, ".") {
					item.Hours = hours
					if item.Hours == "" {
						item.Hours = quantity
					}
					item.Rate = raw["RATE"]
				} else if quantity != "" {
					item.Quantity = quantity
					item.UnitPrice = raw["UNIT_PRICE"]
				}

				items = append(items, item)
			}
		}
	}

	return items
}

// fallbackLineItems treats numeric-valued summary fields outside the
// exclusion set as line items. Some simple invoices come back with no
// LineItemGroups at all and their charges appear only as summary fields.
func fallbackLineItems(fields []types.ExpenseField) []invoice.LineItem {
	var items []invoice.LineItem

	for _, f := range fields {
		fieldType := expenseTypeText(f)
		amount := detectionText(f.ValueDetection)
		if fieldType == "" || nonItemSummaryTypes[fieldType] || amount == "" {
			continue
		}
		if _, ok := invoice.ParseAmount(amount); !ok {
			continue
		}

		desc := detectionText(f.LabelDetection)
		if desc == "" {
			desc = fieldType
		}
		items = append(items, invoice.LineItem{Description: desc, Amount: amount})
	}

	return items
}

func expenseTypeText(f types.ExpenseField) string {
	if f.Type == nil {
		return ""
	}
	return aws.ToString(f.Type.Text)
}

func detectionText(d *types.ExpenseDetection) string {
	if d == nil {
		return ""
	}
	return aws.ToString(d.Text)
}
