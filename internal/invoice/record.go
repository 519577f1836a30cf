package invoice

// Record is the structured result of analyzing one invoice file. Optional
// fields are empty strings when the analysis did not detect them; values are
// kept as the strings the analysis emitted rather than parsed eagerly, since
// rendering preserves the document's own formatting.
type Record struct {
	// SourcePath is the local path the invoice was read from. Always set.
	SourcePath string

	Vendor        string
	InvoiceNumber string
	InvoiceDate   string
	Total         string
	PaymentTerms  string

	// LineItems preserves the order the analysis emitted.
	LineItems []LineItem
}

// LineItem is one detected invoice line. Goods invoices carry Quantity and
// UnitPrice; service invoices carry Hours and Rate instead.
type LineItem struct {
	Description string
	Amount      string

	Quantity  string
	UnitPrice string

	Hours string
	Rate  string
}

// IsService reports whether the item was billed by time rather than quantity.
func (li LineItem) IsService() bool {
	return li.Hours != ""
}
