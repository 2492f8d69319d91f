package domain

// Options is the single shared set of enumerated lists consumed by both
// validation and the presentation layer. The lists live here so dropdowns
// and server-side checks can never disagree.
type Options struct {
	InstrumentKinds     []InstrumentKind    `json:"instrument_kinds"`
	InstrumentStatuses  []InstrumentStatus  `json:"instrument_statuses"`
	InstallmentStatuses []InstallmentStatus `json:"installment_statuses"`
	TransactionTypes    []TransactionType   `json:"transaction_types"`
	TransactionStatuses []TransactionStatus `json:"transaction_statuses"`
	Frequencies         []Frequency         `json:"frequencies"`
	Categories          []string            `json:"categories"`
}

// SharedOptions returns the canonical option lists.
func SharedOptions() Options {
	return Options{
		InstrumentKinds:     []InstrumentKind{KindLoan, KindSplit, KindSIP},
		InstrumentStatuses:  []InstrumentStatus{InstrumentOpen, InstrumentClosed},
		InstallmentStatuses: []InstallmentStatus{InstallmentPending, InstallmentCompleted},
		TransactionTypes:    []TransactionType{TypeReceivable, TypePayable, TypeReceived, TypePaid},
		TransactionStatuses: []TransactionStatus{TransactionPending, TransactionCompleted},
		Frequencies:         []Frequency{FrequencyMonthly, FrequencyWeekly, FrequencyCustom},
		Categories:          []string{"Personal", "Loan", "Food", "Shopping", "EMI", "Investment"},
	}
}

// InstallmentCategory returns the transaction category an instrument's
// installments carry, based on its kind. Split keeps the user's category.
func InstallmentCategory(kind InstrumentKind, userCategory string) string {
	switch kind {
	case KindLoan:
		return "EMI"
	case KindSplit:
		return userCategory
	default:
		return "Investment"
	}
}

// InstallmentLabel returns the label used in generated installment
// descriptions ("<name> EMI 3", "<name> SIP 1").
func InstallmentLabel(kind InstrumentKind) string {
	if kind == KindLoan {
		return "EMI"
	}

	return string(kind)
}
