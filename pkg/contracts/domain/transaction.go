package domain

import (
	"time"
)

// Category is the product category assigned by the rule-based classifier.
// The set of categories is configuration-driven; these constants are the
// defaults shipped with the application.
type Category string

const (
	CategoryHousehold Category = "Household"
	CategoryGrocery   Category = "Grocery"
)

// Loyalty segment labels derived from customer id presence.
const (
	SegmentLoyal    = "loyal"
	SegmentNonLoyal = "non-loyal"
)

// Transaction represents a single retail invoice line after loading.
// Derived columns (Category through FinalPrice) are attached by the cleaning
// pipeline and are pure functions of the input columns; once attached the
// record is never mutated again.
type Transaction struct {
	InvoiceID   string    `json:"invoice_id" csv:"InvoiceID" validate:"required"`
	InvoiceDate time.Time `json:"invoice_date" csv:"InvoiceDate" validate:"required"`
	Description string    `json:"description" csv:"Description"`
	Quantity    int64     `json:"quantity" csv:"Quantity"` // negative quantity is a return
	UnitPrice   float64   `json:"unit_price" csv:"UnitPrice" validate:"gt=0"`
	CustomerID  string    `json:"customer_id,omitempty" csv:"CustomerID"` // empty means no loyalty account
	Country     string    `json:"country" csv:"Country" validate:"required"`

	// Loader bookkeeping: true while the unit price cell was empty or
	// unparseable. The imputer clears it; validation rejects any survivor.
	PriceMissing bool `json:"-" csv:"-"`

	// Derived columns.
	Category       Category `json:"category" csv:"Category" validate:"required"`
	LoyaltySegment string   `json:"loyalty_segment" csv:"LoyaltySegment" validate:"required,oneof=loyal non-loyal"`
	PriceImputed   bool     `json:"price_imputed" csv:"PriceImputed"`
	BaseDiscount   float64  `json:"base_discount" csv:"BaseDiscount" validate:"min=0"`
	ExtraDiscount  float64  `json:"extra_discount" csv:"ExtraDiscount" validate:"min=0"`
	TotalDiscount  float64  `json:"total_discount" csv:"TotalDiscount" validate:"min=0"`
	// min=0, not gt=0: a clamped 100% discount legitimately prices the line
	// at zero, while an unclamped negative price still fails validation.
	FinalPrice     float64  `json:"final_price" csv:"FinalPrice" validate:"min=0"`
}

// Revenue returns the post-discount revenue contribution of the record.
func (t Transaction) Revenue() float64 {
	return t.FinalPrice * float64(t.Quantity)
}

// GrossRevenue returns the pre-discount revenue contribution of the record.
func (t Transaction) GrossRevenue() float64 {
	return t.UnitPrice * float64(t.Quantity)
}

// IsReturn reports whether the record is a merchandise return.
func (t Transaction) IsReturn() bool {
	return t.Quantity < 0
}

// Dataset holds every transaction parsed from one or more workbook sheets.
// Records flow through the cleaning pipeline as a unit.
type Dataset struct {
	Records []Transaction `json:"records" validate:"dive"`
}
