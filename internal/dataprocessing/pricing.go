package dataprocessing

import (
	"retailprep/internal/config"
	"retailprep/pkg/contracts/domain"
)

// Pricer applies the discount and tax policy to produce the final unit price.
// All discount values are whole percentages.
type Pricer struct {
	baseDiscounts    map[string]float64
	premiumThreshold float64
	premiumRate      float64
	taxRate          float64
	clampTotal       bool
}

// NewPricer creates a pricer from the configured policy.
func NewPricer(cfg config.PricingConfig) *Pricer {
	return &Pricer{
		baseDiscounts:    cfg.BaseDiscounts,
		premiumThreshold: cfg.PremiumThreshold,
		premiumRate:      cfg.PremiumRate,
		taxRate:          cfg.TaxRate,
		clampTotal:       cfg.ClampTotal,
	}
}

// Price returns the discount breakdown and final price for one record.
//
// The base discount is a category lookup; an unknown category gets no base
// discount. The premium discount applies only when the unit price is
// strictly above the threshold, so an item priced exactly at the threshold
// earns no extra discount. Tax applies after discounting:
//
//	final = price * (1 - total/100) * (1 + tax)
func (p *Pricer) Price(category domain.Category, unitPrice float64) (base, extra, total, final float64) {
	base = p.baseDiscounts[string(category)]
	if unitPrice > p.premiumThreshold {
		extra = p.premiumRate
	}

	total = base + extra
	if p.clampTotal && total > 100 {
		total = 100
	}

	final = unitPrice * (1 - total/100) * (1 + p.taxRate)
	return base, extra, total, final
}

// Apply attaches the discount breakdown and final price to every record.
func (p *Pricer) Apply(records []domain.Transaction) {
	for i := range records {
		rec := &records[i]
		rec.BaseDiscount, rec.ExtraDiscount, rec.TotalDiscount, rec.FinalPrice =
			p.Price(rec.Category, rec.UnitPrice)
	}
}
