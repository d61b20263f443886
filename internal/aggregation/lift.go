package aggregation

import (
	"math"

	"retailprep/internal/errors"
	"retailprep/pkg/contracts/domain"
)

// LiftResult is the outcome of comparing pre-discount revenue (control)
// against post-pipeline revenue (treated).
type LiftResult struct {
	ControlRevenue float64 `json:"control_revenue"`
	TreatedRevenue float64 `json:"treated_revenue"`
	LiftPercent    float64 `json:"lift_percent"` // rounded to 2 decimal places
}

// Lift computes the percentage change from control to treated, rounded to
// two decimal places. A zero control makes the percentage undefined and
// returns ErrUndefinedLift rather than infinity or NaN.
func Lift(control, treated float64) (float64, error) {
	if control == 0 {
		return 0, errors.NewArithmeticError("cannot compute lift", errors.ErrUndefinedLift).
			WithContext("treated_revenue", treated)
	}

	lift := (treated - control) / control * 100
	return math.Round(lift*100) / 100, nil
}

// RevenueLift computes the discount pipeline's revenue lift over the cleaned
// record set: control is gross revenue at the raw unit price, treated is
// revenue at the final discounted, taxed price.
func RevenueLift(records []domain.Transaction) (*LiftResult, error) {
	var control, treated float64
	for _, rec := range records {
		control += rec.GrossRevenue()
		treated += rec.Revenue()
	}

	lift, err := Lift(control, treated)
	if err != nil {
		return nil, err
	}

	return &LiftResult{
		ControlRevenue: control,
		TreatedRevenue: treated,
		LiftPercent:    lift,
	}, nil
}
