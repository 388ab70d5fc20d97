package rules

import (
	"math"
	"os"
	"strconv"

	"bitbucket.org/crgw/booking-engine/internal/schema"
)

// DefaultInternationalSurchargePercent is the share of the rental subtotal
// charged when the renter holds an international driver license.
const DefaultInternationalSurchargePercent = 10.0

// Policy carries the product-level pricing constants that are not part of a
// vehicle record.
type Policy struct {
	InternationalSurchargePercent float64
}

func DefaultPolicy() Policy {
	return Policy{
		InternationalSurchargePercent: DefaultInternationalSurchargePercent,
	}
}

// PolicyFromEnv reads INTERNATIONAL_SURCHARGE_PERCENT, falling back to the
// default when unset or unparseable.
func PolicyFromEnv() Policy {
	policy := DefaultPolicy()

	if raw := os.Getenv("INTERNATIONAL_SURCHARGE_PERCENT"); raw != "" {
		percent, err := strconv.ParseFloat(raw, 64)
		if err == nil && percent >= 0 {
			policy.InternationalSurchargePercent = percent
		}
	}

	return policy
}

// InternationalSurcharge applies the percentage to a subtotal, rounding half
// away from zero to the minor unit.
func (p Policy) InternationalSurcharge(subtotal schema.Amount) schema.Amount {
	return schema.Amount(math.Round(float64(subtotal) * p.InternationalSurchargePercent / 100))
}
