package rules

import (
	openapi_types "github.com/oapi-codegen/runtime/types"

	"bitbucket.org/crgw/booking-engine/internal/schema"
)

type PriceInput struct {
	PickUpDate  *openapi_types.Date
	DropOffDate *openapi_types.Date

	PricePerDay schema.Amount
	Currency    string

	InternationalLicense bool

	RequireDamageDeposit bool
	DamageDepositAmount  schema.Amount

	Policy Policy
}

// Price computes the full breakdown of one booking quote. It never fails: a
// missing or inverted trip window prices as zero days, leaving the caller
// with a placeholder quote while validation blocks the actual submission.
func Price(input PriceInput) schema.PricingResult {
	days := RentalDays(input.PickUpDate, input.DropOffDate)

	subtotal := schema.Amount(days) * input.PricePerDay

	var surcharge schema.Amount
	if input.InternationalLicense {
		surcharge = input.Policy.InternationalSurcharge(subtotal)
	}

	var deposit schema.Amount
	if input.RequireDamageDeposit {
		deposit = input.DamageDepositAmount
	}

	// The deposit is refundable, it never becomes part of the total.
	total := subtotal + surcharge

	return schema.PricingResult{
		DayCount:                      days,
		Currency:                      input.Currency,
		Subtotal:                      subtotal,
		InternationalLicenseSurcharge: surcharge,
		DamageDeposit:                 deposit,
		Total:                         total,
		TotalDisplay:                  total.Major(),
		DamageDepositDisplay:          deposit.Major(),
	}
}
