package rules

import (
	"math"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// RentalDays is the chargeable day count of a trip window: the ceiling of
// the pickup-to-dropoff difference in whole days. A missing or inverted
// window counts as zero days rather than failing, so pricing can always
// produce a quote.
func RentalDays(pickUp, dropOff *openapi_types.Date) int {
	if pickUp == nil || dropOff == nil {
		return 0
	}

	if !dropOff.Time.After(pickUp.Time) {
		return 0
	}

	return int(math.Ceil(dropOff.Time.Sub(pickUp.Time).Hours() / 24))
}
