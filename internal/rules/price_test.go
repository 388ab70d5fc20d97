package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bitbucket.org/crgw/booking-engine/internal/rules"
	"bitbucket.org/crgw/booking-engine/internal/schema"
)

func priceInputTemplate() rules.PriceInput {
	return rules.PriceInput{
		PickUpDate:  date("2024-06-01"),
		DropOffDate: date("2024-06-04"),
		PricePerDay: 10000,
		Currency:    "EUR",
		Policy:      rules.DefaultPolicy(),
	}
}

func TestPrice(t *testing.T) {
	t.Run("should price a plain rental window", func(t *testing.T) {
		result := rules.Price(priceInputTemplate())

		assert.Equal(t, 3, result.DayCount)
		assert.Equal(t, schema.Amount(30000), result.Subtotal)
		assert.Equal(t, schema.Amount(0), result.InternationalLicenseSurcharge)
		assert.Equal(t, schema.Amount(0), result.DamageDeposit)
		assert.Equal(t, schema.Amount(30000), result.Total)
		assert.Equal(t, "EUR", result.Currency)
	})

	t.Run("should degrade to a zero quote on bad windows", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(input *rules.PriceInput)
		}{
			{"missing pickup", func(input *rules.PriceInput) { input.PickUpDate = nil }},
			{"missing dropoff", func(input *rules.PriceInput) { input.DropOffDate = nil }},
			{"inverted window", func(input *rules.PriceInput) {
				input.PickUpDate = date("2024-06-04")
				input.DropOffDate = date("2024-06-01")
			}},
			{"same day", func(input *rules.PriceInput) { input.DropOffDate = date("2024-06-01") }},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				input := priceInputTemplate()
				test.mutate(&input)

				result := rules.Price(input)

				assert.Equal(t, 0, result.DayCount)
				assert.Equal(t, schema.Amount(0), result.Subtotal)
				assert.Equal(t, schema.Amount(0), result.Total)
			})
		}
	})

	t.Run("should apply the international license surcharge", func(t *testing.T) {
		input := priceInputTemplate()
		input.InternationalLicense = true

		result := rules.Price(input)

		assert.Equal(t, schema.Amount(3000), result.InternationalLicenseSurcharge)
		assert.Equal(t, schema.Amount(33000), result.Total)
	})

	t.Run("should round the surcharge to the minor unit", func(t *testing.T) {
		input := priceInputTemplate()
		input.InternationalLicense = true
		input.PricePerDay = 3333
		input.Policy = rules.Policy{InternationalSurchargePercent: 2.5}

		result := rules.Price(input)

		// 3 * 3333 = 9999, 2.5% = 249.975 -> 250
		assert.Equal(t, schema.Amount(9999), result.Subtotal)
		assert.Equal(t, schema.Amount(250), result.InternationalLicenseSurcharge)
	})

	t.Run("should report the deposit without charging it", func(t *testing.T) {
		input := priceInputTemplate()
		input.RequireDamageDeposit = true
		input.DamageDepositAmount = 15000

		result := rules.Price(input)

		assert.Equal(t, schema.Amount(15000), result.DamageDeposit)
		assert.Equal(t, schema.Amount(30000), result.Total)
	})

	t.Run("should skip the deposit when the flag is off", func(t *testing.T) {
		input := priceInputTemplate()
		input.DamageDepositAmount = 15000

		result := rules.Price(input)

		assert.Equal(t, schema.Amount(0), result.DamageDeposit)
	})

	t.Run("should match subtotal to day count exactly", func(t *testing.T) {
		tests := []struct {
			pickUp       string
			dropOff      string
			expectedDays int
		}{
			{"2024-06-01", "2024-06-02", 1},
			{"2024-06-01", "2024-06-04", 3},
			{"2024-06-01", "2024-07-01", 30},
			{"2024-12-28", "2025-01-03", 6},
		}

		for _, test := range tests {
			input := priceInputTemplate()
			input.PickUpDate = date(test.pickUp)
			input.DropOffDate = date(test.dropOff)

			result := rules.Price(input)

			assert.Equal(t, test.expectedDays, result.DayCount)
			assert.Equal(t, schema.Amount(test.expectedDays)*input.PricePerDay, result.Subtotal)
		}
	})

	t.Run("should be idempotent", func(t *testing.T) {
		input := priceInputTemplate()
		input.InternationalLicense = true
		input.RequireDamageDeposit = true
		input.DamageDepositAmount = 15000

		assert.Equal(t, rules.Price(input), rules.Price(input))
	})
}

func TestPolicyFromEnv(t *testing.T) {
	t.Run("should fall back to the default", func(t *testing.T) {
		t.Setenv("INTERNATIONAL_SURCHARGE_PERCENT", "")
		assert.Equal(t, rules.DefaultPolicy(), rules.PolicyFromEnv())
	})

	t.Run("should read a configured percentage", func(t *testing.T) {
		t.Setenv("INTERNATIONAL_SURCHARGE_PERCENT", "7.5")
		assert.Equal(t, 7.5, rules.PolicyFromEnv().InternationalSurchargePercent)
	})

	t.Run("should ignore garbage", func(t *testing.T) {
		t.Setenv("INTERNATIONAL_SURCHARGE_PERCENT", "lots")
		assert.Equal(t, rules.DefaultPolicy(), rules.PolicyFromEnv())
	})
}
