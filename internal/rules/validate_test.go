package rules_test

import (
	"testing"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/stretchr/testify/assert"

	"bitbucket.org/crgw/booking-engine/internal/rules"
	"bitbucket.org/crgw/booking-engine/internal/schema"
)

func date(value string) *openapi_types.Date {
	parsed, _ := time.Parse("2006-01-02", value)
	return &openapi_types.Date{Time: parsed}
}

func requirementsTemplate() *schema.VehicleRequirements {
	return &schema.VehicleRequirements{
		VehicleId:                "veh-1",
		PricePerDay:              10000,
		Currency:                 "EUR",
		RequireDriverLicense:     true,
		MinimumDriverAge:         21,
		MinimumDrivingExperience: 2,
		MinimumRentalDays:        2,
	}
}

func formTemplate() schema.BookingRequest {
	return schema.BookingRequest{
		PickUpDate:        date("2024-06-01"),
		DropOffDate:       date("2024-06-04"),
		FirstName:         "Mari",
		LastName:          "Maasikas",
		Email:             "mari@example.com",
		Phone:             "+37255512345",
		DriverAge:         "25",
		DrivingExperience: "5",
		LicenseAttached:   true,
		Delivery: schema.DeliverySelection{
			Mode:     schema.DeliveryModeMapPin,
			Location: "Tartu mnt 1, Tallinn",
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("should pass a complete form", func(t *testing.T) {
		result := rules.Validate(formTemplate(), requirementsTemplate())

		assert.True(t, result.IsValid)
		assert.Empty(t, result.BlockingErrors)
		assert.Empty(t, result.Errors)
	})

	t.Run("should return the loading sentinel without requirements", func(t *testing.T) {
		result := rules.Validate(schema.BookingRequest{}, nil)

		assert.False(t, result.IsValid)
		assert.Equal(t, []string{rules.MessageLoadingRequirements}, result.BlockingErrors)
		assert.Empty(t, result.Errors)
	})

	t.Run("should block policy violations", func(t *testing.T) {
		tests := []struct {
			name     string
			mutate   func(form *schema.BookingRequest, requirements *schema.VehicleRequirements)
			expected string
		}{
			{
				"missing dates",
				func(form *schema.BookingRequest, requirements *schema.VehicleRequirements) {
					form.PickUpDate = nil
				},
				"Pick-up and drop-off dates are required",
			},
			{
				"inverted window",
				func(form *schema.BookingRequest, requirements *schema.VehicleRequirements) {
					form.PickUpDate = date("2024-06-04")
					form.DropOffDate = date("2024-06-01")
				},
				"Drop-off date must be after the pick-up date",
			},
			{
				"dropoff equal to pickup",
				func(form *schema.BookingRequest, requirements *schema.VehicleRequirements) {
					form.DropOffDate = date("2024-06-01")
				},
				"Drop-off date must be after the pick-up date",
			},
			{
				"shorter than the rental minimum",
				func(form *schema.BookingRequest, requirements *schema.VehicleRequirements) {
					requirements.MinimumRentalDays = 7
				},
				"This vehicle is rented out for at least 7 days, selected period is 3",
			},
			{
				"missing license",
				func(form *schema.BookingRequest, requirements *schema.VehicleRequirements) {
					form.LicenseAttached = false
				},
				"A copy of the driver license is required for this vehicle",
			},
			{
				"underage driver",
				func(form *schema.BookingRequest, requirements *schema.VehicleRequirements) {
					form.DriverAge = "17"
				},
				"Minimum driver age for this vehicle is 21",
			},
			{
				"non-numeric age",
				func(form *schema.BookingRequest, requirements *schema.VehicleRequirements) {
					form.DriverAge = "twenty"
				},
				"Driver age must be a number",
			},
			{
				"insufficient experience",
				func(form *schema.BookingRequest, requirements *schema.VehicleRequirements) {
					form.DrivingExperience = "1"
				},
				"This vehicle requires at least 2 years of driving experience",
			},
			{
				"non-numeric experience",
				func(form *schema.BookingRequest, requirements *schema.VehicleRequirements) {
					form.DrivingExperience = ""
				},
				"Driving experience must be a number",
			},
			{
				"no delivery selection",
				func(form *schema.BookingRequest, requirements *schema.VehicleRequirements) {
					form.Delivery = schema.DeliverySelection{}
				},
				"A delivery location or an airport must be selected",
			},
			{
				"airport mode with unknown code",
				func(form *schema.BookingRequest, requirements *schema.VehicleRequirements) {
					form.Delivery = schema.DeliverySelection{
						Mode:        schema.DeliveryModeAirport,
						AirportCode: "XXX",
					}
				},
				"A delivery location or an airport must be selected",
			},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				form := formTemplate()
				requirements := requirementsTemplate()
				test.mutate(&form, requirements)

				result := rules.Validate(form, requirements)

				assert.False(t, result.IsValid)
				assert.Equal(t, []string{test.expected}, result.BlockingErrors)
				assert.Empty(t, result.Errors)
			})
		}
	})

	t.Run("should keep contact issues advisory", func(t *testing.T) {
		form := formTemplate()
		form.FirstName = " "
		form.LastName = ""
		form.Email = "not-an-email"
		form.Phone = ""

		result := rules.Validate(form, requirementsTemplate())

		assert.True(t, result.IsValid)
		assert.Empty(t, result.BlockingErrors)
		assert.Equal(t, []string{
			"First name is required",
			"Last name is required",
			"Email address looks invalid",
			"Phone number is required",
		}, result.Errors)
	})

	t.Run("should accumulate every failure in check order", func(t *testing.T) {
		form := formTemplate()
		form.PickUpDate = nil
		form.LicenseAttached = false
		form.DriverAge = "16"
		form.DrivingExperience = "0"
		form.Delivery = schema.DeliverySelection{}
		form.Email = ""

		result := rules.Validate(form, requirementsTemplate())

		assert.False(t, result.IsValid)
		assert.Equal(t, []string{
			"Pick-up and drop-off dates are required",
			"A copy of the driver license is required for this vehicle",
			"Minimum driver age for this vehicle is 21",
			"This vehicle requires at least 2 years of driving experience",
			"A delivery location or an airport must be selected",
		}, result.BlockingErrors)
		assert.Equal(t, []string{"Email is required"}, result.Errors)

		// runs are deterministic
		assert.Equal(t, result, rules.Validate(form, requirementsTemplate()))
	})

	t.Run("should uphold the isValid invariant", func(t *testing.T) {
		forms := []schema.BookingRequest{
			formTemplate(),
			{},
			{DriverAge: "25"},
		}

		for _, form := range forms {
			result := rules.Validate(form, requirementsTemplate())
			assert.Equal(t, len(result.BlockingErrors) == 0, result.IsValid)
		}
	})
}
