// Package rules holds the booking eligibility and pricing rules of the
// marketplace. Both entry points are pure functions over their inputs: they
// never touch storage or the network, and malformed input degrades to a
// result instead of an error.
package rules

import (
	"fmt"
	"strconv"
	"strings"

	"bitbucket.org/crgw/booking-engine/internal/schema"
)

// MessageLoadingRequirements is the sentinel returned while the vehicle
// record has not arrived yet. It is not a policy failure.
const MessageLoadingRequirements = "Loading requirements..."

// Validate runs every eligibility check of one booking form against one
// vehicle's requirements and reports all failures together, blocking policy
// violations partitioned from advisory field issues. Check order is fixed,
// so identical input always produces an identical result.
func Validate(form schema.BookingRequest, requirements *schema.VehicleRequirements) schema.ValidationResult {
	if requirements == nil {
		return schema.ValidationResult{
			IsValid:        false,
			BlockingErrors: []string{MessageLoadingRequirements},
			Errors:         []string{},
		}
	}

	blocking := []string{}
	advisory := []string{}

	blocking = append(blocking, checkTripWindow(form, requirements)...)

	if requirements.RequireDriverLicense && !form.LicenseAttached {
		blocking = append(blocking, "A copy of the driver license is required for this vehicle")
	}

	blocking = append(blocking, checkDriverAge(form.DriverAge, requirements.MinimumDriverAge)...)
	blocking = append(blocking, checkDrivingExperience(form.DrivingExperience, requirements.MinimumDrivingExperience)...)

	if !form.Delivery.IsSet() {
		blocking = append(blocking, "A delivery location or an airport must be selected")
	}

	advisory = append(advisory, checkContactFields(form)...)

	return schema.ValidationResult{
		IsValid:        len(blocking) == 0,
		BlockingErrors: blocking,
		Errors:         advisory,
	}
}

func checkTripWindow(form schema.BookingRequest, requirements *schema.VehicleRequirements) []string {
	if form.PickUpDate == nil || form.DropOffDate == nil {
		return []string{"Pick-up and drop-off dates are required"}
	}

	if !form.DropOffDate.Time.After(form.PickUpDate.Time) {
		return []string{"Drop-off date must be after the pick-up date"}
	}

	days := RentalDays(form.PickUpDate, form.DropOffDate)
	if days < requirements.MinimumRentalDays {
		return []string{fmt.Sprintf(
			"This vehicle is rented out for at least %d days, selected period is %d",
			requirements.MinimumRentalDays,
			days,
		)}
	}

	return nil
}

func checkDriverAge(raw string, minimumAge int) []string {
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return []string{"Driver age must be a number"}
	}

	if age < minimumAge {
		return []string{fmt.Sprintf("Minimum driver age for this vehicle is %d", minimumAge)}
	}

	return nil
}

func checkDrivingExperience(raw string, minimumYears int) []string {
	years, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return []string{"Driving experience must be a number"}
	}

	if years < minimumYears {
		return []string{fmt.Sprintf("This vehicle requires at least %d years of driving experience", minimumYears)}
	}

	return nil
}

// Contact fields can still be completed at a later step, so their omission
// never blocks submission.
func checkContactFields(form schema.BookingRequest) []string {
	issues := []string{}

	if strings.TrimSpace(form.FirstName) == "" {
		issues = append(issues, "First name is required")
	}

	if strings.TrimSpace(form.LastName) == "" {
		issues = append(issues, "Last name is required")
	}

	email := strings.TrimSpace(form.Email)
	if email == "" {
		issues = append(issues, "Email is required")
	} else if !strings.Contains(email, "@") {
		issues = append(issues, "Email address looks invalid")
	}

	if strings.TrimSpace(form.Phone) == "" {
		issues = append(issues, "Phone number is required")
	}

	return issues
}
