package schema

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// BookingRequest is one form submission from the booking screen. Driver age
// and experience arrive as raw form strings and are parsed during
// validation, so a non-numeric value surfaces as a validation failure
// instead of a bind error.
type BookingRequest struct {
	PickUpDate  *openapi_types.Date `json:"pickUpDate"`
	DropOffDate *openapi_types.Date `json:"dropOffDate"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	DriverAge            string `json:"driverAge"`
	DrivingExperience    string `json:"drivingExperience"`
	LicenseAttached      bool   `json:"licenseAttached"`
	InternationalLicense bool   `json:"internationalLicense"`

	Delivery DeliverySelection `json:"delivery"`
}

// VehicleRequirements is the pricing and policy record of one vehicle,
// immutable for the duration of an evaluation.
type VehicleRequirements struct {
	VehicleId                string `json:"vehicleId"`
	PricePerDay              Amount `json:"pricePerDay"`
	Currency                 string `json:"currency"`
	RequireDriverLicense     bool   `json:"requireDriverLicense"`
	MinimumDriverAge         int    `json:"minimumDriverAge"`
	MinimumDrivingExperience int    `json:"minimumDrivingExperience"`
	MinimumRentalDays        int    `json:"minimumRentalDays"`
	RequireDamageDeposit     bool   `json:"requireDamageDeposit"`
	DamageDepositAmount      Amount `json:"damageDepositAmount"`
}

type ValidationResult struct {
	// IsValid is true exactly when BlockingErrors is empty.
	IsValid        bool     `json:"isValid"`
	BlockingErrors []string `json:"blockingErrors"`
	Errors         []string `json:"errors"`
}

type PricingResult struct {
	DayCount int    `json:"dayCount"`
	Currency string `json:"currency"`

	Subtotal                      Amount `json:"subtotal"`
	InternationalLicenseSurcharge Amount `json:"internationalLicenseSurcharge"`

	// DamageDeposit is refundable and therefore never part of Total.
	DamageDeposit Amount `json:"damageDeposit"`
	Total         Amount `json:"total"`

	TotalDisplay         RoundedFloat `json:"totalDisplay"`
	DamageDepositDisplay RoundedFloat `json:"damageDepositDisplay"`
}

type EvaluationResponse struct {
	Validation ValidationResult `json:"validation"`
	Pricing    PricingResult    `json:"pricing"`
}

type CreateBookingParams struct {
	Form         BookingRequest `json:"form"`
	PaymentToken string         `json:"paymentToken"`
}

type BookingResponseStatus string

const (
	BookingResponseStatusConfirmed BookingResponseStatus = "CONFIRMED"
	BookingResponseStatusRejected  BookingResponseStatus = "REJECTED"
	BookingResponseStatusFailed    BookingResponseStatus = "FAILED"
)

type BookingResponse struct {
	Status             BookingResponseStatus    `json:"status"`
	BookingReference   *string                  `json:"bookingReference,omitempty"`
	ProcessorReference *string                  `json:"processorReference,omitempty"`
	Validation         *ValidationResult        `json:"validation,omitempty"`
	Pricing            *PricingResult           `json:"pricing,omitempty"`
	ProcessorRequests  *ProcessorRequests       `json:"processorRequests,omitempty"`
	Errors             *ProcessorResponseErrors `json:"errors,omitempty"`
}
