package booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	bookingMiddleware "bitbucket.org/crgw/booking-engine/internal/booking/middleware"
	"bitbucket.org/crgw/booking-engine/internal/fleet"
	"bitbucket.org/crgw/booking-engine/internal/payments"
	"bitbucket.org/crgw/booking-engine/internal/rules"
	"bitbucket.org/crgw/booking-engine/internal/schema"
	"bitbucket.org/crgw/booking-engine/internal/tools/converting"
	"bitbucket.org/crgw/booking-engine/internal/tools/middleware"
	"bitbucket.org/crgw/booking-engine/internal/tools/slowlog"
)

type Deps struct {
	Fleet    fleet.Repository
	Payments payments.Processor
	Bookings Store
	Policy   rules.Policy
	Limiter  *bookingMiddleware.ClientLimiter
}

func RegisterRoutes(router *gin.Engine, deps Deps) {
	router.GET("/airports", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, schema.Airports)
	})

	group := router.Group("/vehicles/:vehicleId")

	group.POST("/evaluate",
		bookingMiddleware.RateLimit(deps.Limiter),
		bookingMiddleware.PrepareParams(schema.BookingRequest{}),
		func(ctx *gin.Context) {
			logger := ctx.MustGet("logger").(*zerolog.Logger)

			slowLog := slowlog.CreateLogger(logger)
			key := fmt.Sprintf("booking:evaluate:%s", ctx.Params.ByName("vehicleId"))
			slowLog.Start(key)

			form, ok := ctx.MustGet(bookingMiddleware.ParamsKey).(*schema.BookingRequest)
			if !ok {
				middleware.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			requirements, done := requirementsOrFail(ctx, deps)
			if done {
				return
			}

			ctx.JSON(http.StatusOK, schema.EvaluationResponse{
				Validation: rules.Validate(*form, requirements),
				Pricing:    rules.Price(priceInput(*form, requirements, deps.Policy)),
			})

			slowLog.Stop(key)
		},
	)

	group.POST("/quote",
		bookingMiddleware.RateLimit(deps.Limiter),
		bookingMiddleware.PrepareParams(schema.BookingRequest{}),
		func(ctx *gin.Context) {
			form, ok := ctx.MustGet(bookingMiddleware.ParamsKey).(*schema.BookingRequest)
			if !ok {
				middleware.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			requirements, done := requirementsOrFail(ctx, deps)
			if done {
				return
			}

			ctx.JSON(http.StatusOK, rules.Price(priceInput(*form, requirements, deps.Policy)))
		},
	)

	group.POST("/booking",
		bookingMiddleware.PrepareParams(schema.CreateBookingParams{}),
		func(ctx *gin.Context) {
			logger := ctx.MustGet("logger").(*zerolog.Logger)

			params, ok := ctx.MustGet(bookingMiddleware.ParamsKey).(*schema.CreateBookingParams)
			if !ok {
				middleware.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			requirements, done := requirementsOrFail(ctx, deps)
			if done {
				return
			}

			response, err := createBooking(ctx, deps, *params, requirements, logger)
			if err != nil {
				middleware.HandleError(ctx, http.StatusInternalServerError, "Failed creating booking", nil)
				return
			}

			if response.Status == schema.BookingResponseStatusRejected {
				ctx.JSON(http.StatusUnprocessableEntity, response)
				return
			}

			ctx.JSON(http.StatusOK, response)
		},
	)
}

// requirementsOrFail loads the vehicle record and writes the error response
// itself when that fails. The boolean tells the handler to stop.
func requirementsOrFail(ctx *gin.Context, deps Deps) (*schema.VehicleRequirements, bool) {
	vehicleId := ctx.Params.ByName("vehicleId")

	requirements, err := deps.Fleet.RequirementsFor(ctx.Request.Context(), vehicleId)
	if err != nil {
		if errors.Is(err, fleet.ErrVehicleNotFound) {
			middleware.HandleError(ctx, http.StatusNotFound, "Vehicle not found", err)
			return nil, true
		}

		middleware.HandleError(ctx, http.StatusInternalServerError, "Failed loading vehicle requirements", nil)
		return nil, true
	}

	return requirements, false
}

func priceInput(form schema.BookingRequest, requirements *schema.VehicleRequirements, policy rules.Policy) rules.PriceInput {
	return rules.PriceInput{
		PickUpDate:           form.PickUpDate,
		DropOffDate:          form.DropOffDate,
		PricePerDay:          requirements.PricePerDay,
		Currency:             requirements.Currency,
		InternationalLicense: form.InternationalLicense,
		RequireDamageDeposit: requirements.RequireDamageDeposit,
		DamageDepositAmount:  requirements.DamageDepositAmount,
		Policy:               policy,
	}
}

func createBooking(
	ctx *gin.Context,
	deps Deps,
	params schema.CreateBookingParams,
	requirements *schema.VehicleRequirements,
	logger *zerolog.Logger,
) (schema.BookingResponse, error) {
	validation := rules.Validate(params.Form, requirements)
	if !validation.IsValid {
		return schema.BookingResponse{
			Status:     schema.BookingResponseStatusRejected,
			Validation: &validation,
		}, nil
	}

	pricing := rules.Price(priceInput(params.Form, requirements, deps.Policy))
	reference := uuid.New().String()

	intent := Intent{
		Reference:   reference,
		VehicleId:   requirements.VehicleId,
		PickUpDate:  converting.Unwrap(params.Form.PickUpDate).Time,
		DropOffDate: converting.Unwrap(params.Form.DropOffDate).Time,
		Email:       params.Form.Email,
		Total:       pricing.Total,
		Currency:    pricing.Currency,
	}

	if err := deps.Bookings.CreateIntent(ctx.Request.Context(), intent); err != nil {
		logger.Err(err).Msg("Unable to persist booking intent")
		return schema.BookingResponse{}, err
	}

	capture, err := deps.Payments.Capture(ctx.Request.Context(), payments.CaptureParams{
		PaymentToken:     params.PaymentToken,
		Amount:           pricing.Total,
		Currency:         pricing.Currency,
		BookingReference: reference,
	}, logger)
	if err != nil {
		return schema.BookingResponse{}, err
	}

	response := schema.BookingResponse{
		BookingReference:   &reference,
		ProcessorReference: capture.ProcessorReference,
		Validation:         &validation,
		Pricing:            &pricing,
		ProcessorRequests:  capture.ProcessorRequests,
		Errors:             capture.Errors,
	}

	if capture.Status != payments.CaptureStatusCaptured {
		response.Status = schema.BookingResponseStatusFailed
		if err := deps.Bookings.UpdateStatus(ctx.Request.Context(), reference, IntentStatusFailed); err != nil {
			logger.Err(err).Msg("Unable to mark booking intent failed")
		}
		return response, nil
	}

	response.Status = schema.BookingResponseStatusConfirmed
	if err := deps.Bookings.UpdateStatus(ctx.Request.Context(), reference, IntentStatusConfirmed); err != nil {
		logger.Err(err).Msg("Unable to mark booking intent confirmed")
	}

	return response, nil
}
