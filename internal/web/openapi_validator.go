package web

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/gin-gonic/gin"

	"bitbucket.org/crgw/booking-engine/internal/tools/middleware"
)

func passthrough(c *gin.Context) {
	c.Next()
}

// OpenapiValidator rejects requests that do not match the API document.
// A missing or broken document disables validation instead of taking the
// service down.
func OpenapiValidator(location string) gin.HandlerFunc {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromFile(location)
	if err != nil {
		return passthrough
	}

	if err := doc.Validate(loader.Context); err != nil {
		return passthrough
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return passthrough
	}

	return func(c *gin.Context) {
		route, pathParams, err := router.FindRoute(c.Request)
		if err != nil {
			// paths outside the document (status, pprof) are not validated
			c.Next()
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    c.Request,
			PathParams: pathParams,
			Route:      route,
			Options: &openapi3filter.Options{
				AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			},
		}

		if err := openapi3filter.ValidateRequest(c.Request.Context(), input); err != nil {
			middleware.HandleError(c, http.StatusBadRequest, "Request does not match the API schema", err)
			c.Abort()
			return
		}
	}
}
