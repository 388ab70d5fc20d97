package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// HandleError logs the failure on the request logger and writes the error
// response. Callers abort the chain themselves when needed.
func HandleError(c *gin.Context, status int, message string, err error) {
	if value, ok := c.Get("logger"); ok {
		logger := value.(*zerolog.Logger)
		logger.Error().Err(err).Int("code", status).Msg(message)
	}

	response := ErrorResponse{Message: message}
	if err != nil {
		response.Detail = err.Error()
	}

	c.JSON(status, response)
}
