// Package core provides the shared response writer for gin handlers.
package core

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kiosk404/helix/pkg/errorx"
	"github.com/kiosk404/helix/pkg/logger"
)

// ErrResponse is the body returned for any failed request.
type ErrResponse struct {
	// Code is the registered business error code.
	Code int `json:"code"`

	// Message is the user-safe description of the failure.
	Message string `json:"message"`

	// Reference optionally points at a document describing the error.
	Reference string `json:"reference,omitempty"`
}

// WriteResponse writes either an error response (resolved through the errorx
// coder registry) or the success payload.
func WriteResponse(c *gin.Context, err error, data interface{}) {
	if err != nil {
		coder := errorx.ParseCoder(err)
		logger.Error("[HTTP] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(coder.HTTPStatus(), ErrResponse{
			Code:      coder.Code(),
			Message:   coder.String(),
			Reference: coder.Reference(),
		})
		return
	}

	c.JSON(http.StatusOK, data)
}
