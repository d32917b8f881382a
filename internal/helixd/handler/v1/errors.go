package v1

import (
	"net/http"

	"github.com/kiosk404/helix/pkg/errorx"
)

// Helix handler error codes.
// Code format: 1XXYYZ
//   - 1:  module prefix (helixd handler)
//   - XX: resource group (00=common, 01=search, 02=run)
//   - YY: sequential error number
//   - Z:  reserved (0)

const (
	// Common request errors (100xxx).
	ErrBind       = 100001
	ErrValidation = 100002

	// Search errors (1001xx).
	ErrSearchFailed = 100101

	// Run errors (1002xx).
	ErrRunNotFound = 100201
	ErrRunList     = 100202
)

func init() {
	// Common.
	errorx.MustRegister(newCoder(ErrBind, http.StatusBadRequest, "Request body binding failed"))
	errorx.MustRegister(newCoder(ErrValidation, http.StatusBadRequest, "Request validation failed"))

	// Search.
	errorx.MustRegister(newCoder(ErrSearchFailed, http.StatusInternalServerError, "Search request failed"))

	// Run.
	errorx.MustRegister(newCoder(ErrRunNotFound, http.StatusNotFound, "Run not found"))
	errorx.MustRegister(newCoder(ErrRunList, http.StatusInternalServerError, "Failed to list runs"))
}

type coder struct {
	code int
	http int
	msg  string
}

func newCoder(code, httpStatus int, msg string) *coder {
	return &coder{code: code, http: httpStatus, msg: msg}
}

func (c *coder) Code() int         { return c.code }
func (c *coder) HTTPStatus() int   { return c.http }
func (c *coder) String() string    { return c.msg }
func (c *coder) Reference() string { return "" }
