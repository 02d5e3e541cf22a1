// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"farerail/internal/catalog"
	"farerail/internal/modules/pricing"
)

// CatalogReader exposes the currently published snapshot.
type CatalogReader interface {
	Current() *catalog.Snapshot
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Detail: msg})
}

func writePricingError(c *gin.Context, err error) {
	var verr *pricing.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(c, http.StatusBadRequest, verr.Error())
	case errors.Is(err, pricing.ErrSameStation):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, pricing.ErrNoFareRoute):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, pricing.ErrCatalogUnavailable):
		_ = c.Error(err)
		writeError(c, http.StatusServiceUnavailable, err.Error())
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// bindError turns a JSON decoding failure into a field-level validation error where possible.
func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &pricing.ValidationError{Field: typeErr.Field, Reason: "has the wrong type, expected " + typeErr.Type.String()}
	}
	if errors.Is(err, io.EOF) {
		return &pricing.ValidationError{Field: "body", Reason: "is empty"}
	}
	return &pricing.ValidationError{Field: "body", Reason: "is not valid JSON"}
}

// snapshot writes 503 and returns nil when no catalog is loaded.
func snapshot(c *gin.Context, cat CatalogReader) *catalog.Snapshot {
	snap := cat.Current()
	if snap == nil {
		writePricingError(c, pricing.ErrCatalogUnavailable)
	}
	return snap
}
