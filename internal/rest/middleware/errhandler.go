package middleware

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	ierr "github.com/promokit/voucheradmin/internal/errors"
	"github.com/promokit/voucheradmin/internal/types"
)

// ErrorHandler translates errors attached to the gin context into the
// shared wire error shape, with the request id doubling as the trace id.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err

			response := ierr.ErrorResponse{
				Code:      codeForErr(err),
				Message:   getDisplayMessage(err),
				Details:   getSafeDetails(err),
				Timestamp: time.Now().UTC(),
				Path:      c.Request.URL.Path,
				TraceID:   types.GetRequestID(c.Request.Context()),
			}

			c.JSON(ierr.HTTPStatusFromErr(err), response)
		}
	}
}

func codeForErr(err error) string {
	var internal *ierr.InternalError
	if errors.As(err, &internal) {
		return internal.Code
	}
	switch {
	case ierr.IsValidation(err):
		return ierr.ErrCodeValidation
	case ierr.IsNotFound(err):
		return ierr.ErrCodeNotFound
	case ierr.IsAlreadyExists(err):
		return ierr.ErrCodeAlreadyExists
	case ierr.IsPermissionDenied(err):
		return ierr.ErrCodePermissionDenied
	case ierr.IsNetwork(err):
		return ierr.ErrCodeNetwork
	case ierr.IsHTTPClient(err):
		return ierr.ErrCodeHTTPClient
	default:
		return ierr.ErrCodeSystemError
	}
}

func getDisplayMessage(err error) string {
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		// Get the first non-empty hint - GetAllHints is post-order traversal
		for _, hint := range hints {
			if hint = strings.TrimSpace(hint); hint != "" {
				return hint
			}
		}
	}

	return "An unexpected error occurred"
}

func getSafeDetails(err error) map[string]string {
	details := make(map[string]string)

	allSafeDetails := errors.GetAllSafeDetails(err)
	for _, sdp := range allSafeDetails {
		for _, payload := range sdp.SafeDetails {
			if len(payload) > 9 && strings.HasPrefix(payload, "__json__:") {
				var jsonDetails map[string]any
				if err := json.Unmarshal([]byte(payload[9:]), &jsonDetails); err == nil {
					for k, v := range jsonDetails {
						if s, ok := v.(string); ok {
							details[k] = s
						}
					}
				}
			}
		}
	}

	if len(details) == 0 {
		return nil
	}
	return details
}
