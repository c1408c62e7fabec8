package httpclient

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/promokit/voucheradmin/internal/credentials"
	ierr "github.com/promokit/voucheradmin/internal/errors"
	"github.com/promokit/voucheradmin/internal/logger"
)

// AuthenticatedClient decorates a Client with credential injection and
// centralized error normalization. Every outbound request re-reads the
// provider, so a token cleared mid-session stops being sent immediately.
// It never retries; retry policy lives in the cached repository.
type AuthenticatedClient struct {
	next   Client
	creds  credentials.Provider
	logger *logger.Logger
}

func NewAuthenticatedClient(next Client, creds credentials.Provider, logger *logger.Logger) Client {
	return &AuthenticatedClient{
		next:   next,
		creds:  creds,
		logger: logger,
	}
}

func (c *AuthenticatedClient) Send(ctx context.Context, req *Request) (*Response, error) {
	if req.Headers == nil {
		req.Headers = make(map[string]string)
	}
	if token := c.creds.Token(); token != "" {
		req.Headers["Authorization"] = "Bearer " + token
	}
	if username := c.creds.Username(); username != "" {
		req.Headers["X-Username"] = username
	}

	resp, err := c.next.Send(ctx, req)
	if err != nil {
		return nil, c.normalize(req, err)
	}
	return resp, nil
}

// normalize maps the three failure shapes onto the error taxonomy: a
// structured error body is decoded and logged with its trace id (401
// additionally clears the stored token, no redirect), a transport
// failure is logged and passed on, and anything else propagates as is.
func (c *AuthenticatedClient) normalize(req *Request, err error) error {
	if httpErr, ok := IsHTTPError(err); ok {
		var body ierr.ErrorResponse
		message := "An error occurred"
		if jsonErr := json.Unmarshal(httpErr.Response, &body); jsonErr == nil && body.Message != "" {
			message = body.Message
		}

		c.logger.Errorw("voucher api error",
			"method", req.Method,
			"url", req.URL,
			"status", httpErr.StatusCode,
			"message", message,
			"trace_id", body.TraceID,
		)

		if httpErr.StatusCode == http.StatusUnauthorized {
			if clearErr := c.creds.ClearToken(); clearErr != nil {
				c.logger.Errorw("failed to clear stored token", "error", clearErr)
			}
		}

		return ierr.WithError(httpErr).
			WithHint(message).
			WithReportableDetails(map[string]any{
				"trace_id": body.TraceID,
				"path":     body.Path,
			}).
			Mark(sentinelForStatus(httpErr.StatusCode))
	}

	if ierr.IsNetwork(err) {
		c.logger.Errorw("network error",
			"method", req.Method,
			"url", req.URL,
			"error", err,
		)
	}

	return err
}

func sentinelForStatus(status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ierr.ErrPermissionDenied
	case http.StatusNotFound:
		return ierr.ErrNotFound
	case http.StatusConflict:
		return ierr.ErrAlreadyExists
	case http.StatusBadRequest:
		return ierr.ErrValidation
	default:
		return ierr.ErrHTTPClient
	}
}
