package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"hello-api/internal/service"
)

// RelayHandler answers GET /api with the upstream resource.
type RelayHandler struct {
	service *service.RelayService
	logger  *slog.Logger
}

// NewRelayHandler creates a RelayHandler.
func NewRelayHandler(svc *service.RelayService, logger *slog.Logger) *RelayHandler {
	return &RelayHandler{
		service: svc,
		logger:  logger.With("component", "relay_handler"),
	}
}

// Handle fetches the upstream resource once and relays it.
//
// An upstream 200 is relayed as JSON. Any other upstream status still
// answers 200, with the code reported only in the plain-text body.
func (h *RelayHandler) Handle(c echo.Context) error {
	res, err := h.service.Fetch(c.Request().Context())
	if err != nil {
		return h.mapError(c, err)
	}

	if !res.OK() {
		return c.String(http.StatusOK, fmt.Sprintf("API Request Failed with Status Code: %d", res.StatusCode))
	}

	return c.JSON(http.StatusOK, res.Payload)
}

func (h *RelayHandler) mapError(c echo.Context, err error) error {
	h.logger.Error("relay error",
		"err", err,
		"path", c.Request().URL.Path,
	)

	if errors.Is(err, service.ErrInvalidPayload) {
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "upstream returned invalid JSON",
		})
	}

	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return c.JSON(http.StatusGatewayTimeout, map[string]string{
			"error": "upstream request timed out",
		})
	}

	if errors.Is(err, context.Canceled) {
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "client disconnected",
		})
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "upstream host unreachable",
		})
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "upstream connection failed",
		})
	}

	return c.JSON(http.StatusBadGateway, map[string]string{
		"error": "upstream request failed",
	})
}

// isTimeout reports whether err is a net.Error timeout, which is how
// http.Client reports its own Timeout elapsing.
func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
