// Package service implements the fetch-and-relay logic behind GET /api.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"hello-api/internal/client"
	"hello-api/internal/config"
	"hello-api/internal/model"
)

// ErrInvalidPayload is returned when the upstream answers 200 with a body
// that is not a JSON object or array.
var ErrInvalidPayload = errors.New("upstream returned invalid JSON")

const userAgent = "hello-api/1.0"

// maxDrainBytes caps how much of a discarded body is read so the
// connection can be reused.
const maxDrainBytes = 64 << 10

// RelayService fetches the configured upstream resource.
type RelayService struct {
	client *client.UpstreamClient
	url    string
	logger *slog.Logger
}

// NewRelayService creates a RelayService for cfg.Upstream.URL.
func NewRelayService(c *client.UpstreamClient, cfg *config.Config, logger *slog.Logger) *RelayService {
	return &RelayService{
		client: c,
		url:    cfg.Upstream.URL,
		logger: logger.With("component", "relay_service"),
	}
}

// URL returns the upstream resource this service relays.
func (s *RelayService) URL() string {
	return s.url
}

// Fetch performs one GET against the upstream.
//
// A non-200 status is not an error: the result carries the status and no
// payload. A 200 whose body is not a JSON object or array yields an error
// wrapping ErrInvalidPayload. Transport failures are returned wrapped.
func (s *RelayService) Fetch(ctx context.Context) (*model.RelayResult, error) {
	header := make(http.Header)
	header.Set("Accept", "application/json")
	header.Set("User-Agent", userAgent)

	resp, err := s.client.Get(ctx, s.url, header)
	if err != nil {
		return nil, fmt.Errorf("fetch upstream: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("upstream returned non-OK status", "status", resp.StatusCode)
		_, _ = io.CopyN(io.Discard, resp.Body, maxDrainBytes)
		return &model.RelayResult{StatusCode: resp.StatusCode}, nil
	}

	doc, err := decodeDocument(resp.Body)
	if err != nil {
		return nil, err
	}

	return &model.RelayResult{StatusCode: resp.StatusCode, Payload: doc}, nil
}

// decodeDocument reads exactly one JSON object or array from r. Numbers are
// kept as json.Number so re-encoding does not alter them.
func decodeDocument(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	switch doc.(type) {
	case map[string]any, []any:
	case nil:
		return nil, fmt.Errorf("%w: body is null", ErrInvalidPayload)
	default:
		return nil, fmt.Errorf("%w: body is a %T, not an object or array", ErrInvalidPayload, doc)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", ErrInvalidPayload)
	}
	return doc, nil
}
