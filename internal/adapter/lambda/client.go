package lambda

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/cmb-spectrum/internal/domain"
)

// maxBodyBytes bounds the response body. The published file is about 4 KiB;
// anything larger is rejected rather than truncated.
const maxBodyBytes = 1 << 20

// Client fetches the FIRAS monopole spectrum from the LAMBDA archive.
// It implements pipeline.SpectrumSource.
type Client struct {
	httpClient *http.Client
	url        string
	userAgent  string
	logger     *slog.Logger
}

// NewClient creates a LAMBDA client. The timeout bounds the whole request,
// including reading the body.
func NewClient(url, userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		url:       url,
		userAgent: userAgent,
		logger:    logger,
	}
}

// FetchSpectrum performs a single GET of the spectrum file and parses it.
func (c *Client) FetchSpectrum(ctx context.Context) (domain.ObservationTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("requesting spectrum", "url", c.url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spectrum request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("lambda archive error: status %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read spectrum: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("spectrum body exceeds %d bytes", maxBodyBytes)
	}

	table, err := ParseMonopole(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse spectrum: %w", err)
	}
	return table, nil
}
