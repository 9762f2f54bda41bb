
package crawler

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"abit-rating/internal/models"
)

const DefaultUserAgent = "abit-rating/1.0"

var (
	ErrInvalidURL = errors.New("invalid url")
	ErrNonHTML    = errors.New("non-html content")
	ErrTooLarge   = errors.New("page exceeds size cap")
)

// StatusError is returned for responses outside the 2xx/3xx range.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: http status %d", e.URL, e.Code)
}

type HTTPClient struct {
	client    *http.Client
	sizeCap   int64
	userAgent string
}

func NewHTTPClient(timeout, dialTimeout time.Duration, sizeCap int64, userAgent string) *HTTPClient {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		// gzip is negotiated and decoded below
		DisableCompression: true,
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		sizeCap:   sizeCap,
		userAgent: userAgent,
	}
}

// Fetch downloads rawURL and returns the whole page in memory.
func (h *HTTPClient) Fetch(ctx context.Context, rawURL string) (models.Document, error) {
	start := time.Now()
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return models.Document{}, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return models.Document{}, err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return models.Document{}, fmt.Errorf("GET %s: %w", u, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return models.Document{}, &StatusError{URL: u.String(), Code: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType != "" && !strings.Contains(mediaType, "text/html") && !strings.Contains(mediaType, "application/xhtml+xml") {
		return models.Document{}, fmt.Errorf("%w: %s", ErrNonHTML, mediaType)
	}

	var body io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return models.Document{}, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		body = gz
	}

	// read one byte past the cap to detect truncation
	data, err := io.ReadAll(io.LimitReader(body, h.sizeCap+1))
	if err != nil {
		return models.Document{}, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > h.sizeCap {
		return models.Document{}, fmt.Errorf("%w (%d bytes)", ErrTooLarge, h.sizeCap)
	}

	return models.Document{
		Body:        data,
		SourceURL:   resp.Request.URL.String(),
		ContentType: contentType,
		Fetch:       time.Since(start),
	}, nil
}
