package colorsvc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"net/url"
	"time"

	// Decoders for image.Decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gofiber/fiber/v2"
	_ "golang.org/x/image/webp"
)

// maxRedirects caps the redirect hops followed per download
const maxRedirects = 5

// ImageFetcher downloads raw image bytes
type ImageFetcher interface {
	Fetch(ctx context.Context, imageURL string) ([]byte, error)
}

// HTTPFetcher downloads images with the fiber client agent
type HTTPFetcher struct {
	client   *fiber.Client
	timeout  time.Duration
	maxBytes int
}

// NewHTTPFetcher creates a fetcher that rejects bodies larger than maxBytes
func NewHTTPFetcher(timeout time.Duration, maxBytes int64) *HTTPFetcher {
	return &HTTPFetcher{
		client:   &fiber.Client{},
		timeout:  timeout,
		maxBytes: int(maxBytes),
	}
}

// Fetch follows redirects and returns the response body of a 2xx answer.
// Each hop gets its own agent so a redirect may point at another host.
func (f *HTTPFetcher) Fetch(ctx context.Context, imageURL string) ([]byte, error) {
	current := imageURL
	for hop := 0; hop <= maxRedirects; hop++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		code, body, location, err := f.get(current)
		if err != nil {
			return nil, fmt.Errorf("download %s: %w", imageURL, err)
		}
		if isRedirect(code) {
			next, err := resolveRedirect(current, location)
			if err != nil {
				return nil, fmt.Errorf("download %s: %w", imageURL, err)
			}
			current = next
			continue
		}
		if code < 200 || code > 299 {
			return nil, fmt.Errorf("download %s: status %d", imageURL, code)
		}
		if f.maxBytes > 0 && len(body) > f.maxBytes {
			return nil, fmt.Errorf("download %s: image larger than %d bytes", imageURL, f.maxBytes)
		}
		return body, nil
	}
	return nil, fmt.Errorf("download %s: more than %d redirects", imageURL, maxRedirects)
}

// get performs a single GET without following redirects
func (f *HTTPFetcher) get(target string) (code int, body []byte, location string, err error) {
	resp := fiber.AcquireResponse()
	defer fiber.ReleaseResponse(resp)

	agent := f.client.Get(target)
	if agent.HostClient != nil {
		agent.HostClient.ReadTimeout = f.timeout
		agent.HostClient.WriteTimeout = f.timeout
		agent.HostClient.MaxResponseBodySize = f.maxBytes
	}
	agent.SetResponse(resp)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return 0, nil, "", errors.Join(errs...)
	}
	return code, body, string(resp.Header.Peek(fiber.HeaderLocation)), nil
}

func isRedirect(code int) bool {
	switch code {
	case fiber.StatusMovedPermanently, fiber.StatusFound, fiber.StatusSeeOther,
		fiber.StatusTemporaryRedirect, fiber.StatusPermanentRedirect:
		return true
	}
	return false
}

// resolveRedirect turns a Location header into an absolute http(s) URL
func resolveRedirect(current, location string) (string, error) {
	if location == "" {
		return "", errors.New("redirect without location")
	}
	base, err := url.Parse(current)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	ref, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("parse redirect location: %w", err)
	}
	next := base.ResolveReference(ref)
	if next.Scheme != "http" && next.Scheme != "https" {
		return "", fmt.Errorf("redirect to unsupported scheme %q", next.Scheme)
	}
	return next.String(), nil
}

// decodeImage decodes png, jpeg, gif and webp data
func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
