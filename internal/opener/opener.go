// Package opener relays the applied color back to whoever launched the picker.
package opener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"paintpick/internal/domain"
)

// ErrClosed is returned when posting to an opener that is gone
var ErrClosed = errors.New("opener is closed")

// Opener is the channel back to the launching context
type Opener interface {
	// Live reports whether the opener can currently receive a message
	Live(ctx context.Context) bool
	// Post delivers the message
	Post(ctx context.Context, msg domain.ColorMessage) error
}

// HTTPOpener posts messages to the opener's HTTP endpoint. Messages only ever go to
// the configured URL.
type HTTPOpener struct {
	client  *fiber.Client
	url     string
	origin  string
	timeout time.Duration
}

// NewHTTPOpener creates an opener for the given URL
func NewHTTPOpener(url, origin string, timeout time.Duration) *HTTPOpener {
	return &HTTPOpener{
		client:  &fiber.Client{UserAgent: "paintpick"},
		url:     url,
		origin:  origin,
		timeout: timeout,
	}
}

// Live probes the opener endpoint; any answer below 500 counts as live
func (o *HTTPOpener) Live(ctx context.Context) bool {
	if o.url == "" || ctx.Err() != nil {
		return false
	}

	agent := o.client.Get(o.url)
	if o.timeout > 0 {
		agent = agent.Timeout(o.timeout)
	}
	code, _, errs := agent.Bytes()
	return len(errs) == 0 && code < 500
}

// Post sends the message as JSON
func (o *HTTPOpener) Post(ctx context.Context, msg domain.ColorMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	agent := o.client.Post(o.url).JSON(msg)
	if o.origin != "" {
		agent = agent.Set(fiber.HeaderOrigin, o.origin)
	}
	if o.timeout > 0 {
		agent = agent.Timeout(o.timeout)
	}

	code, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("failed to post to opener: %w", errors.Join(errs...))
	}
	if code < 200 || code > 299 {
		return fmt.Errorf("opener answered %d", code)
	}
	return nil
}

// WriterOpener writes each message as one JSON line
type WriterOpener struct {
	mu     sync.Mutex
	w      io.Writer
	closed bool
}

// NewWriterOpener creates an opener writing to w
func NewWriterOpener(w io.Writer) *WriterOpener {
	return &WriterOpener{w: w}
}

// Live is true until Close is called
func (o *WriterOpener) Live(ctx context.Context) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return !o.closed
}

// Post writes the message
func (o *WriterOpener) Post(ctx context.Context, msg domain.ColorMessage) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrClosed
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	data = append(data, '\n')
	if _, err := o.w.Write(data); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

// Close marks the opener as gone
func (o *WriterOpener) Close() {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()
}

type noOpener struct{}

// None returns an opener that is never live, used when the picker runs standalone
func None() Opener {
	return noOpener{}
}

func (noOpener) Live(context.Context) bool { return false }

func (noOpener) Post(context.Context, domain.ColorMessage) error { return ErrClosed }
