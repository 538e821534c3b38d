// Package webhook posts rendered card payloads to a Google Chat incoming
// webhook. Every dispatch is a single attempt; a failed send is reported to
// the caller instead of being retried, so a flaky webhook never produces
// duplicate chat notifications.
package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/taskwire/taskwire/engine/card"
	"github.com/taskwire/taskwire/pkg/logger"
	"github.com/taskwire/taskwire/pkg/version"
)

const (
	// DefaultTimeout bounds the whole webhook request.
	DefaultTimeout = 15 * time.Second
	// DefaultConnectTimeout bounds connection establishment.
	DefaultConnectTimeout = 10 * time.Second
)

// Config controls the outbound webhook client.
type Config struct {
	// URL is the Google Chat webhook endpoint. When empty every dispatch
	// fails fast with a configuration error and no network call is made.
	URL string
	// Timeout bounds the whole request. Zero means DefaultTimeout.
	Timeout time.Duration
	// ConnectTimeout bounds connection establishment. Zero means
	// DefaultConnectTimeout.
	ConnectTimeout time.Duration
}

// Result is the structured outcome returned to tool callers. Failures are
// carried in Message; Dispatch never surfaces a bare error.
type Result struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	HTTPStatus *int   `json:"http_status,omitempty"`
}

// Dispatcher posts card payloads to the configured webhook URL.
type Dispatcher struct {
	client  *resty.Client
	url     string
	metrics *Metrics
}

// NewDispatcher builds a dispatcher with bounded connect and overall
// timeouts. metrics may be nil.
func NewDispatcher(cfg Config, metrics *Metrics) *Dispatcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "taskwire/"+version.GetVersion()).
		SetTransport(&http.Transport{
			DialContext:         (&net.Dialer{Timeout: connectTimeout}).DialContext,
			TLSHandshakeTimeout: connectTimeout,
		})
	return &Dispatcher{
		client:  client,
		url:     strings.TrimSpace(cfg.URL),
		metrics: metrics,
	}
}

// Dispatch posts the payload to the webhook and reports the outcome. A 2xx
// response maps to success, anything else to a failure message carrying the
// status code and response body.
func (d *Dispatcher) Dispatch(ctx context.Context, domainKey string, payload *card.Payload) Result {
	log := logger.FromContext(ctx)
	if d.url == "" {
		log.Warn("GOOGLE_CHAT_WEBHOOK_URL environment variable not set")
		d.metrics.RecordDispatch(ctx, domainKey, OutcomeConfigError, 0, 0)
		return Result{Success: false, Message: "GOOGLE_CHAT_WEBHOOK_URL is not set"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Error("Failed to encode card payload", "error", err)
		d.metrics.RecordDispatch(ctx, domainKey, OutcomeTransportError, 0, 0)
		return Result{Success: false, Message: fmt.Sprintf("Request error: %s", err)}
	}
	size := len(body)

	log.Info("Sending message to Google Chat webhook", "domain", domainKey)
	start := time.Now()
	resp, err := d.client.R().SetContext(ctx).SetBody(body).Post(d.url)
	elapsed := time.Since(start)
	if err != nil {
		log.Error("Request error while sending message", "error", err)
		d.metrics.RecordDispatch(ctx, domainKey, OutcomeTransportError, elapsed, size)
		return Result{Success: false, Message: fmt.Sprintf("Request error: %s", err)}
	}

	status := resp.StatusCode()
	if status >= 200 && status < 300 {
		log.Info("Message sent successfully", "status", status)
		d.metrics.RecordDispatch(ctx, domainKey, OutcomeSuccess, elapsed, size)
		return Result{Success: true, Message: "Message sent", HTTPStatus: &status}
	}

	log.Error("Failed to send message", "status", status, "body", resp.String())
	d.metrics.RecordDispatch(ctx, domainKey, OutcomeHTTPError, elapsed, size)
	return Result{
		Success:    false,
		Message:    fmt.Sprintf("HTTP %d: %s", status, resp.String()),
		HTTPStatus: &status,
	}
}
