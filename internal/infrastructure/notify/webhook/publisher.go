package webhook

import (
	"context"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/pitchside/leagueday/internal/platform/logging"
	"github.com/pitchside/leagueday/internal/platform/resilience"
	"github.com/pitchside/leagueday/internal/usecase"
)

const defaultTimeout = 10 * time.Second

type PublisherConfig struct {
	Endpoint       string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Publisher delivers lifecycle events to a configured webhook endpoint.
// Delivery is best effort: failures are logged and counted against the
// circuit breaker, never surfaced to the operation that emitted the event.
type Publisher struct {
	client         *fasthttp.Client
	endpoint       string
	token          string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewPublisher(cfg PublisherConfig, logger *logging.Logger) *Publisher {
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Publisher{
		client:         &fasthttp.Client{ReadTimeout: timeout, WriteTimeout: timeout},
		endpoint:       strings.TrimSpace(cfg.Endpoint),
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.Cooldown),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (p *Publisher) Publish(ctx context.Context, event usecase.Event) {
	if p.endpoint == "" {
		return
	}

	deliver := func() error {
		return p.send(event)
	}

	var err error
	if p.circuitEnabled {
		err = p.breaker.Do(deliver)
	} else {
		err = deliver()
	}
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			p.logger.WarnContext(ctx, "webhook delivery skipped, circuit open",
				"event_type", event.Type, "state", p.breaker.State())
			return
		}
		p.logger.WarnContext(ctx, "webhook delivery failed",
			"event_type", event.Type, "error", err)
		return
	}

	p.logger.DebugContext(ctx, "webhook event delivered", "event_type", event.Type)
}

func (p *Publisher) send(event usecase.Event) error {
	body, err := encodeEvent(event)
	if err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(p.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}
	req.SetBody(body)

	if err := p.client.DoTimeout(req, resp, p.timeout); err != nil {
		return crerr.Wrap(err, "send webhook request")
	}

	status := resp.StatusCode()
	if status/100 != 2 {
		return crerr.Newf("webhook endpoint returned status=%d body=%s",
			status, truncateForLog(string(resp.Body()), 1024))
	}

	return nil
}

func encodeEvent(event usecase.Event) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	payload := map[string]any{
		"type":        event.Type,
		"occurred_at": event.OccurredAt.UTC().Format(time.RFC3339Nano),
		"payload":     event.Payload,
	}

	raw, err := sonic.Marshal(payload)
	if err != nil {
		return nil, crerr.Wrap(err, "marshal webhook payload")
	}

	_, _ = buf.Write(raw)
	return append([]byte(nil), buf.Bytes()...), nil
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}
