// internal/adapters/providers/client.go
package providers

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotel_registry/internal/adapters/observability"
	"hotel_registry/internal/domain"
)

const maxAttempts = 4

// Client talks JSON to the provider service. Every failure other than a 404
// is reported wrapped in domain.ErrCommunication.
type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("provider service base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 10 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

type providerDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (d providerDTO) toDomain() domain.Provider {
	return domain.Provider{ID: d.ID, Name: d.Name, Email: d.Email, Phone: d.Phone}
}

func (c *Client) GetProvider(ctx context.Context, id int64) (domain.Provider, error) {
	var out providerDTO
	if err := c.do(ctx, http.MethodGet, "detail", fmt.Sprintf("%s/%d", c.base, id), nil, &out); err != nil {
		return domain.Provider{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) CreateProvider(ctx context.Context, p domain.Provider) (domain.Provider, error) {
	body, err := json.Marshal(providerDTO{Name: p.Name, Email: p.Email, Phone: p.Phone})
	if err != nil {
		return domain.Provider{}, err
	}
	var out providerDTO
	if err := c.do(ctx, http.MethodPost, "create", c.base, body, &out); err != nil {
		return domain.Provider{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) ProvidersByIDs(ctx context.Context, ids []int64) ([]domain.Provider, error) {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	u := c.base + "/by-resource?" + url.Values{"ids": {strings.Join(parts, ",")}}.Encode()

	var out []providerDTO
	if err := c.do(ctx, http.MethodGet, "by_resource", u, nil, &out); err != nil {
		return nil, err
	}
	ps := make([]domain.Provider, len(out))
	for i, d := range out {
		ps[i] = d.toDomain()
	}
	return ps, nil
}

// ---- Internals ----

func commErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrCommunication, fmt.Sprintf(format, args...))
}

// do sends one request with client-side rate limiting and decodes JSON into
// out. GETs retry on network errors, 429 and transient 5xx, honoring
// Retry-After; POSTs are attempted once.
func (c *Client) do(ctx context.Context, method, endpoint, target string, body []byte, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return commErr("rate limiter: %v", err)
	}
	attempts := maxAttempts
	if method != http.MethodGet {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		// build a fresh request each attempt
		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, rd)
		if err != nil {
			return commErr("build request: %v", err)
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("User-Agent", "hotel-registry/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("providers", endpoint, 0, time.Since(start))
			if ctx.Err() != nil {
				return commErr("%v", ctx.Err())
			}
			lastErr = commErr("%v", err)
			if i < attempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			return lastErr
		}
		observability.ObserveExternal("providers", endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return commErr("decode response: %v", err)
			}
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			return domain.ErrNotFound

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = commErr("remote %d", resp.StatusCode)
			if i < attempts-1 && sleepCtx(ctx, wait) {
				continue
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return commErr("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}
	if lastErr == nil {
		lastErr = errors.New("no attempt made")
	}
	return lastErr
}

// sleepCtx waits for d or returns false early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date); 0 if absent or invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 100ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 100 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
