// Package fetcher provides the HTTP implementation of the feed's page Fetcher. It
// talks to the around-listing endpoint of the API server and guards it with a
// circuit breaker.
package fetcher

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"booksaetong/internal/domain/entity"
	"booksaetong/internal/feed"
	"booksaetong/internal/resilience/circuitbreaker"
	"booksaetong/internal/resilience/retry"
)

// AroundPath is the listing endpoint the client queries.
const AroundPath = "/products/around"

// ErrBodyTooLarge is returned when a response exceeds Config.MaxBodySize.
var ErrBodyTooLarge = errors.New("response body too large")

// Client fetches feed pages from the API server.
//
// Thread safety: Client is safe for concurrent use.
type Client struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         Config
	endpoint       *url.URL
}

var _ feed.Fetcher[entity.Product] = (*Client)(nil)

// NewClient returns a client for cfg. It fails when cfg does not validate.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("NewClient: %w", err)
	}
	base, _ := url.Parse(cfg.BaseURL)

	c := &Client{
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedAPIConfig()),
		config:         cfg,
		endpoint:       base.JoinPath(AroundPath),
	}
	c.client = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= cfg.MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", len(via))
			}
			return nil
		},
	}
	return c, nil
}

// CircuitBreaker exposes the breaker guarding the API.
func (c *Client) CircuitBreaker() *circuitbreaker.CircuitBreaker { return c.circuitBreaker }

// FetchPage requests one page for the identity, resuming at cursor.
//
// A 400 response becomes a *feed.QueryError. Any other failure, an open circuit
// included, becomes a *feed.TransportError. Rejections and cancellations do not
// count against the circuit breaker: the API answered, or the caller gave up.
func (c *Client) FetchPage(ctx context.Context, id feed.QueryIdentity, cursor feed.Cursor) (feed.Page[entity.Product], error) {
	var passthrough error
	page, err := circuitbreaker.Do(c.circuitBreaker, func() (feed.Page[entity.Product], error) {
		p, err := c.doFetch(ctx, id, cursor)
		if err != nil && (feed.IsQueryError(err) || ctx.Err() != nil) {
			passthrough = err
			return p, nil
		}
		return p, err
	})
	if passthrough != nil {
		if feed.IsQueryError(passthrough) {
			return feed.Page[entity.Product]{}, passthrough
		}
		return feed.Page[entity.Product]{}, &feed.TransportError{Op: "GET " + AroundPath, Err: passthrough}
	}
	if err != nil {
		return feed.Page[entity.Product]{}, &feed.TransportError{Op: "GET " + AroundPath, Err: err}
	}
	return page, nil
}

func (c *Client) requestURL(id feed.QueryIdentity, cursor feed.Cursor) string {
	q := url.Values{}
	if id.HasKeyword() {
		q.Set("keyword", id.Keyword)
	}
	if id.HasLocation() {
		q.Set("location", id.LocationScope)
	}
	q.Set("limit", strconv.Itoa(id.PageSize))
	if !cursor.IsStart() {
		q.Set("cursor", string(cursor))
	}
	u := *c.endpoint
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Client) doFetch(ctx context.Context, id feed.QueryIdentity, cursor feed.Cursor) (feed.Page[entity.Product], error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(id, cursor), nil)
	if err != nil {
		return feed.Page[entity.Product]{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return feed.Page[entity.Product]{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodySize+1))
	if err != nil {
		return feed.Page[entity.Product]{}, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(body)) > c.config.MaxBodySize {
		return feed.Page[entity.Product]{}, fmt.Errorf("%w: exceeds %d bytes", ErrBodyTooLarge, c.config.MaxBodySize)
	}

	if resp.StatusCode == http.StatusBadRequest {
		return feed.Page[entity.Product]{}, &feed.QueryError{Reason: errorMessage(body, resp.Status)}
	}
	if resp.StatusCode != http.StatusOK {
		return feed.Page[entity.Product]{}, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body, resp.Status),
		}
	}

	var out listResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return feed.Page[entity.Product]{}, fmt.Errorf("decode response: %w", err)
	}
	return out.page(), nil
}

type productJSON struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Price     int64     `json:"price"`
	Contents  string    `json:"contents"`
	Address   string    `json:"address"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

type listResponse struct {
	Data       []productJSON `json:"data"`
	NextCursor string        `json:"next_cursor"`
	HasMore    bool          `json:"has_more"`
}

func (r listResponse) page() feed.Page[entity.Product] {
	items := make([]entity.Product, 0, len(r.Data))
	for _, p := range r.Data {
		items = append(items, entity.Product(p))
	}
	page := feed.Page[entity.Product]{Items: items}
	if r.HasMore {
		page.NextCursor = feed.Cursor(r.NextCursor)
	}
	return page
}

// errorMessage extracts {"error": "..."} from an error body, falling back to the
// status text.
func errorMessage(body []byte, status string) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	return status
}
