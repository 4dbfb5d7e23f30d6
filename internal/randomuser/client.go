// Package randomuser is a client for the randomuser.me API and servers
// that speak the same protocol.
package randomuser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"userdir/internal/domain"
)

const (
	DefaultBaseURL = "https://randomuser.me/api/"
	DefaultResults = 15

	// MaxResults is the largest batch the API serves in one response
	MaxResults = 5000

	maxBodyBytes    = 32 << 20
	maxPictureBytes = 4 << 20
)

// APIError is returned when the API answers with an error envelope.
// The fetched list must not be replaced in that case.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "randomuser: api error: " + e.Message
}

// StatusError is returned for non-2xx responses without an error envelope
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("randomuser: %s returned %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsAPIError reports whether err carries an API-reported error
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// Client fetches batches of users
type Client struct {
	baseURL       string
	results       int
	pages         int
	seed          string
	nationalities []string
	httpClient    *http.Client
	log           zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }
func WithResults(n int) Option { return func(c *Client) { c.results = n } }
func WithPages(n int) Option { return func(c *Client) { c.pages = n } }
func WithSeed(seed string) Option { return func(c *Client) { c.seed = seed } }
func WithNationalities(nat []string) Option { return func(c *Client) { c.nationalities = nat } }
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.httpClient = hc } }
func WithLogger(logger zerolog.Logger) Option { return func(c *Client) { c.log = logger } }

// WithTimeout sets the timeout of the underlying HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient = &http.Client{Timeout: d} }
}

// NewClient creates a client; without options it requests 15 users from
// randomuser.me, matching the web frontend it replaces
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		results:    DefaultResults,
		pages:      1,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.results < 1 {
		c.results = 1
	}
	if c.results > MaxResults {
		c.results = MaxResults
	}
	if c.pages < 1 {
		c.pages = 1
	}
	return c
}

// Name describes the source for logs and the status line
func (c *Client) Name() string {
	return c.baseURL
}

// Fetch requests every configured page and returns the users in page order.
// More than one page needs a shared seed; one is generated when none is
// configured so that pages come from the same sequence.
func (c *Client) Fetch(ctx context.Context) ([]domain.User, error) {
	seed := c.seed
	if c.pages > 1 && seed == "" {
		seed = strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	}

	batches := make([][]domain.User, c.pages)
	g, gctx := errgroup.WithContext(ctx)
	for i := range batches {
		page := i + 1
		g.Go(func() error {
			users, err := c.fetchPage(gctx, page, seed)
			if err != nil {
				return err
			}
			batches[page-1] = users
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, c.pages*c.results)
	for _, b := range batches {
		users = append(users, b...)
	}
	c.log.Info().Int("users", len(users)).Int("pages", c.pages).Str("seed", seed).Msg("fetched users")
	return users, nil
}

func (c *Client) pageURL(page int, seed string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("randomuser: invalid base url %q: %w", c.baseURL, err)
	}
	q := u.Query()
	q.Set("results", strconv.Itoa(c.results))
	if c.pages > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if seed != "" {
		q.Set("seed", seed)
	}
	if len(c.nationalities) > 0 {
		q.Set("nat", strings.Join(c.nationalities, ","))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) fetchPage(ctx context.Context, page int, seed string) ([]domain.User, error) {
	target, err := c.pageURL(page, seed)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("randomuser: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug().Str("url", target).Msg("requesting users")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("randomuser: request page %d: %w", page, err)
	}
	defer resp.Body.Close()

	env, decodeErr := DecodeEnvelope(io.LimitReader(resp.Body, maxBodyBytes))
	if env != nil && env.Error != "" {
		return nil, &APIError{Message: env.Error}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: target}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("randomuser: page %d: %w", page, decodeErr)
	}
	return env.Results, nil
}

// DecodeEnvelope parses a response body. An envelope with an error field is
// returned without error; callers decide what an API error means.
func DecodeEnvelope(r io.Reader) (*domain.Envelope, error) {
	var env domain.Envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &env, nil
}

// FetchPicture downloads and decodes a portrait
func (c *Client) FetchPicture(ctx context.Context, pictureURL string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pictureURL, nil)
	if err != nil {
		return nil, fmt.Errorf("randomuser: build picture request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("randomuser: fetch picture: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: pictureURL}
	}
	img, _, err := image.Decode(io.LimitReader(resp.Body, maxPictureBytes))
	if err != nil {
		return nil, fmt.Errorf("randomuser: decode picture %s: %w", pictureURL, err)
	}
	return img, nil
}
