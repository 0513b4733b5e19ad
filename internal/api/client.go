package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service defines the remote operations the admin views depend on.
// This interface is implemented by *Client and can be used for testing.
type Service interface {
	List(ctx context.Context, resource string) ([]Item, error)
	Categories(ctx context.Context, resource string) ([]Category, error)
	Lookup(ctx context.Context, resource, field, value string) ([]Item, error)
	Create(ctx context.Context, resource string, payload Payload) (Item, error)
	Update(ctx context.Context, resource, key string, payload Payload) (Item, error)
	Remove(ctx context.Context, resource, key string) error
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// MutationHeader carries a fresh UUID on every write so the server can
// de-duplicate retried mutations.
const MutationHeader = "X-Mutation-ID"

// Client talks to the content API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	metrics   *Metrics
	newID     func() string
}

const (
	DefaultBaseURL   = "http://localhost:5000/api"
	defaultUserAgent = "backoffice/0.1"
	requestTimeout   = 5 * time.Second
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient swaps the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithMetrics records request counts and latencies.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient builds a Client rooted at baseURL (e.g. http://localhost:5000/api).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// List retrieves the canonical collection for resource.
func (c *Client) List(ctx context.Context, resource string) ([]Item, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var items []Item
	if err := c.do(ctx, request{method: http.MethodGet, resource: resource, rel: c.endpoint(resource)}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Categories retrieves the category options for resource.
func (c *Client) Categories(ctx context.Context, resource string) ([]Category, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var cats []Category
	if err := c.do(ctx, request{method: http.MethodGet, resource: resource, rel: c.endpoint(resource, "categories")}, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// Lookup returns the records whose field equals value. The API answers with
// zero or one element for unique fields.
func (c *Client) Lookup(ctx context.Context, resource, field, value string) ([]Item, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	field = strings.TrimSpace(field)
	if field == "" {
		return nil, fmt.Errorf("lookup field required")
	}
	rel := c.endpoint(resource)
	values := url.Values{}
	values.Set(field, value)
	rel.RawQuery = values.Encode()

	var items []Item
	if err := c.do(ctx, request{method: http.MethodGet, resource: resource, rel: rel}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Create posts a new record.
func (c *Client) Create(ctx context.Context, resource string, payload Payload) (Item, error) {
	if c == nil {
		return Item{}, fmt.Errorf("client is nil")
	}
	return c.write(ctx, http.MethodPost, resource, c.endpoint(resource), payload)
}

// Update patches the record addressed by key: its _id, or its slug for
// resources keyed that way (see Item.Key).
func (c *Client) Update(ctx context.Context, resource, key string, payload Payload) (Item, error) {
	if c == nil {
		return Item{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return Item{}, fmt.Errorf("item key required")
	}
	return c.write(ctx, http.MethodPatch, resource, c.endpoint(resource, key), payload)
}

// Remove deletes the record addressed by key.
func (c *Client) Remove(ctx context.Context, resource, key string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("item key required")
	}
	return c.do(ctx, request{
		method:   http.MethodDelete,
		resource: resource,
		rel:      c.endpoint(resource, key),
		mutation: true,
	}, nil)
}

func (c *Client) write(ctx context.Context, method, resource string, rel *url.URL, payload Payload) (Item, error) {
	body, contentType, err := encodeMultipart(payload)
	if err != nil {
		return Item{}, err
	}
	var item Item
	err = c.do(ctx, request{
		method:      method,
		resource:    resource,
		rel:         rel,
		body:        body,
		contentType: contentType,
		mutation:    true,
	}, &item)
	if err != nil {
		return Item{}, err
	}
	return item, nil
}

type request struct {
	method      string
	resource    string
	rel         *url.URL
	body        io.Reader
	contentType string
	mutation    bool
}

func (c *Client) endpoint(resource string, segments ...string) *url.URL {
	parts := []string{"/", c.baseURL.Path, strings.Trim(resource, "/")}
	parts = append(parts, segments...)
	return &url.URL{Path: path.Join(parts...)}
}

func (c *Client) do(ctx context.Context, r request, dest any) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		c.metrics.observe(r.method, r.resource, status, err, time.Since(start))
	}()

	reqURL := c.baseURL.ResolveReference(r.rel)
	req, err := http.NewRequestWithContext(ctx, r.method, reqURL.String(), r.body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.mutation {
		req.Header.Set(MutationHeader, c.newID())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	status = resp.StatusCode

	if resp.StatusCode >= 400 {
		return newStatusError(r.method, r.rel.Path, resp)
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func encodeMultipart(payload Payload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	names := make([]string, 0, len(payload.Fields))
	for name := range payload.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value := payload.Fields[name]
		if value == "" {
			continue
		}
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}
	for _, id := range payload.Categories {
		if err := w.WriteField("categories[]", id); err != nil {
			return nil, "", fmt.Errorf("write categories: %w", err)
		}
	}
	if att := payload.Attachment; att != nil && att.Body != nil {
		field := att.Field
		if field == "" {
			field = "file"
		}
		part, err := w.CreateFormFile(field, att.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, att.Body); err != nil {
			return nil, "", fmt.Errorf("copy attachment: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
