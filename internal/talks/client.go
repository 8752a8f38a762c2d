package talks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Fetcher is the read side used by the long-poll loop.
type Fetcher interface {
	FetchTalks(ctx context.Context, cond Conditional) (Poll, error)
}

// Mutator is the write side used by the effect executor.
type Mutator interface {
	PutTalk(ctx context.Context, title, presenter, summary string) error
	DeleteTalk(ctx context.Context, title string) error
	PostComment(ctx context.Context, talk, author, message string) error
}

// Ensure Client implements both halves at compile time.
var (
	_ Fetcher = (*Client)(nil)
	_ Mutator = (*Client)(nil)
)

// Client talks to the skill-sharing HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultServerURL = "localhost:8000"
	defaultUserAgent = "skillshare/0.1"
	defaultTimeout   = 10 * time.Second
	maxBodySize      = 8 << 20
)

// NewClient builds a Client for serverURL. timeout bounds each request at
// the transport level; zero uses a 10 second default.
func NewClient(serverURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(serverURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized server URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Conditional carries the long-poll request headers. A blank ETag sends an
// unconditional request.
type Conditional struct {
	ETag string
	Wait time.Duration
}

// Poll is the interpreted result of GET /talks.
type Poll struct {
	NotModified bool
	ETag        string
	Talks       []Talk
}

// FetchTalks retrieves the talk list, blocking server-side when cond holds
// an ETag.
func (c *Client) FetchTalks(ctx context.Context, cond Conditional) (Poll, error) {
	if c == nil {
		return Poll{}, fmt.Errorf("client is nil")
	}
	header := http.Header{}
	if cond.ETag != "" {
		header.Set("If-None-Match", cond.ETag)
		if secs := int(cond.Wait / time.Second); secs > 0 {
			header.Set("Prefer", "wait="+strconv.Itoa(secs))
		}
	}
	resp, err := c.Do(ctx, http.MethodGet, &url.URL{Path: "/talks"}, header, nil)
	if err != nil {
		return Poll{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotModified {
		return Poll{NotModified: true, ETag: cond.ETag}, nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Poll{}, fmt.Errorf("read talks: %w", err)
	}
	list, err := DecodeTalks(data)
	if err != nil {
		return Poll{}, fmt.Errorf("decode talks: %w", err)
	}
	return Poll{ETag: resp.Header.Get("ETag"), Talks: list}, nil
}

// PutTalk creates or replaces the talk titled title.
func (c *Client) PutTalk(ctx context.Context, title, presenter, summary string) error {
	return c.send(ctx, http.MethodPut, TalkRef(title), talkBody{Presenter: presenter, Summary: summary})
}

// DeleteTalk removes the talk titled title.
func (c *Client) DeleteTalk(ctx context.Context, title string) error {
	return c.send(ctx, http.MethodDelete, TalkRef(title), nil)
}

// PostComment appends a comment to the talk titled talk.
func (c *Client) PostComment(ctx context.Context, talk, author, message string) error {
	return c.send(ctx, http.MethodPost, TalkRef(talk, "comments"), commentBody{Author: author, Message: message})
}

func (c *Client) send(ctx context.Context, method string, rel *url.URL, body any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	resp, err := c.Do(ctx, method, rel, nil, body)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
	return resp.Body.Close()
}

// Do performs a single request. It fails with *TransportError when no
// response arrived and with *HTTPError when the status is neither 2xx nor
// 304; otherwise the caller owns the response body.
func (c *Client) Do(ctx context.Context, method string, rel *url.URL, header http.Header, body any) (*http.Response, error) {
	reqURL := c.resolve(rel)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug().Str("method", method).Str("url", reqURL.String()).Msg("request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: reqURL.String(), Err: err}
	}
	if !statusOK(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		_ = resp.Body.Close()
		return nil, &HTTPError{Method: method, URL: reqURL.String(), StatusCode: resp.StatusCode}
	}
	return resp, nil
}

func statusOK(code int) bool {
	return (code >= 200 && code < 300) || code == http.StatusNotModified
}

// resolve grafts rel onto the base URL without cleaning dot segments, so a
// title such as ".." still addresses /talks/.. on the server.
func (c *Client) resolve(rel *url.URL) *url.URL {
	u := *c.baseURL
	u.Path = rel.Path
	u.RawPath = rel.RawPath
	u.RawQuery = rel.RawQuery
	return &u
}

// TalkRef returns the relative URL of a talk, with title escaped as a single
// path segment. Extra segments are appended verbatim.
func TalkRef(title string, segments ...string) *url.URL {
	raw := "/talks/" + title
	escaped := "/talks/" + url.PathEscape(title)
	for _, s := range segments {
		raw += "/" + s
		escaped += "/" + s
	}
	return &url.URL{Path: raw, RawPath: escaped}
}

func parseBaseURL(serverURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(serverURL)
	if trimmed == "" {
		trimmed = defaultServerURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server_url %q: %w", serverURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse server_url %q: missing host", serverURL)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
