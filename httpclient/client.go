package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"golang.org/x/net/idna"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/httperr"
	"github.com/kbukum/faultline/jsonerr"
	"github.com/kbukum/faultline/logger"
	"github.com/kbukum/faultline/observability"
	"github.com/kbukum/faultline/resilience"
)

const component = "httpclient"

// Client is a configurable HTTP client whose failures are unified errors.
type Client struct {
	httpClient *http.Client
	config     Config
	rpcID      atomic.Uint64
}

// New creates a new HTTP client with the given configuration.
func New(cfg Config) (*Client, *errors.Error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxResponseHeaderBytes = cfg.MaxHeaderBytes

	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}

	if cfg.Proxy != "" {
		proxyURL, err := parseProxy(cfg.Proxy)
		if err != nil {
			return nil, httperr.Translate(err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	c := &Client{config: cfg}
	c.httpClient = &http.Client{
		Transport:     transport,
		Timeout:       cfg.Timeout,
		CheckRedirect: c.checkRedirect,
	}
	return c, nil
}

// Do executes an HTTP request and returns the complete response. Non-2xx
// statuses are not failures; inspect Response.StatusCode.
func (c *Client) Do(ctx context.Context, req Request) (*Response, *errors.Error) {
	ctx, span := observability.StartSpan(ctx, "httpclient.Do")
	defer span.End()

	var (
		resp *Response
		err  *errors.Error
	)
	if c.config.Retry != nil {
		resp, err = resilience.Retry(ctx, *c.config.Retry, func() (*Response, *errors.Error) {
			return c.executeRequest(ctx, req)
		})
	} else {
		resp, err = c.executeRequest(ctx, req)
	}
	if err != nil {
		observability.RecordFault(span, err)
		c.config.Metrics.RecordFault(ctx, err, component)
		logger.Get(component).WithContext(ctx).WithFault(err).Debug("request failed",
			logger.Fields("method", req.Method, "path", req.Path))
	}
	return resp, err
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (c *Client) Unwrap() *http.Client {
	return c.httpClient
}

// executeRequest builds and sends the HTTP request.
func (c *Client) executeRequest(ctx context.Context, req Request) (*Response, *errors.Error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, doErr := c.httpClient.Do(httpReq)
	if doErr != nil {
		return nil, httperr.Translate(doErr)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := c.checkResponse(resp); err != nil {
		return nil, httperr.Translate(err)
	}

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, httperr.Translate(fmt.Errorf("read response body: %w", readErr))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
	}, nil
}

// checkResponse applies the client policy to a response head.
func (c *Client) checkResponse(resp *http.Response) error {
	if c.config.MaxRedirects >= 0 && isRedirect(resp.StatusCode) && resp.Header.Get("Location") == "" {
		return httperr.ErrRedirectLocationMissing
	}
	if resp.StatusCode == http.StatusProxyAuthRequired && c.config.Proxy != "" {
		return httperr.ErrProxyAuthenticationFailed
	}
	if c.config.StrictUTF8 {
		if !utf8.ValidString(resp.Status) {
			return fmt.Errorf("%w: status line", httperr.ErrInvalidUTF8InResponse)
		}
		for name, values := range resp.Header {
			for _, v := range values {
				if !utf8.ValidString(v) {
					return fmt.Errorf("%w: header %s", httperr.ErrInvalidUTF8InResponse, name)
				}
			}
		}
	}
	return nil
}

// checkRedirect enforces the redirect policy before each hop.
func (c *Client) checkRedirect(req *http.Request, via []*http.Request) error {
	if c.config.MaxRedirects < 0 {
		return http.ErrUseLastResponse
	}
	if len(via) > c.config.MaxRedirects {
		return httperr.ErrTooManyRedirections
	}
	target := req.URL.String()
	for _, prev := range via {
		if prev.URL.String() == target {
			return httperr.ErrInfiniteRedirectionLoop
		}
	}
	return c.checkURL(req.URL)
}

// checkURL enforces the scheme switch and converts an internationalized
// host to its ASCII form in place.
func (c *Client) checkURL(u *url.URL) error {
	if u.Scheme == "https" && c.config.DisableHTTPS {
		return httperr.ErrHTTPSNotEnabled
	}
	host := u.Hostname()
	if isASCII(host) {
		return nil
	}
	if c.config.DisableIDNA {
		return fmt.Errorf("%w: %s", httperr.ErrPunycodeNotEnabled, host)
	}
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return fmt.Errorf("%w: %v", httperr.ErrPunycodeConversionFailed, err)
	}
	if port := u.Port(); port != "" {
		u.Host = net.JoinHostPort(ascii, port)
	} else {
		u.Host = ascii
	}
	return nil
}

// buildRequest constructs an *http.Request from the client config and request.
func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, *errors.Error) {
	target := req.Path
	if c.config.BaseURL != "" && !strings.HasPrefix(req.Path, "http://") && !strings.HasPrefix(req.Path, "https://") {
		target = strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	httpReq, reqErr := http.NewRequestWithContext(ctx, req.Method, target, body)
	if reqErr != nil {
		return nil, httperr.Translate(reqErr)
	}
	if err := c.checkURL(httpReq.URL); err != nil {
		return nil, httperr.Translate(err)
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	if body != nil && httpReq.Header.Get("Content-Type") == "" && contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	applyAuth(httpReq, req.Auth, c.config.Auth)

	return httpReq, nil
}

// encodeBody converts a body value into an io.Reader and content type.
func encodeBody(body any) (io.Reader, string, *errors.Error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	default:
		data, err := jsonerr.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}

func isRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
