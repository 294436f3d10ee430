package httpclient

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/httperr"
	"github.com/kbukum/faultline/logger"
	"github.com/kbukum/faultline/observability"
	"github.com/kbukum/faultline/resilience"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxRedirects = 10
)

// Config configures the HTTP client.
type Config struct {
	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the default request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Auth is applied to every request unless the request sets its own.
	Auth Auth `yaml:"-" mapstructure:"-"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// MaxRedirects bounds the redirects followed per request. Zero uses
	// the default of 10; a negative value returns redirects unfollowed.
	MaxRedirects int `yaml:"max_redirects" mapstructure:"max_redirects"`

	// Proxy is an http, https or socks5 proxy URL. Credentials, when
	// present, must carry both a user name and a password.
	Proxy string `yaml:"proxy" mapstructure:"proxy"`

	// MaxHeaderBytes limits the response head. Zero uses net/http's limit.
	MaxHeaderBytes int64 `yaml:"max_header_bytes" mapstructure:"max_header_bytes"`

	// DisableHTTPS rejects https URLs, including redirect targets.
	DisableHTTPS bool `yaml:"disable_https" mapstructure:"disable_https"`

	// DisableIDNA rejects non-ASCII host names instead of converting them
	// to punycode.
	DisableIDNA bool `yaml:"disable_idna" mapstructure:"disable_idna"`

	// StrictUTF8 rejects responses whose status line or header values are
	// not valid UTF-8.
	StrictUTF8 bool `yaml:"strict_utf8" mapstructure:"strict_utf8"`

	// Retry configures retry behavior. Nil disables retry.
	Retry *resilience.RetryConfig `yaml:"-" mapstructure:"-"`

	// Metrics, when set, counts failed requests by error kind.
	Metrics *observability.Metrics `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxRedirects == 0 {
		c.MaxRedirects = defaultMaxRedirects
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() *errors.Error {
	if c.Timeout <= 0 {
		return errors.Unspecified("httpclient: timeout must be positive")
	}
	if c.MaxHeaderBytes < 0 {
		return errors.Unspecified("httpclient: max_header_bytes must not be negative")
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	if c.Proxy != "" {
		if _, err := parseProxy(c.Proxy); err != nil {
			return httperr.Translate(err)
		}
	}
	return nil
}

// DefaultRetryConfig returns a default retry config suitable for HTTP clients.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.OnRetry = func(attempt int, err *errors.Error, wait time.Duration) {
		logger.Get(component).WithFault(err).Warn("retrying request",
			logger.Fields("attempt", attempt, "backoff", wait.String()))
	}
	return &cfg
}

// parseProxy validates a proxy URL and its credentials.
func parseProxy(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", httperr.ErrBadProxy, err)
	}
	switch u.Scheme {
	case "http", "https", "socks5", "socks5h":
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", httperr.ErrBadProxy, u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: missing host", httperr.ErrBadProxy)
	}
	if u.User != nil {
		if _, ok := u.User.Password(); !ok || u.User.Username() == "" {
			return nil, fmt.Errorf("%w: expected user:password", httperr.ErrBadProxyCreds)
		}
	}
	return u, nil
}
