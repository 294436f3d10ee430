// Package httpclient provides an HTTP client whose every failure is a
// unified *errors.Error.
//
// On top of net/http it enforces a client policy: a redirect budget with
// loop detection, optional rejection of https and of internationalized host
// names, punycode conversion of non-ASCII hosts, validated proxy URLs and
// optional UTF-8 checks on the response head. Transport failures are
// classified by httperr; nested TLS and I/O failures keep their own
// categories.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Timeout: 30 * time.Second,
//	    Auth:    httpclient.BearerAuth("my-token"),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/accounts/123",
//	})
//
// # JSON-RPC
//
//	var balance struct{ Value uint64 }
//	err := client.Call(ctx, "/", "getBalance", []string{addr}, &balance)
//	if code, msg, ok := err.JSONRPC(); ok {
//	    ...
//	}
//
// # With Retry
//
// Retry only repeats connection-level failures; see resilience.Transient.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Retry:   httpclient.DefaultRetryConfig(),
//	})
package httpclient
