package commands

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/httpclient"
	"github.com/kbukum/faultline/jsonerr"
)

type probeResult struct {
	URL    string          `json:"url" yaml:"url"`
	Status int             `json:"status,omitempty" yaml:"status,omitempty"`
	Bytes  int             `json:"bytes" yaml:"bytes"`
	Result json.RawMessage `json:"result,omitempty" yaml:"-"`
}

func (r probeResult) Headers() []string {
	return []string{"URL", "STATUS", "BYTES"}
}

func (r probeResult) Rows() [][]string {
	status := "-"
	if r.Status != 0 {
		status = strconv.Itoa(r.Status)
	}
	return [][]string{{r.URL, status, strconv.Itoa(r.Bytes)}}
}

func newProbeCmd(a *app) *cobra.Command {
	var (
		method string
		rpc    string
		params string
		retry  bool
	)
	cmd := &cobra.Command{
		Use:   "probe <url>",
		Short: "Send an HTTP request and report its failure as a unified error",
		Long: `Send one HTTP request with the configured client (TLS, proxy, redirect
and UTF-8 policies from the http section of the config) and print the
response status, or the failure.

Examples:
  # Probe a URL
  faultline probe https://example.com

  # Call a JSON-RPC method
  faultline probe https://rpc.example.com --rpc getHealth --params '[]'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.operation(cmd.Context(), "probe", func(ctx context.Context) *errors.Error {
				cfg := a.cfg.HTTP
				cfg.Metrics = a.metrics
				if retry {
					cfg.Retry = httpclient.DefaultRetryConfig()
				}
				client, err := httpclient.New(cfg)
				if err != nil {
					return err
				}

				var result probeResult
				if rpc != "" {
					result, err = callRPC(ctx, client, args[0], rpc, params)
				} else {
					result, err = probe(ctx, client, args[0], method)
				}
				if err != nil {
					return err
				}
				return a.printer.Print(result)
			})
		},
	}
	cmd.Flags().StringVarP(&method, "method", "X", http.MethodGet, "HTTP method")
	cmd.Flags().StringVar(&rpc, "rpc", "", "Call this JSON-RPC 2.0 method instead of a plain request")
	cmd.Flags().StringVar(&params, "params", "", "JSON-RPC params as a JSON document")
	cmd.Flags().BoolVar(&retry, "retry", false, "Retry transient failures with backoff")
	return cmd
}

func probe(ctx context.Context, client *httpclient.Client, url, method string) (probeResult, *errors.Error) {
	resp, err := client.Do(ctx, httpclient.Request{Method: strings.ToUpper(method), Path: url})
	if err != nil {
		return probeResult{}, err
	}
	return probeResult{URL: url, Status: resp.StatusCode, Bytes: len(resp.Body)}, nil
}

func callRPC(ctx context.Context, client *httpclient.Client, url, method, params string) (probeResult, *errors.Error) {
	var p any
	if params != "" {
		if err := jsonerr.Unmarshal([]byte(params), &p); err != nil {
			return probeResult{}, err
		}
	}
	var result json.RawMessage
	if err := client.Call(ctx, url, method, p, &result); err != nil {
		return probeResult{}, err
	}
	return probeResult{URL: url, Bytes: len(result), Result: result}, nil
}
