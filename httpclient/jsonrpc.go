package httpclient

import (
	"context"
	"fmt"
	"math"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/jsonerr"
)

const jsonRPCVersion = "2.0"

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// Call invokes a JSON-RPC 2.0 method at path and decodes its result into
// result, which may be nil. An error object in the reply becomes a JsonRpc
// error carrying the server's code and message, whatever the HTTP status.
func (c *Client) Call(ctx context.Context, path, method string, params, result any) *errors.Error {
	resp, err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   path,
		Body: rpcRequest{
			JSONRPC: jsonRPCVersion,
			ID:      c.rpcID.Add(1),
			Method:  method,
			Params:  params,
		},
	})
	if err != nil {
		return err
	}

	var reply rpcResponse
	if err := jsonerr.Unmarshal(resp.Body, &reply); err != nil {
		return err
	}
	if reply.Error != nil {
		return rpcFailure(reply.Error)
	}
	if result == nil || len(reply.Result) == 0 {
		return nil
	}
	return jsonerr.Unmarshal(reply.Result, result)
}

// rpcFailure converts a reply error object. Codes outside the 16-bit range
// the unified error carries are reported as a serialization failure.
func rpcFailure(e *rpcError) *errors.Error {
	if e.Code < math.MinInt16 || e.Code > math.MaxInt16 {
		return errors.Serialization(fmt.Sprintf("json-rpc error code %d out of range: %s", e.Code, e.Message))
	}
	return errors.JSONRPC(int16(e.Code), e.Message)
}
