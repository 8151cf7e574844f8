/*
Package api is the gateway to the Thinkle backend.

Every call sends a JSON body, attaches the bearer token of the supplied user.Session
when it has one, and unwraps the {statusCode, message, data} envelope. A statusCode of
0 is success; any other code becomes an *errs.APIError carrying the backend code and
message. Transport and decoding failures become an *errs.APIError with
errs.NetworkErrorCode. No call is retried.
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"thinkle/internal/app/user"
	"thinkle/internal/pkg/errs"
	"thinkle/internal/pkg/logx"
)

// Backend paths, relative to the base URL.
const (
	PathGameSession        = "/game/session"
	PathSubmitGuess        = "/guess/submit"
	PathGetHint            = "/hints/get"
	PathLogin              = "/auth/login"
	PathRegister           = "/auth/register"
	PathCreateHintType     = "/hint-types/create"
	PathUpdateHintType     = "/hint-types/update"
	PathDeleteHintType     = "/hint-types/delete"
	PathReactivateHintType = "/hint-types/re-activate"
)

// maxResponseSize bounds the envelope read from the backend.
const maxResponseSize = 1 << 20

var errEmptyData = errors.New("response carried no data")

// Envelope is the wrapper of every backend response.
type Envelope struct {
	StatusCode *int            `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

// Client calls the Thinkle backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient returns a client for the backend at baseURL. timeout bounds every call.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logx.Component("APIClient"),
	}
}

// do sends body to path and decodes the envelope data into out. out may be nil when
// the caller does not need the data.
func (c *Client) do(ctx context.Context, method, path string, auth *user.Session, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errs.NewNetworkError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := auth.BearerToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("Backend request failed")
		return errs.NewNetworkError(err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return errs.NewNetworkError(err)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Warn().Err(err).Int("http_status", res.StatusCode).Str("path", path).Msg("Backend sent a non-JSON response")
		return errs.NewNetworkError(fmt.Errorf("decode envelope: %w", err))
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("http_status", res.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("Backend call completed")

	if env.StatusCode == nil {
		return errs.FromEnvelope(errs.NetworkErrorCode, env.Message)
	}
	if *env.StatusCode != 0 {
		return errs.FromEnvelope(*env.StatusCode, env.Message)
	}

	if out == nil {
		return nil
	}
	if trimmed := bytes.TrimSpace(env.Data); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return errs.NewNetworkError(errEmptyData)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errs.NewNetworkError(fmt.Errorf("decode %s data: %w", path, err))
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, auth *user.Session, body, out any) error {
	return c.do(ctx, http.MethodPost, path, auth, body, out)
}
