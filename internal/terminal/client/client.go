package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"desayuno/internal/handler/dto/request"
	"desayuno/internal/handler/dto/response"
	"desayuno/internal/pkg/config"
	"desayuno/internal/pkg/errs"

	"github.com/google/uuid"
)

// APIError is a typed rejection from the server: the request arrived and
// the server said no. Anything else (timeout, refused connection, 5xx
// with an unreadable body) is a transport failure and means "queue it".
type APIError struct {
	Status  int
	Message string
	Reason  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server rejected request (%d %s): %s", e.Status, e.Reason, e.Message)
}

// IsTransportError reports whether the redemption should be queued for
// later instead of treated as a server verdict.
func IsTransportError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	return !errors.As(err, &apiErr)
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(cfg config.TerminalConfig) *Client {
	return &Client{
		baseURL: cfg.ServerURL,
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// SetToken installs the JWT obtained from Login for subsequent calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Login(ctx context.Context, deviceID uuid.UUID, deviceKey string) (*response.LoginResponse, error) {
	req := request.LoginRequest{DeviceID: deviceID, DeviceKey: deviceKey}

	var resp response.LoginResponse
	if err := c.post(ctx, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

func (c *Client) Validate(ctx context.Context, code, signature string) (*response.ValidationResponse, error) {
	req := request.ValidateVoucherRequest{Code: code, Signature: signature}

	var resp response.ValidationResponse
	if err := c.post(ctx, "/api/vouchers/validate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Redeem(ctx context.Context, code, signature, localID string, redeemedAt time.Time) (*response.RedemptionResponse, error) {
	req := request.RedeemVoucherRequest{
		Code:       code,
		Signature:  signature,
		LocalID:    localID,
		RedeemedAt: redeemedAt,
	}

	var resp response.RedemptionResponse
	if err := c.post(ctx, "/api/vouchers/redeem", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Sync(ctx context.Context, intents []request.SyncIntentRequest) (*response.SyncResponse, error) {
	req := request.SyncRequest{Intents: intents}

	var resp response.SyncResponse
	if err := c.post(ctx, "/api/sync", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return errs.Wrap(err, "failed to encode request body")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return errs.Wrap(err, "failed to build request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return errs.Wrap(err, "request failed")
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return errs.Wrap(err, "failed to read response body")
	}

	if httpResp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(httpResp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return errs.Wrap(err, "failed to decode response body")
	}
	return nil
}

func decodeAPIError(status int, body []byte) error {
	// 5xx means the server is unhealthy; treat like a network failure so
	// the intent is retried rather than discarded.
	if status >= http.StatusInternalServerError {
		return errs.Newf("server error: status %d", status)
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Reason  string `json:"reason"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error.Message == "" {
		// Unauthenticated middleware responses use a flat {"error": "..."} shape.
		var flat struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &flat); err == nil && flat.Error != "" {
			return &APIError{Status: status, Message: flat.Error}
		}
		return errs.Newf("unreadable error response: status %d", status)
	}

	return &APIError{
		Status:  status,
		Message: envelope.Error.Message,
		Reason:  envelope.Error.Reason,
	}
}
