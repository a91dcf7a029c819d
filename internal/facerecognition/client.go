package facerecognition

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

	"go-presence/internal/capture"
	faceerrors "go-presence/internal/facerecognition/errors"
	"go-presence/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	maxResponseBytes = 1 << 20
	// healthTimeout bounds the shared health check, which no caller can cancel.
	healthTimeout = 10 * time.Second
)

// Client talks to the face recognition HTTP service. Every call is a single attempt
// bound to ctx; cancelling ctx aborts the in-flight request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sf         singleflight.Group
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) logger(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, zap.L()).Named("facerecognition")
}

// do sends the request and decodes the JSON body into out whatever the status code is,
// since the service reports application failures as JSON with a 4xx/5xx status.
func (c *Client) do(ctx context.Context, method, path string, payload any, out any) (int, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%s %s: decode response (status %d): %w", method, path, resp.StatusCode, err)
	}
	return resp.StatusCode, nil
}

func (c *Client) networkError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	c.logger(ctx).Warn("face recognition call failed", zap.String("op", op), zap.Error(err))
	return faceerrors.ErrNetwork.WithCause(err)
}

// Health checks the service. Concurrent checks share one request, which runs
// detached from any single caller so one caller giving up does not fail the
// others. Each caller still returns as soon as its own ctx is done.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	ch := c.sf.DoChan("health", func() (any, error) {
		checkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), healthTimeout)
		defer cancel()

		var status HealthStatus
		code, err := c.do(checkCtx, http.MethodGet, "/health", nil, &status)
		if err != nil {
			return HealthStatus{}, err
		}
		if code >= 300 {
			return HealthStatus{}, fmt.Errorf("health returned status %d", code)
		}
		return status, nil
	})

	select {
	case <-ctx.Done():
		return HealthStatus{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			c.logger(ctx).Warn("face recognition health check failed", zap.Error(res.Err))
			return HealthStatus{}, faceerrors.ErrServiceUnavailable.WithCause(res.Err)
		}
		return res.Val.(HealthStatus), nil
	}
}

// Verify compares image against the user's enrolled reference.
func (c *Client) Verify(ctx context.Context, userID, imageBase64 string) (Outcome, error) {
	var res verifyResponse
	code, err := c.do(ctx, http.MethodPost, "/verify", faceRequest{UserID: userID, Image: imageBase64}, &res)
	if err != nil {
		return Outcome{}, c.networkError(ctx, "verify", err)
	}
	return classifyVerify(code, res)
}

// Submit verifies a captured photo for userID.
func (c *Client) Submit(ctx context.Context, userID string, photo capture.CapturedPhoto) (Outcome, error) {
	return c.Verify(ctx, userID, photo.ImageBase64)
}

// Enroll registers image as the user's reference face. A successful enrollment counts as a 100% match.
func (c *Client) Enroll(ctx context.Context, userID, imageBase64 string) (Outcome, error) {
	var res basicResponse
	code, err := c.do(ctx, http.MethodPost, "/enroll", faceRequest{UserID: userID, Image: imageBase64}, &res)
	if err != nil {
		return Outcome{}, c.networkError(ctx, "enroll", err)
	}
	if code >= http.StatusInternalServerError {
		return Outcome{}, faceerrors.ErrServiceUnavailable.WithCause(errors.New(res.Error))
	}
	if !res.Success {
		return Outcome{}, faceerrors.ErrEnrollFailed.WithCause(errors.New(res.Error)).WithDetails(res.Error)
	}
	return Verified(100), nil
}

func (c *Client) Delete(ctx context.Context, userID string) error {
	var res basicResponse
	code, err := c.do(ctx, http.MethodPost, "/delete", faceRequest{UserID: userID}, &res)
	if err != nil {
		return c.networkError(ctx, "delete", err)
	}
	switch {
	case res.Success:
		return nil
	case code == http.StatusNotFound:
		return faceerrors.ErrFaceDataNotFound
	case code >= http.StatusInternalServerError:
		return faceerrors.ErrServiceUnavailable.WithCause(errors.New(res.Error))
	default:
		return faceerrors.ErrRequestRejected.WithCause(errors.New(res.Error)).WithDetails(res.Error)
	}
}

func (c *Client) EnrolledUsers(ctx context.Context) ([]EnrolledUser, error) {
	var res enrolledUsersResponse
	_, err := c.do(ctx, http.MethodGet, "/enrolled-users", nil, &res)
	if err != nil {
		return nil, c.networkError(ctx, "enrolled-users", err)
	}
	if !res.Success {
		return nil, faceerrors.ErrServiceUnavailable.WithCause(errors.New(res.Error))
	}
	if res.Users == nil {
		return []EnrolledUser{}, nil
	}
	return res.Users, nil
}

// classifyVerify turns a /verify answer into an Outcome: error_kind when present,
// then the enrolled flag and the status code.
func classifyVerify(code int, res verifyResponse) (Outcome, error) {
	if res.Success {
		if res.Verified {
			return Verified(res.Confidence), nil
		}
		reason := res.Message
		if reason == "" {
			reason = "face verification failed"
		}
		return Mismatch(reason), nil
	}

	switch res.ErrorKind {
	case ErrorKindNotEnrolled:
		return NotEnrolled(), nil
	case ErrorKindMismatch:
		return Mismatch(res.Error), nil
	}

	if res.Enrolled != nil && !*res.Enrolled {
		return NotEnrolled(), nil
	}
	if code == http.StatusNotFound && res.ErrorKind == "" {
		return NotEnrolled(), nil
	}
	// Servers that predate error_kind and the enrolled flag only describe the failure in text.
	if res.ErrorKind == "" && res.Enrolled == nil && strings.Contains(strings.ToLower(res.Error), "not enrolled") {
		return NotEnrolled(), nil
	}
	if code >= http.StatusInternalServerError {
		return Outcome{}, faceerrors.ErrServiceUnavailable.WithCause(errors.New(res.Error))
	}
	return Mismatch(res.Error), nil
}
