package dispatch

// #region imports
import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/dashboard"
)

// #endregion imports

// #region errors

// StatusError is a non-2xx response from the remote dashboard service.
// Body carries the response payload as diagnostic detail.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote dispatch: status %d: %s", e.Status, strings.TrimSpace(e.Body))
}

// #endregion errors

// #region types

// Remote issues a single HTTP call to the real dashboard backend.
// One outbound request per Fetch, hard deadline from the configured
// timeout, no automatic retry.
type Remote struct {
	baseURL string
	client  *http.Client
}

// NewRemote creates the real-mode strategy. timeout is the hard per-call
// deadline; deadline expiry is reported the same way as a failed response.
func NewRemote(baseURL string, timeout time.Duration) *Remote {
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Mode reports ModeReal.
func (r *Remote) Mode() Mode { return ModeReal }

// #endregion types

// #region fetch

// Fetch POSTs the wizard inputs to <base>/wizard/dashboard with the
// fingerprint as the X-Request-ID correlation header and decodes the
// response into an unvalidated dashboard.
func (r *Remote) Fetch(ctx context.Context, inputs dashboard.WizardInputs, fp string) (*dashboard.DashboardResult, error) {
	payload, err := json.Marshal(inputs)
	if err != nil {
		return nil, fmt.Errorf("remote dispatch: marshal inputs: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/wizard/dashboard", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("remote dispatch: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", fp)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote dispatch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Status: resp.StatusCode, Body: string(body)}
	}

	var result dashboard.DashboardResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("remote dispatch: decode response: %w", err)
	}
	return &result, nil
}

// #endregion fetch
