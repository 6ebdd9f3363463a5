package growthbook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/growthbook/growthbook-go/internal/condition"
)

// FeatureApiResponse is the payload of the features endpoint. The
// body carries either a plain features map or an encrypted blob.
type FeatureApiResponse struct {
	Status            int                   `json:"status"`
	Features          FeatureMap            `json:"features"`
	DateUpdated       time.Time             `json:"dateUpdated"`
	SavedGroups       condition.SavedGroups `json:"savedGroups"`
	EncryptedFeatures string                `json:"encryptedFeatures"`
	Etag              string                `json:"-"`
}

const userAgent = "GrowthBook Go SDK client"

var errNotModified = fmt.Errorf("feature api: not modified")

// callFeatureApi performs one GET against the features endpoint.
// A 304 response returns errNotModified so callers can keep their
// current snapshot.
func callFeatureApi(ctx context.Context, client *http.Client, apiUrl string, etag string) (*FeatureApiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiUrl, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		return nil, errNotModified
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &httpStatusError{status: resp.StatusCode, url: apiUrl}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	apiResp := FeatureApiResponse{}
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("feature api: parsing response: %w", err)
	}
	apiResp.Etag = resp.Header.Get("Etag")

	return &apiResp, nil
}

type httpStatusError struct {
	status int
	url    string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("feature api: unexpected status %d from %s", e.status, e.url)
}

// retryable reports whether a fetch attempt is worth repeating.
// Server-side errors and transport failures are; anything wrong with
// the payload or the request itself is not.
func (e *httpStatusError) retryable() bool {
	return e.status >= 500
}
