package growthbook

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/growthbook/growthbook-go/internal/condition"
)

type ClientOption func(*Client) error

// WithEnabled switch to globally disable all experiments. Default true.
func WithEnabled(enabled bool) ClientOption {
	return func(c *Client) error {
		c.enabled = enabled
		return nil
	}
}

// WithApiHost sets the GrowthBook API host.
func WithApiHost(apiHost string) ClientOption {
	return func(c *Client) error {
		c.repoOpts.ApiHost = apiHost
		return nil
	}
}

// WithClientKey used to fetch features from the GrowthBook API.
func WithClientKey(clientKey string) ClientOption {
	return func(c *Client) error {
		c.clientKey = clientKey
		return nil
	}
}

// WithDecryptionKey used to decrypt encrypted features from the API. Optional
func WithDecryptionKey(decryptionKey string) ClientOption {
	return func(c *Client) error {
		c.repoOpts.DecryptionKey = decryptionKey
		return nil
	}
}

// WithStaleTTL sets how long fetched features stay fresh.
func WithStaleTTL(ttl time.Duration) ClientOption {
	return func(c *Client) error {
		c.repoOpts.StaleTTL = ttl
		return nil
	}
}

// WithInitTimeout bounds how long EnsureLoaded waits for the initial
// feature load.
func WithInitTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) error {
		c.repoOpts.InitTimeout = timeout
		return nil
	}
}

// WithRefreshStrategy selects between periodic polling and manual
// refreshes.
func WithRefreshStrategy(strategy RefreshStrategy) ClientOption {
	return func(c *Client) error {
		c.repoOpts.Strategy = strategy
		return nil
	}
}

// WithCache sets the cache for fetched feature payloads.
func WithCache(cache Cache) ClientOption {
	return func(c *Client) error {
		c.repoOpts.Cache = cache
		return nil
	}
}

// WithRefreshCallback subscribes a callback invoked after every
// successful feature refresh.
func WithRefreshCallback(cb SubscriberCallback) ClientOption {
	return func(c *Client) error {
		c.repoOpts.OnRefresh = cb
		return nil
	}
}

// WithFeatureRepository attaches an externally managed repository.
// The caller keeps ownership: Close on the client won't close it.
func WithFeatureRepository(repo *FeatureRepository) ClientOption {
	return func(c *Client) error {
		c.repo = repo
		c.ownRepo = false
		return nil
	}
}

// WithAttributes are used to assign variations
func WithAttributes(attributes Attributes) ClientOption {
	return func(c *Client) error {
		c.attributes = attributes.toValue()
		return nil
	}
}

// WithUrl sets url of the current page
func WithUrl(rawUrl string) ClientOption {
	return func(c *Client) error {
		u, err := url.Parse(rawUrl)
		if err != nil {
			return err
		}
		c.url = u
		return nil
	}
}

// WithFeatures definitions (usually pulled from an API or cache)
func WithFeatures(features FeatureMap) ClientOption {
	return func(c *Client) error {
		c.data.features = features
		return nil
	}
}

// WithSavedGroups sets the saved groups referenced by $inGroup and
// $notInGroup conditions.
func WithSavedGroups(savedGroups condition.SavedGroups) ClientOption {
	return func(c *Client) error {
		c.data.savedGroups = savedGroups
		return nil
	}
}

// WithForcedVariations force specific experiments to always assign a specific variation (used for QA)
func WithForcedVariations(forcedVariations ForcedVariationsMap) ClientOption {
	return func(c *Client) error {
		c.forcedVariations = forcedVariations
		return nil
	}
}

// WithQaMode if true, random assignment is disabled and only explicitly forced variations are used.
func WithQaMode(qaMode bool) ClientOption {
	return func(c *Client) error {
		c.qaMode = qaMode
		return nil
	}
}

// WithExperimentCallback a function that is called every time a user
// is included in an experiment.
func WithExperimentCallback(cb ExperimentCallback) ClientOption {
	return func(c *Client) error {
		c.experimentCallback = cb
		return nil
	}
}

// WithFeatureUsageCallback a function that is called every time a
// feature is evaluated.
func WithFeatureUsageCallback(cb FeatureUsageCallback) ClientOption {
	return func(c *Client) error {
		c.featureUsageCallback = cb
		return nil
	}
}

// WithExtraData is an opaque value passed through to callbacks.
func WithExtraData(extraData any) ClientOption {
	return func(c *Client) error {
		c.extraData = extraData
		return nil
	}
}

// WithHttpClient sets http client for GrowthBook API calls
func WithHttpClient(httpClient *http.Client) ClientOption {
	return func(c *Client) error {
		c.repoOpts.HttpClient = httpClient
		return nil
	}
}

// WithLogger sets logger for GrowthBook client
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// Child client instance options

// WithEnabled creates child client instance with updated enabled switch
func (c *Client) WithEnabled(enabled bool) (*Client, error) {
	return c.cloneWith(WithEnabled(enabled))
}

// WithQaMode creates child client instance with updated qaMode switch
func (c *Client) WithQaMode(qaMode bool) (*Client, error) {
	return c.cloneWith(WithQaMode(qaMode))
}

// WithLogger creates child client instance that uses provided logger
func (c *Client) WithLogger(logger *slog.Logger) (*Client, error) {
	return c.cloneWith(WithLogger(logger))
}

// WithAttributes creates child client instance that uses provided attributes for evaluation
func (c *Client) WithAttributes(attributes Attributes) (*Client, error) {
	return c.cloneWith(WithAttributes(attributes))
}

// WithUrl creates child client instance with updated page url
func (c *Client) WithUrl(rawUrl string) (*Client, error) {
	return c.cloneWith(WithUrl(rawUrl))
}

// WithForcedVariations creates child client instance with updated forced variations
func (c *Client) WithForcedVariations(forcedVariations ForcedVariationsMap) (*Client, error) {
	return c.cloneWith(WithForcedVariations(forcedVariations))
}

// WithExtraData creates child client instance with updated callback extra data
func (c *Client) WithExtraData(extraData any) (*Client, error) {
	return c.cloneWith(WithExtraData(extraData))
}

func (c *Client) cloneWith(opts ...ClientOption) (*Client, error) {
	clone := c.clone()
	for _, opt := range opts {
		if err := opt(clone); err != nil {
			return nil, err
		}
	}
	return clone, nil
}
