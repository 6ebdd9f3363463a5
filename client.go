package growthbook

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"sync"

	"github.com/growthbook/growthbook-go/internal/condition"
	"github.com/growthbook/growthbook-go/internal/value"
)

// Client evaluates features and experiments for a set of user
// attributes. Feature definitions come either from an attached
// FeatureRepository or from a locally managed map. Clients are cheap
// to derive: child clients created via the With* methods share the
// feature data and only override evaluation settings, so a server can
// keep one parent client and derive a child per request.
type Client struct {
	repo    *FeatureRepository
	ownRepo bool
	data    *data

	enabled              bool
	attributes           value.ObjValue
	url                  *url.URL
	forcedVariations     ForcedVariationsMap
	qaMode               bool
	experimentCallback   ExperimentCallback
	featureUsageCallback FeatureUsageCallback
	logger               *slog.Logger
	extraData            any

	clientKey string
	repoOpts  RepositoryOptions
}

// data is the locally managed feature store, shared between a client
// and its children. It is only consulted when no repository is
// attached.
type data struct {
	mu          sync.RWMutex
	features    FeatureMap
	savedGroups condition.SavedGroups
}

// ForcedVariationsMap forces experiments to always assign a specific
// variation, keyed by experiment. Useful for QA.
type ForcedVariationsMap map[string]int

// ExperimentCallback is executed every time a user is included in an
// experiment.
type ExperimentCallback func(context.Context, *Experiment, *ExperimentResult, any)

// FeatureUsageCallback is executed every time a feature is evaluated.
type FeatureUsageCallback func(context.Context, string, *FeatureResult, any)

// NewApiClient creates a client that fetches features from the given
// GrowthBook API host.
func NewApiClient(apiHost string, clientKey string) (*Client, error) {
	ctx := context.Background()
	return NewClient(ctx, WithApiHost(apiHost), WithClientKey(clientKey))
}

// NewClient creates a client from the given options. When a client
// key is configured and no repository is injected, the client builds
// its own repository and starts it with ctx; use EnsureLoaded to wait
// for the first load.
func NewClient(ctx context.Context, opts ...ClientOption) (*Client, error) {
	client := defaultClient()
	for _, opt := range opts {
		if err := opt(client); err != nil {
			return nil, err
		}
	}

	if client.repo == nil && client.clientKey != "" {
		repoOpts := client.repoOpts
		if repoOpts.Logger == nil {
			repoOpts.Logger = client.logger
		}
		repo, err := NewFeatureRepository(client.clientKey, &repoOpts)
		if err != nil {
			return nil, err
		}
		client.repo = repo
		client.ownRepo = true
		repo.Start(ctx)
	}

	return client, nil
}

func defaultClient() *Client {
	return &Client{
		data:    &data{},
		enabled: true,
		logger:  slog.Default(),
	}
}

// EnsureLoaded blocks until the attached repository finishes its
// initial load. Clients without a repository are loaded by definition.
func (client *Client) EnsureLoaded(ctx context.Context) error {
	if client.repo == nil {
		return nil
	}
	return client.repo.AwaitInit(ctx)
}

// Refresh forces a feature fetch on the attached repository.
func (client *Client) Refresh(ctx context.Context) error {
	if client.repo == nil {
		return nil
	}
	return client.repo.Refresh(ctx)
}

// Close releases the repository if this client family created it.
// Derived clients share the repository, so closing any of them closes
// it for all.
func (client *Client) Close() error {
	if client.repo == nil || !client.ownRepo {
		return nil
	}
	return client.repo.Close()
}

// SetFeatures replaces the locally managed feature map. It has no
// effect on clients with an attached repository.
func (client *Client) SetFeatures(features FeatureMap) error {
	client.data.mu.Lock()
	defer client.data.mu.Unlock()
	client.data.features = features
	return nil
}

// SetJSONFeatures replaces the locally managed feature map from JSON.
func (client *Client) SetJSONFeatures(featuresJSON string) error {
	var features FeatureMap
	if err := json.Unmarshal([]byte(featuresJSON), &features); err != nil {
		return err
	}
	return client.SetFeatures(features)
}

// SetEncryptedJSONFeatures replaces the locally managed feature map
// from an encrypted payload, using the client's decryption key.
func (client *Client) SetEncryptedJSONFeatures(encryptedJSON string) error {
	if client.repoOpts.DecryptionKey == "" {
		return ErrNoDecryptionKey
	}
	features, err := decryptFeatures(encryptedJSON, client.repoOpts.DecryptionKey)
	if err != nil {
		return err
	}
	return client.SetFeatures(features)
}

// EvalFeature evaluates a feature against the client's attributes and
// the current feature snapshot.
func (client *Client) EvalFeature(ctx context.Context, key string) *FeatureResult {
	e := client.evaluator()
	res := e.evalFeature(key)
	if client.featureUsageCallback != nil {
		client.featureUsageCallback(ctx, key, res, client.extraData)
	}
	if client.experimentCallback != nil && res.InExperiment() {
		client.experimentCallback(ctx, res.Experiment, res.ExperimentResult, client.extraData)
	}
	return res
}

// RunExperiment evaluates a standalone experiment.
func (client *Client) RunExperiment(ctx context.Context, exp *Experiment) *ExperimentResult {
	e := client.evaluator()
	res := e.runExperiment(exp, "")
	if client.experimentCallback != nil && res.InExperiment {
		client.experimentCallback(ctx, exp, res, client.extraData)
	}
	return res
}

// Features returns the current feature snapshot without blocking.
func (client *Client) Features() FeatureMap {
	features, _ := client.snapshot()
	return features
}

// Repository returns the attached feature repository, or nil.
func (client *Client) Repository() *FeatureRepository {
	return client.repo
}

// Internals

func (client *Client) snapshot() (FeatureMap, condition.SavedGroups) {
	if client.repo != nil {
		return client.repo.snapshot()
	}
	client.data.mu.RLock()
	defer client.data.mu.RUnlock()
	return client.data.features, client.data.savedGroups
}

func (client *Client) evaluator() *evaluator {
	features, savedGroups := client.snapshot()
	return &evaluator{
		features:         features,
		savedGroups:      savedGroups,
		attributes:       client.attributes,
		enabled:          client.enabled,
		url:              client.url,
		qaMode:           client.qaMode,
		forcedVariations: client.forcedVariations,
		logger:           client.logger,
	}
}

func (client *Client) clone() *Client {
	c := *client
	return &c
}
