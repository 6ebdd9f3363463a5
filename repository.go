package growthbook

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	neturl "net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/growthbook/growthbook-go/internal/condition"
)

const (
	defaultApiHost     = "https://cdn.growthbook.io"
	defaultStaleTTL    = 60 * time.Second
	defaultInitTimeout = 5 * time.Second
)

var (
	ErrNoClientKey      = errors.New("no client key provided")
	ErrNoDecryptionKey  = errors.New("no decryption key provided")
	ErrRepositoryClosed = errors.New("feature repository is closed")
)

// RefreshStrategy selects how a FeatureRepository keeps its features
// fresh.
type RefreshStrategy int

const (
	// PeriodicRefresh polls the features endpoint every stale TTL.
	PeriodicRefresh RefreshStrategy = iota
	// ManualRefresh only fetches on explicit Refresh calls and on
	// reads that observe a stale snapshot.
	ManualRefresh
)

// SubscriptionID identifies a refresh subscriber.
type SubscriptionID uint

// SubscriberCallback is invoked with the new feature map after every
// successful refresh, strictly after the map has been published to
// readers.
type SubscriberCallback func(FeatureMap)

type repoStatus int

const (
	repoPending repoStatus = iota
	repoReady
	repoError
)

// RepositoryOptions configures a FeatureRepository. The zero value is
// usable: every field has a default.
type RepositoryOptions struct {
	// ApiHost is the GrowthBook API host. A trailing slash is
	// stripped. Defaults to https://cdn.growthbook.io.
	ApiHost string
	// DecryptionKey is the base64-encoded AES key for encrypted
	// feature payloads. Optional.
	DecryptionKey string
	// StaleTTL is how long a fetched feature map is considered fresh.
	// Defaults to 60 seconds.
	StaleTTL time.Duration
	// InitTimeout bounds AwaitInit when the caller's context carries
	// no earlier deadline. Defaults to 5 seconds.
	InitTimeout time.Duration
	// Strategy defaults to PeriodicRefresh.
	Strategy RefreshStrategy
	// HttpClient defaults to http.DefaultClient.
	HttpClient *http.Client
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Cache stores fetched payloads; defaults to an in-process map.
	Cache Cache
	// OnRefresh, if set, is subscribed before the first fetch.
	OnRefresh SubscriberCallback
}

// FeatureRepository is a long-lived, concurrently accessible cache of
// feature definitions. It fetches the feature payload over HTTP,
// optionally decrypts it, and serves immutable snapshots with
// stale-while-revalidate semantics: readers never block on a fetch.
type FeatureRepository struct {
	apiHost       string
	clientKey     string
	decryptionKey string
	staleTTL      time.Duration
	initTimeout   time.Duration
	strategy      RefreshStrategy
	httpClient    *http.Client
	logger        *slog.Logger
	cache         Cache

	mu          sync.RWMutex
	features    FeatureMap
	savedGroups condition.SavedGroups
	lastFetch   time.Time
	etag        string
	status      repoStatus
	lastErr     error
	waiters     []chan error
	subscribers map[SubscriptionID]SubscriberCallback
	nextSubID   SubscriptionID
	fetching    bool
	started     bool
	closed      bool
	runCtx      context.Context
	cancel      context.CancelFunc
}

// NewFeatureRepository creates a repository for the given client key.
// The repository does nothing until Start is called.
func NewFeatureRepository(clientKey string, opts *RepositoryOptions) (*FeatureRepository, error) {
	if clientKey == "" {
		return nil, ErrNoClientKey
	}
	if opts == nil {
		opts = &RepositoryOptions{}
	}

	r := &FeatureRepository{
		apiHost:       defaultApiHost,
		clientKey:     clientKey,
		decryptionKey: opts.DecryptionKey,
		staleTTL:      defaultStaleTTL,
		initTimeout:   defaultInitTimeout,
		strategy:      opts.Strategy,
		httpClient:    http.DefaultClient,
		logger:        slog.Default(),
		cache:         newMemoryCache(),
		status:        repoPending,
		subscribers:   map[SubscriptionID]SubscriberCallback{},
	}
	if opts.ApiHost != "" {
		r.apiHost = strings.TrimSuffix(opts.ApiHost, "/")
	}
	if opts.StaleTTL != 0 {
		r.staleTTL = opts.StaleTTL
	}
	if opts.InitTimeout != 0 {
		r.initTimeout = opts.InitTimeout
	}
	if opts.HttpClient != nil {
		r.httpClient = opts.HttpClient
	}
	if opts.Logger != nil {
		r.logger = opts.Logger
	}
	r.logger = r.logger.With("source", "GrowthBook feature repository")
	if opts.Cache != nil {
		r.cache = opts.Cache
	}
	if opts.OnRefresh != nil {
		r.Subscribe(opts.OnRefresh)
	}
	return r, nil
}

// Start schedules periodic refreshes (if configured) and kicks off
// the asynchronous initial fetch. A warm cache entry is published
// immediately so evaluation can proceed while the fetch runs.
func (r *FeatureRepository) Start(ctx context.Context) {
	r.mu.Lock()
	if r.started || r.closed {
		r.mu.Unlock()
		return
	}
	r.started = true
	ctx, cancel := context.WithCancel(ctx)
	r.runCtx, r.cancel = ctx, cancel
	r.mu.Unlock()

	if entry, err := r.cache.Get(ctx, r.key()); err != nil {
		r.logger.Warn("Error reading feature cache", "error", err)
	} else if entry != nil && entry.Response != nil {
		if err := r.publish(entry.Response, entry.FetchedAt, false); err != nil {
			r.logger.Warn("Error publishing cached features", "error", err)
		}
	}

	go func() {
		if err := r.refresh(ctx); err != nil && !errors.Is(err, context.Canceled) {
			r.logger.Error("Initial feature fetch failed", "error", err)
		}
	}()

	if r.strategy == PeriodicRefresh {
		go r.pollLoop(ctx)
	}
}

// AwaitInit blocks until the first fetch settles, the configured
// initialization timeout elapses, or the repository closes. A timeout
// does not cancel the in-flight fetch.
func (r *FeatureRepository) AwaitInit(ctx context.Context) error {
	r.mu.Lock()
	switch {
	case r.closed:
		r.mu.Unlock()
		return ErrRepositoryClosed
	case r.status == repoReady:
		r.mu.Unlock()
		return nil
	case r.status == repoError:
		err := r.lastErr
		r.mu.Unlock()
		return err
	}
	ch := make(chan error, 1)
	r.waiters = append(r.waiters, ch)
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, r.initTimeout)
	defer cancel()
	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Features returns the current snapshot without blocking. A stale
// snapshot is returned as is and a background refresh is started.
func (r *FeatureRepository) Features() FeatureMap {
	features, _ := r.snapshot()
	return features
}

func (r *FeatureRepository) snapshot() (FeatureMap, condition.SavedGroups) {
	r.mu.RLock()
	features, groups := r.features, r.savedGroups
	stale := r.status == repoReady && !r.fetching && !r.closed &&
		time.Since(r.lastFetch) > r.staleTTL
	ctx := r.runCtx
	r.mu.RUnlock()

	if stale && ctx != nil {
		go func() {
			// Refresh failures are logged inside refresh.
			_ = r.refresh(ctx)
		}()
	}
	return features, groups
}

// Refresh forces a fetch. It is a no-op if another fetch is already
// in flight.
func (r *FeatureRepository) Refresh(ctx context.Context) error {
	return r.refresh(ctx)
}

// Subscribe registers a callback invoked after every successful
// refresh. Callbacks run sequentially in ascending subscription
// order; a panicking subscriber is recovered and logged without
// affecting the others.
func (r *FeatureRepository) Subscribe(cb SubscriberCallback) SubscriptionID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextSubID++
	id := r.nextSubID
	r.subscribers[id] = cb
	return id
}

// Unsubscribe removes a subscriber.
func (r *FeatureRepository) Unsubscribe(id SubscriptionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subscribers, id)
}

// Close stops the poll timer and fails pending waiters with
// ErrRepositoryClosed. The cached feature map stays readable.
func (r *FeatureRepository) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	cancel := r.cancel
	waiters := r.waiters
	r.waiters = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	for _, ch := range waiters {
		ch <- ErrRepositoryClosed
	}
	return nil
}

func (r *FeatureRepository) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(r.staleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Refresh failures are logged inside refresh and must not
			// stop the loop.
			_ = r.refresh(ctx)
		}
	}
}

// refresh performs one fetch-decrypt-publish cycle. At most one fetch
// is in flight at any time; concurrent calls return immediately.
// Failures leave the current snapshot untouched.
func (r *FeatureRepository) refresh(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRepositoryClosed
	}
	if r.fetching {
		r.mu.Unlock()
		return nil
	}
	r.fetching = true
	etag := r.etag
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.fetching = false
		r.mu.Unlock()
	}()

	resp, err := r.fetch(ctx, etag)
	now := time.Now()
	if errors.Is(err, errNotModified) {
		r.mu.Lock()
		r.lastFetch = now
		r.mu.Unlock()
		return nil
	}
	if err == nil {
		err = r.publish(resp, now, true)
	}
	if err != nil {
		r.logger.Error("Error refreshing features", "error", err)
		r.fail(err)
		return err
	}
	return nil
}

// fetch retries transient failures (transport errors, 5xx) with
// exponential backoff; payload and protocol errors are permanent.
func (r *FeatureRepository) fetch(ctx context.Context, etag string) (*FeatureApiResponse, error) {
	apiUrl := r.apiHost + "/api/features/" + r.clientKey

	var resp *FeatureApiResponse
	op := func() error {
		var err error
		resp, err = callFeatureApi(ctx, r.httpClient, apiUrl, etag)
		if err == nil {
			return nil
		}
		var statusErr *httpStatusError
		var urlErr *neturl.Error
		if errors.As(err, &statusErr) && statusErr.retryable() {
			return err
		}
		if errors.As(err, &urlErr) {
			return err
		}
		return backoff.Permanent(err)
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		return nil, err
	}
	return resp, nil
}

// publish decrypts the payload if needed, swaps in the new feature
// map, releases waiters and notifies subscribers, in that order.
func (r *FeatureRepository) publish(resp *FeatureApiResponse, fetchedAt time.Time, writeCache bool) error {
	features := resp.Features
	if resp.EncryptedFeatures != "" {
		if r.decryptionKey == "" {
			return ErrNoDecryptionKey
		}
		var err error
		features, err = decryptFeatures(resp.EncryptedFeatures, r.decryptionKey)
		if err != nil {
			return err
		}
	}
	if features == nil {
		features = FeatureMap{}
	}

	r.mu.Lock()
	r.features = features
	r.savedGroups = resp.SavedGroups
	r.lastFetch = fetchedAt
	if resp.Etag != "" {
		r.etag = resp.Etag
	}
	r.status = repoReady
	r.lastErr = nil
	waiters := r.waiters
	r.waiters = nil
	subs := r.orderedSubscribers()
	r.mu.Unlock()

	for _, ch := range waiters {
		ch <- nil
	}

	if writeCache {
		entry := &CacheEntry{
			Response:  resp,
			FetchedAt: fetchedAt,
			StaleAt:   fetchedAt.Add(r.staleTTL),
		}
		if err := r.cache.Set(context.Background(), r.key(), entry); err != nil {
			r.logger.Warn("Error writing feature cache", "error", err)
		}
	}

	r.notify(subs, features)
	return nil
}

// fail records a fetch error. Only a pending repository transitions
// to the error state; once ready it stays ready on its stale
// snapshot.
func (r *FeatureRepository) fail(err error) {
	r.mu.Lock()
	if r.status != repoReady {
		r.status = repoError
		r.lastErr = err
	}
	waiters := r.waiters
	r.waiters = nil
	r.mu.Unlock()

	for _, ch := range waiters {
		ch <- err
	}
}

// orderedSubscribers must be called with the lock held.
func (r *FeatureRepository) orderedSubscribers() []SubscriberCallback {
	ids := maps.Keys(r.subscribers)
	slices.Sort(ids)
	subs := make([]SubscriberCallback, len(ids))
	for i, id := range ids {
		subs[i] = r.subscribers[id]
	}
	return subs
}

func (r *FeatureRepository) notify(subs []SubscriberCallback, features FeatureMap) {
	for _, cb := range subs {
		func() {
			defer func() {
				if p := recover(); p != nil {
					r.logger.Error("Panic in refresh subscriber", "panic", p)
				}
			}()
			cb(features)
		}()
	}
}

func (r *FeatureRepository) key() string {
	return cacheKey(r.apiHost, r.clientKey)
}

func decryptFeatures(encrypted string, key string) (FeatureMap, error) {
	plain, err := decrypt(encrypted, key)
	if err != nil {
		return nil, err
	}
	var features FeatureMap
	if err := json.Unmarshal([]byte(plain), &features); err != nil {
		return nil, err
	}
	return features, nil
}
