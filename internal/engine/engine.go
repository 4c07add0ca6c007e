package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/utafrali/catalog-engine/internal/catalog"
)

// Cache is an optional byte cache for derived results such as trending
// categories. Implementations must be safe for concurrent use and must
// swallow backend failures (a miss is always an acceptable answer).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// InteractionPublisher emits user interaction events for downstream
// analytics consumers.
type InteractionPublisher interface {
	PublishInteraction(ctx context.Context, userID, productID, interactionType string) error
}

// Engine answers search and recommendation queries over a product catalog.
// It keeps an immutable token index that is rebuilt wholesale via Rebuild
// and swapped atomically; all query methods are safe for concurrent use.
type Engine struct {
	catalog   catalog.Reader
	logger    *slog.Logger
	cache     Cache
	publisher InteractionPublisher

	corrections       map[string][]string
	complementaryCats map[string][]string
	complementaryTags map[string][]string

	index   atomic.Pointer[Index]
	weights atomic.Pointer[categoryWeights]
}

// Option configures optional engine collaborators.
type Option func(*Engine)

// WithCache attaches a cache for derived results.
func WithCache(c Cache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithInteractionPublisher attaches a publisher for interaction events.
func WithInteractionPublisher(p InteractionPublisher) Option {
	return func(e *Engine) { e.publisher = p }
}

// New creates an engine over the given catalog. The index starts empty;
// call Rebuild to populate it. Queries issued before the first successful
// rebuild still work because every query path re-consults the catalog.
func New(reader catalog.Reader, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		catalog:           reader,
		logger:            logger,
		corrections:       defaultCorrections,
		complementaryCats: defaultComplementaryCategories,
		complementaryTags: defaultComplementaryTags,
	}
	e.index.Store(emptyIndex())
	e.weights.Store(emptyCategoryWeights())
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rebuild snapshots the catalog and swaps in a fresh token index and
// category-weight table. On failure the previous index stays in place.
func (e *Engine) Rebuild(ctx context.Context) error {
	start := time.Now()

	products, err := e.catalog.ListActiveProducts(ctx)
	if err != nil {
		indexRebuilds.WithLabelValues("error").Inc()
		return fmt.Errorf("list active products: %w", err)
	}
	categories, err := e.catalog.ListActiveCategories(ctx)
	if err != nil {
		indexRebuilds.WithLabelValues("error").Inc()
		return fmt.Errorf("list active categories: %w", err)
	}

	ix := buildIndex(products, categories)
	e.index.Store(ix)
	e.weights.Store(buildCategoryWeights(products))

	indexRebuilds.WithLabelValues("success").Inc()
	indexedProducts.Set(float64(ix.Size()))

	e.logger.InfoContext(ctx, "search index rebuilt",
		slog.Int("products", ix.Size()),
		slog.Int("categories", len(categories)),
		slog.Duration("took", time.Since(start)),
	)
	return nil
}

func (e *Engine) currentIndex() *Index {
	return e.index.Load()
}

func (e *Engine) currentWeights() *categoryWeights {
	return e.weights.Load()
}
