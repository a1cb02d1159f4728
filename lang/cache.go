package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/quark/log"
)

// Identical (pattern set, source) pairs share one immutable tokenization.
var (
	tokenCache sync.Map // cacheKey -> *cacheEntry
	cacheHits  atomic.Uint64
	cacheMiss  atomic.Uint64
)

type cacheKey struct {
	set  string
	hash uint64
	size int
}

type cacheEntry struct {
	once   sync.Once
	tokens []Token
	err    error
}

func cachedTokens(set, source string, tokenize func() ([]Token, error)) ([]Token, error) {
	key := cacheKey{set: set, hash: xxh3.HashString(source), size: len(source)}

	value, hit := tokenCache.LoadOrStore(key, new(cacheEntry))
	entry := value.(*cacheEntry)

	if hit {
		cacheHits.Add(1)
	} else {
		cacheMiss.Add(1)
	}

	entry.once.Do(func() { entry.tokens, entry.err = tokenize() })

	return entry.tokens, entry.err
}

// CacheStats reports the token cache's hit and miss counts.
func CacheStats() (hits, misses uint64) {
	return cacheHits.Load(), cacheMiss.Load()
}

// ClearCache discards every cached tokenization and resets the counters.
func ClearCache() {
	tokenCache.Clear()
	cacheHits.Store(0)
	cacheMiss.Store(0)
}

// ReadSource reads a complete document from r using asynchronous
// read-ahead.
func ReadSource(ctx context.Context, r io.Reader) (string, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return "", ErrReadSource.Wrap(err)
	}

	log.TraceContext(ctx, "read source",
		slog.Int("bytes", len(data)),
		slog.String("hash", strconv.FormatUint(xxh3.Hash(data), 16)),
	)

	return string(data), nil
}
