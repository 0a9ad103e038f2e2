package formula

import (
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Cache holds recently parsed formulas so that evaluating the same source
// repeatedly parses it only once. Formulas which differ only in whitespace
// share an entry. A Cache is safe for concurrent use.
type Cache[T any] struct {
	num  Numeric[T]
	opts []ParseOption
	lru  *lru.Cache[string, *Expr[T]]
	log  zerolog.Logger
}

// NewCache creates a cache holding up to size parsed formulas for num. Every
// formula is parsed with opts. Hits, misses, and evictions are logged to log
// at debug level.
func NewCache[T any](num Numeric[T], size int, log zerolog.Logger, opts ...ParseOption) (*Cache[T], error) {
	c := &Cache[T]{num: num, opts: opts, log: log}
	l, err := lru.NewWithEvict[string, *Expr[T]](size, c.evicted)
	if err != nil {
		return nil, errors.Wrapf(err, "creating formula cache of size %d", size)
	}
	c.lru = l
	return c, nil
}

func (c *Cache[T]) evicted(key string, _ *Expr[T]) {
	c.log.Debug().Str("formula", key).Msg("evicted")
}

// Parse returns the parsed form of src, parsing it only if it is not cached.
// Formulas that fail to parse are not cached.
func (c *Cache[T]) Parse(src string) (*Expr[T], error) {
	key := cachekey(src)
	if e, ok := c.lru.Get(key); ok {
		c.log.Debug().Str("formula", key).Msg("hit")
		return e, nil
	}
	c.log.Debug().Str("formula", key).Msg("miss")
	e, err := Parse(c.num, src, c.opts...)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, e)
	return e, nil
}

// Eval parses src through the cache and evaluates it with ans as the value
// of @.
func (c *Cache[T]) Eval(src string, ans T) (T, error) {
	e, err := c.Parse(src)
	if err != nil {
		var zero T
		return zero, err
	}
	return e.Eval(ans)
}

// Len returns the number of cached formulas.
func (c *Cache[T]) Len() int {
	return c.lru.Len()
}

// cachekey strips whitespace from src.
func cachekey(src string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, src)
}
