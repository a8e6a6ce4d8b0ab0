package icons

import (
	"image"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/iburimskiy/circle-selector/internal/circle"
)

type cacheKey struct {
	ref  circle.IconRef
	size int
}

// Cache memoizes resolved icons by reference and size. Failed lookups
// are not cached so a file that appears later can still be picked up.
type Cache struct {
	next  circle.IconProvider
	cache *lru.Cache[cacheKey, image.Image]
}

var _ circle.IconProvider = (*Cache)(nil)

// NewCache wraps next with an LRU cache of size entries. A size of zero
// or less disables caching and returns next unchanged.
func NewCache(next circle.IconProvider, size int) (circle.IconProvider, error) {
	if size <= 0 {
		return next, nil
	}
	c, err := lru.New[cacheKey, image.Image](size)
	if err != nil {
		return nil, err
	}
	return &Cache{next: next, cache: c}, nil
}

// Resolve implements circle.IconProvider.
func (c *Cache) Resolve(ref circle.IconRef, sizePx int) image.Image {
	key := cacheKey{ref: ref, size: sizePx}
	if img, ok := c.cache.Get(key); ok {
		return img
	}
	img := c.next.Resolve(ref, sizePx)
	if img != nil {
		c.cache.Add(key, img)
	}
	return img
}

// Len returns the number of cached icons.
func (c *Cache) Len() int {
	return c.cache.Len()
}

// Purge drops every cached icon.
func (c *Cache) Purge() {
	c.cache.Purge()
}
