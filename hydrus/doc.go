// Package hydrus is a convenience layer over package api.
//
// A Hydrus value hands out File, URL and Page handles that issue requests
// through a shared api.Client. File metadata is fetched lazily and kept in a
// bounded LRU cache keyed by hash; operations that change a file drop its
// cache entry.
package hydrus
