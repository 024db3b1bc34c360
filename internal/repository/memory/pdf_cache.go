package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// PdfCache keeps downloaded documents so the viewer does not hit the backend
// on every page load. Entries are tagged with the upload generation they were
// fetched for, so re-uploading a file under the same name never serves the
// previous bytes.
type PdfCache struct {
	cache *cache.Cache
}

type pdfEntry struct {
	generation int
	data       []byte
}

// NewPdfCache creates a cache whose entries live for ttl and which purges
// expired entries every ttl/3. A ttl of zero disables caching.
func NewPdfCache(ttl time.Duration) *PdfCache {
	if ttl <= 0 {
		return &PdfCache{}
	}
	c := cache.New(ttl, ttl/3)
	return &PdfCache{
		cache: c,
	}
}

func (r *PdfCache) Save(filename string, generation int, data []byte) {
	if r.cache == nil {
		return
	}
	r.cache.Set(filename, pdfEntry{generation: generation, data: data}, cache.DefaultExpiration)
}

// Get returns the bytes cached for filename in generation. An entry from
// another generation is evicted and reported as a miss.
func (r *PdfCache) Get(filename string, generation int) ([]byte, bool) {
	if r.cache == nil {
		return nil, false
	}
	x, found := r.cache.Get(filename)
	if !found {
		return nil, false
	}
	entry := x.(pdfEntry)
	if entry.generation != generation {
		r.cache.Delete(filename)
		return nil, false
	}
	return entry.data, true
}
