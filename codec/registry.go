package codec

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps normalized type URLs to codecs. Registration happens at
// process start; once sealed the registry is read only and safe for
// concurrent use.
type Registry struct {
	codecs map[string]Codec
	sealed bool
}

func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

// NormalizeTypeURL strips the leading "/" of a type URL.
func NormalizeTypeURL(typeURL string) string {
	return strings.TrimPrefix(typeURL, "/")
}

// Register binds typeURL to codec. It panics on an empty type URL, a nil
// codec, a duplicate registration or a sealed registry.
func (r *Registry) Register(typeURL string, codec Codec) {
	key := NormalizeTypeURL(typeURL)
	if key == "" {
		panic("codec: empty type url")
	}
	if codec == nil {
		panic(fmt.Sprintf("codec: nil codec for %s", key))
	}
	if r.sealed {
		panic(fmt.Sprintf("codec: registry is sealed, cannot register %s", key))
	}
	if _, ok := r.codecs[key]; ok {
		panic(fmt.Sprintf("codec: %s is already registered", key))
	}

	r.codecs[key] = codec
}

// Resolve returns the codec bound to typeURL. The leading "/" is optional.
func (r *Registry) Resolve(typeURL string) (Codec, bool) {
	c, ok := r.codecs[NormalizeTypeURL(typeURL)]
	return c, ok
}

// TypeURLs returns the registered normalized type URLs in sorted order.
func (r *Registry) TypeURLs() []string {
	urls := make([]string, 0, len(r.codecs))
	for url := range r.codecs {
		urls = append(urls, url)
	}
	sort.Strings(urls)

	return urls
}

// Seal forbids further registration.
func (r *Registry) Seal() {
	r.sealed = true
}

func (r *Registry) IsSealed() bool {
	return r.sealed
}
