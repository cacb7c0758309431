package shader

import (
	"github.com/gogpu/naga/glsl"

	"github.com/gogpu/glcheck"
	"github.com/gogpu/glcheck/internal/cache"
)

type translationKey struct {
	source  string
	version glsl.Version
	stage   Stage
	entry   string
}

// Translator translates WGSL sources and keeps the most recently used
// results, so that contexts rebuilding the same programs parse each
// source once per GLSL version. A Translator is safe for concurrent use.
type Translator struct {
	outputs *cache.LRU[translationKey, *Output]
}

// NewTranslator returns a Translator that keeps up to capacity
// translated entry points.
func NewTranslator(capacity int) *Translator {
	return &Translator{outputs: cache.New[translationKey, *Output](capacity)}
}

// Translate emits GLSL for one entry point of source. Failed
// translations are not kept.
func (t *Translator) Translate(source string, version glsl.Version, s Stage, entry string) (*Output, error) {
	key := translationKey{source: source, version: version, stage: s, entry: entry}
	if out, ok := t.outputs.Get(key); ok {
		return out, nil
	}
	m, err := Parse(source)
	if err != nil {
		return nil, err
	}
	out, err := m.Translate(version, s, entry)
	if err != nil {
		return nil, err
	}
	t.outputs.Put(key, out)
	return out, nil
}

// Build is BuildSource with translations served from t.
func (t *Translator) Build(c Compiler, name, source string, entries Entries) (*glcheck.Program, error) {
	return build(c, name, func(version glsl.Version, s Stage, entry string) (*Output, error) {
		return t.Translate(source, version, s, entry)
	}, entries)
}

// CacheStats reports how a Translator's cache has been used.
type CacheStats struct {
	Entries   int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Stats returns the cache counters of t.
func (t *Translator) Stats() CacheStats {
	s := t.outputs.Stats()
	return CacheStats{Entries: s.Len, Hits: s.Hits, Misses: s.Misses, Evictions: s.Evictions}
}
