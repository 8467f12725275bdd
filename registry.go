package lens

import (
	"fmt"
	"reflect"
	"sync"
)

// rendererKey combines type and codec for cache lookup.
type rendererKey struct {
	typ   reflect.Type
	codec any
}

// codecIdentity is the cache identity of a codec: the pointed-to value for
// pointer codecs, so equally configured codecs share a renderer.
func codecIdentity(c Codec) any {
	rv := reflect.ValueOf(c)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Type().Comparable() {
		return rv.Elem().Interface()
	}
	if rv.Type().Comparable() {
		return c
	}
	return rv.Type()
}

var (
	tables   = make(map[reflect.Type]any)
	tablesMu sync.RWMutex

	renderers   = make(map[rendererKey]any)
	renderersMu sync.RWMutex
)

// Register returns the field table for T, building and caching it on first
// use. It fails when T is not a struct, embeds another type, or two fields
// resolve to the same name.
//
// Declaring the table at package level surfaces these errors at startup:
//
//	var userFields = lens.MustRegister[User]()
func Register[T any]() (*Fields[T], error) {
	typ := reflect.TypeFor[T]()

	// Fast path: read-lock cache check
	tablesMu.RLock()
	if cached, ok := tables[typ]; ok {
		tablesMu.RUnlock()
		return cached.(*Fields[T]), nil
	}
	tablesMu.RUnlock()

	// Slow path: build and cache with write-lock
	tablesMu.Lock()
	defer tablesMu.Unlock()

	// Double-check pattern
	if cached, ok := tables[typ]; ok {
		return cached.(*Fields[T]), nil
	}

	fs, err := buildFields[T]()
	if err != nil {
		return nil, err
	}

	tables[typ] = fs
	return fs, nil
}

// MustRegister is like Register but panics on error.
func MustRegister[T any]() *Fields[T] {
	fs, err := Register[T]()
	if err != nil {
		panic("lens: " + err.Error())
	}
	return fs
}

// Use returns a cached renderer or builds a new one.
// The renderer is cached by type and codec configuration: two codecs of the
// same concrete type and settings share a renderer, while codecs with the
// same content type but different output (indentation, headers, another
// library) do not. Options only apply when the renderer is first built.
func Use[T any](codec Codec, opts ...RendererOption) (*Renderer[T], error) {
	if codec == nil {
		return nil, fmt.Errorf("lens: nil codec")
	}
	key := rendererKey{typ: reflect.TypeFor[T](), codec: codecIdentity(codec)}

	renderersMu.RLock()
	if cached, ok := renderers[key]; ok {
		renderersMu.RUnlock()
		return cached.(*Renderer[T]), nil
	}
	renderersMu.RUnlock()

	renderersMu.Lock()
	defer renderersMu.Unlock()

	if cached, ok := renderers[key]; ok {
		return cached.(*Renderer[T]), nil
	}

	r, err := NewRenderer[T](codec, opts...)
	if err != nil {
		return nil, err
	}

	renderers[key] = r
	return r, nil
}

// Reset clears the renderer cache.
// Field tables are immutable per type and are kept.
// This is primarily useful for test isolation.
func Reset() {
	renderersMu.Lock()
	defer renderersMu.Unlock()
	renderers = make(map[rendererKey]any)
}
