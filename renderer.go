package lens

import (
	"context"
	"fmt"
	"time"
)

// Renderer serializes views of T through a Codec.
//
// Renderers are immutable after construction and safe for concurrent use.
// Each Render call builds no shared state; the view it receives belongs to
// the caller.
type Renderer[T any] struct {
	codec     Codec
	fields    *Fields[T]
	separator string
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererConfig)

type rendererConfig struct {
	separator string
}

// WithSeparator sets the separator RenderList splits on.
// The default is DefaultSeparator.
func WithSeparator(sep string) RendererOption {
	return func(c *rendererConfig) {
		c.separator = sep
	}
}

// NewRenderer creates a Renderer for T.
// It fails when T cannot be viewed (see Register).
func NewRenderer[T any](codec Codec, opts ...RendererOption) (*Renderer[T], error) {
	if codec == nil {
		return nil, fmt.Errorf("lens: nil codec")
	}

	fs, err := Register[T]()
	if err != nil {
		return nil, err
	}

	cfg := rendererConfig{separator: DefaultSeparator}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.separator == "" {
		return nil, fmt.Errorf("lens: empty separator")
	}

	r := &Renderer[T]{
		codec:     codec,
		fields:    fs,
		separator: cfg.separator,
	}

	emitRendererCreated(context.Background(), codec.ContentType(), fs.typeName)
	return r, nil
}

// ContentType returns the codec's MIME type.
func (r *Renderer[T]) ContentType() string { return r.codec.ContentType() }

// Fields returns T's field table.
func (r *Renderer[T]) Fields() *Fields[T] { return r.fields }

// Render marshals view through the codec.
// Encoding errors are returned as the codec reports them.
func (r *Renderer[T]) Render(ctx context.Context, view *View[T]) ([]byte, error) {
	if view == nil {
		return nil, fmt.Errorf("lens: nil view")
	}
	selected := len(view.selected)

	start := time.Now()
	emitRenderStart(ctx, r.codec.ContentType(), r.fields.typeName, selected)

	var retErr error
	var retData []byte
	defer func() {
		emitRenderComplete(ctx, r.codec.ContentType(), r.fields.typeName,
			len(retData), time.Since(start), selected, retErr)
	}()

	if view.err != nil {
		retErr = view.err
		return nil, retErr
	}

	retData, retErr = r.codec.Marshal(view)
	return retData, retErr
}

// RenderFields renders record restricted to fields.
// No fields renders every field.
func (r *Renderer[T]) RenderFields(ctx context.Context, record *T, fields ...Field[T]) ([]byte, error) {
	view, err := Of(record).WithFields(fields...)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	return r.Render(ctx, view)
}

// RenderNames renders record restricted to the named fields.
// No names renders every field.
func (r *Renderer[T]) RenderNames(ctx context.Context, record *T, names ...string) ([]byte, error) {
	view, err := Of(record).WithNames(names...)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	return r.Render(ctx, view)
}

// RenderList renders record restricted to a separated field list, such as
// the value of a "fields" query parameter.
//
// An empty list is not "all fields": it fails with ErrUnknownField like
// Fields.ParseDelimited. Use Render(ctx, Of(record)) for the full record.
func (r *Renderer[T]) RenderList(ctx context.Context, record *T, list string) ([]byte, error) {
	set, err := r.fields.ParseDelimited(list, r.separator)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	view, err := Of(record).WithFields(set.Fields()...)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	return r.Render(ctx, view)
}
