package lens

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for lens events.
var (
	SignalFieldsRegistered = capitan.NewSignal("lens.fields.registered", "Field table built for a record type")
	SignalRendererCreated  = capitan.NewSignal("lens.renderer.created", "Renderer instantiated")
	SignalRenderStart      = capitan.NewSignal("lens.render.start", "Render operation beginning")
	SignalRenderComplete   = capitan.NewSignal("lens.render.complete", "Render operation finished")
)

// Keys for typed event data.
var (
	KeyContentType   = capitan.NewStringKey("content_type")
	KeyTypeName      = capitan.NewStringKey("type_name")
	KeyFieldCount    = capitan.NewIntKey("field_count")
	KeySelectedCount = capitan.NewIntKey("selected_count")
	KeySize          = capitan.NewIntKey("size")
	KeyDuration      = capitan.NewDurationKey("duration")
	KeyError         = capitan.NewErrorKey("error")
)

// emitFieldsRegistered emits an event when a field table is built.
func emitFieldsRegistered(ctx context.Context, typeName string, fields int) {
	capitan.Emit(ctx, SignalFieldsRegistered,
		KeyTypeName.Field(typeName),
		KeyFieldCount.Field(fields),
	)
}

// emitRendererCreated emits an event when a renderer is created.
func emitRendererCreated(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalRendererCreated,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

// emitRenderStart emits an event when render begins.
func emitRenderStart(ctx context.Context, contentType, typeName string, selected int) {
	capitan.Emit(ctx, SignalRenderStart,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySelectedCount.Field(selected),
	)
}

// emitRenderComplete emits an event when render finishes.
// A selected count of zero means every field was rendered.
func emitRenderComplete(ctx context.Context, contentType, typeName string, size int, duration time.Duration, selected int, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
		KeySelectedCount.Field(selected),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalRenderComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalRenderComplete, fields...)
	}
}
