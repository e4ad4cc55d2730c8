package transit

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for codec session events.
var (
	SignalEncodeStart    = capitan.NewSignal("transit.encode.start", "Encode session beginning")
	SignalEncodeComplete = capitan.NewSignal("transit.encode.complete", "Encode session finished")
	SignalDecodeStart    = capitan.NewSignal("transit.decode.start", "Decode session beginning")
	SignalDecodeComplete = capitan.NewSignal("transit.decode.complete", "Decode session finished")
	SignalCacheOverflow  = capitan.NewSignal("transit.cache.overflow", "Key cache exhausted its code space")
)

// Keys for typed event data.
var (
	KeySurface  = capitan.NewStringKey("surface")
	KeyTypeName = capitan.NewStringKey("type_name")
	KeySize     = capitan.NewIntKey("size")
	KeyDuration = capitan.NewDurationKey("duration")
	KeyError    = capitan.NewErrorKey("error")
)

// emitEncodeStart emits an event when an encode session begins.
func emitEncodeStart(surface, typeName string) {
	capitan.Emit(context.Background(), SignalEncodeStart,
		KeySurface.Field(surface),
		KeyTypeName.Field(typeName),
	)
}

// emitEncodeComplete emits an event when an encode session finishes.
func emitEncodeComplete(surface, typeName string, duration time.Duration, err error) {
	ctx := context.Background()
	fields := []capitan.Field{
		KeySurface.Field(surface),
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalEncodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalEncodeComplete, fields...)
	}
}

// emitDecodeStart emits an event when a decode session begins.
func emitDecodeStart(surface, typeName string) {
	capitan.Emit(context.Background(), SignalDecodeStart,
		KeySurface.Field(surface),
		KeyTypeName.Field(typeName),
	)
}

// emitDecodeComplete emits an event when a decode session finishes.
func emitDecodeComplete(surface, typeName string, duration time.Duration, err error) {
	ctx := context.Background()
	fields := []capitan.Field{
		KeySurface.Field(surface),
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDecodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDecodeComplete, fields...)
	}
}

// emitCacheOverflow emits an event when the key cache's code space is
// exhausted mid-encode.
func emitCacheOverflow(typeName string, size int) {
	capitan.Error(context.Background(), SignalCacheOverflow,
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
	)
}
