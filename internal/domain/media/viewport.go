package media

import "context"

// Viewport is the display area a file is laid out for.
type Viewport struct {
	Width  int
	Height int
}

// DefaultViewport is used when neither the caller nor config supplies one.
var DefaultViewport = Viewport{Width: 1920, Height: 1080}

type viewportKey struct{}

// ContextWithViewport attaches the caller's viewport to ctx.
func ContextWithViewport(ctx context.Context, v Viewport) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, viewportKey{}, v)
}

// ViewportFromContext returns the viewport stored in ctx, if any.
func ViewportFromContext(ctx context.Context) (Viewport, bool) {
	if ctx == nil {
		return Viewport{}, false
	}
	v, ok := ctx.Value(viewportKey{}).(Viewport)
	if !ok || v.Width <= 0 || v.Height <= 0 {
		return Viewport{}, false
	}
	return v, true
}
