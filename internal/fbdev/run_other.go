//go:build !linux

package fbdev

import (
	"context"

	"github.com/san-kum/plexus/internal/field"
)

// Run always fails off Linux: there is no framebuffer device to open.
func Run(ctx context.Context, scene *field.Scene, opts Options) error {
	return field.ErrNoSurface
}
