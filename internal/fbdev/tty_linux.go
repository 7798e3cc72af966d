//go:build linux

package fbdev

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A
)

var ttyPaths = []string{"/dev/tty", "/dev/tty0"}

func setConsoleMode(mode int) error {
	var lastErr error
	for _, p := range ttyPaths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("KDSETMODE %d on %s: %w", mode, p, err)
			continue
		}
		return nil
	}
	return lastErr
}

// setGraphicsMode hides the console cursor and text while we draw.
func setGraphicsMode() error { return setConsoleMode(kdGraphics) }

func restoreTextMode() error { return setConsoleMode(kdText) }
