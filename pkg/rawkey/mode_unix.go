//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package rawkey

import (
	"golang.org/x/sys/unix"
)

// modeGuard holds the termios state captured before a single read.
type modeGuard struct {
	fd    int
	saved unix.Termios
}

// acquire clears ICANON and ECHO only. ISIG stays on so Ctrl-C still
// reaches the process.
func acquire(fd int) (*modeGuard, error) {
	t, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, err
	}

	g := &modeGuard{fd: fd, saved: *t}

	t.Lflag &^= unix.ICANON | unix.ECHO
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, t); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *modeGuard) restore() error {
	return unix.IoctlSetTermios(g.fd, ioctlSetTermios, &g.saved)
}
