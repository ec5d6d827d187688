package rawkey

import (
	"golang.org/x/sys/windows"
)

// modeGuard holds the console input mode captured before a single read.
type modeGuard struct {
	handle windows.Handle
	saved  uint32
}

func acquire(fd int) (*modeGuard, error) {
	h := windows.Handle(fd)

	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return nil, err
	}

	raw := mode &^ (windows.ENABLE_LINE_INPUT | windows.ENABLE_ECHO_INPUT)
	if err := windows.SetConsoleMode(h, raw); err != nil {
		return nil, err
	}
	return &modeGuard{handle: h, saved: mode}, nil
}

func (g *modeGuard) restore() error {
	return windows.SetConsoleMode(g.handle, g.saved)
}
