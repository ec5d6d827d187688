//go:build !windows

package lineedit

// DefaultKeymap returns the key codes a POSIX terminal delivers once
// canonical mode is off: LF for Enter, DEL for Backspace.
func DefaultKeymap() Keymap {
	return Keymap{
		Confirm:    10,
		Delete:     127,
		CursorBack: 8,
	}
}
