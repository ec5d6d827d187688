package lineedit

// DefaultKeymap returns the key codes the Windows console delivers with line
// input disabled.
func DefaultKeymap() Keymap {
	return Keymap{
		Confirm:    '\r',
		Delete:     '\b',
		CursorBack: '\b',
	}
}
