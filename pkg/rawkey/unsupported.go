//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly || windows)

package rawkey

// Single-keystroke input needs termios or a Windows console. Building for
// any other platform stops here.
var _ = rawkeyPlatformNotSupported
