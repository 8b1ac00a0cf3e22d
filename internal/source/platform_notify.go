//go:build linux || darwin || freebsd || openbsd || netbsd || dragonfly || windows || solaris || illumos

package source

const notifySupported = true
