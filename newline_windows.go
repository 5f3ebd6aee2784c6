//go:build windows

package tdif

// platformLineTerminator is the host's line separator.
const platformLineTerminator = "\r\n"
