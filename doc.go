//go:build !android && (linux || darwin || freebsd || netbsd || openbsd)

// Package userdb resolves accounts in the operating system user and group
// databases.
//
// Lookups go through the reentrant libc primitives (getpwnam_r and friends),
// so they see every account the system is configured to serve, not only the
// /etc files. Builds without cgo fall back to reading the files directly.
//
// A lookup that matches nothing returns (nil, nil): absence is an answer,
// not an error.
package userdb
