//go:build !android && (linux || darwin || freebsd || netbsd || openbsd)

package userdb

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sys/unix"
)

// User is one record of the user database, the fields of passwd(5). All
// fields are owned copies, so records stay valid indefinitely and compare
// with ==.
type User struct {
	Name   string
	Passwd string
	UID    uint32
	GID    uint32
	Gecos  string
	Dir    string
	Shell  string
}

// Group is one record of the group database.
type Group struct {
	Name    string
	Passwd  string
	GID     uint32
	Members []string
}

// ErrInvalidName reports a lookup name the OS interface cannot represent.
var ErrInvalidName = errors.New("invalid name")

// checkName rejects names with an embedded NUL before anything touches the
// OS. Passed through, the NUL would truncate the key and resolve the wrong
// account.
func checkName(op, name string) error {
	if strings.IndexByte(name, 0) >= 0 {
		return fmt.Errorf("%s %q: %w", op, name, ErrInvalidName)
	}
	return nil
}

// LookupUser finds the account named name. The record is nil when no such
// account exists; an error means the lookup itself failed, never absence.
func LookupUser(name string) (*User, error) {
	if err := checkName("lookup user", name); err != nil {
		return nil, err
	}
	return lookupUser(name)
}

// LookupUID finds the account with the given user id.
func LookupUID(uid uint32) (*User, error) {
	return lookupUID(uid)
}

// Current finds the account of the process's real user id.
func Current() (*User, error) {
	return LookupUID(uint32(unix.Getuid()))
}

// LookupGroup finds the group named name.
func LookupGroup(name string) (*Group, error) {
	if err := checkName("lookup group", name); err != nil {
		return nil, err
	}
	return lookupGroup(name)
}

// LookupGID finds the group with the given group id.
func LookupGID(gid uint32) (*Group, error) {
	return lookupGID(gid)
}

// GroupIDs returns the ids of the groups u belongs to, the primary group
// included.
func (u *User) GroupIDs() ([]uint32, error) {
	if err := checkName("list groups", u.Name); err != nil {
		return nil, err
	}
	return listGroupIDs(u)
}
