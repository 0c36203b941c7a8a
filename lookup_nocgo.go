//go:build !cgo && !android && (linux || darwin || freebsd || netbsd || openbsd)

package userdb

import (
	"fmt"

	"github.com/hnrobert/userdb/internal/etcfile"
)

func lookupUser(name string) (*User, error) {
	e, err := etcfile.Default().LookupUser(name)
	if err != nil {
		return nil, fmt.Errorf("lookup user %q: %w", name, err)
	}
	return userFromEntry(e), nil
}

func lookupUID(uid uint32) (*User, error) {
	e, err := etcfile.Default().LookupUID(uid)
	if err != nil {
		return nil, fmt.Errorf("lookup uid %d: %w", uid, err)
	}
	return userFromEntry(e), nil
}

func lookupGroup(name string) (*Group, error) {
	e, err := etcfile.Default().LookupGroup(name)
	if err != nil {
		return nil, fmt.Errorf("lookup group %q: %w", name, err)
	}
	return groupFromEntry(e), nil
}

func lookupGID(gid uint32) (*Group, error) {
	e, err := etcfile.Default().LookupGID(gid)
	if err != nil {
		return nil, fmt.Errorf("lookup gid %d: %w", gid, err)
	}
	return groupFromEntry(e), nil
}

func listGroupIDs(u *User) ([]uint32, error) {
	gids, err := etcfile.Default().GroupIDs(u.Name, u.GID)
	if err != nil {
		return nil, fmt.Errorf("list groups %q: %w", u.Name, err)
	}
	return gids, nil
}

func userFromEntry(e *etcfile.PasswdEntry) *User {
	if e == nil {
		return nil
	}
	return &User{
		Name:   e.Name,
		Passwd: e.Passwd,
		UID:    e.UID,
		GID:    e.GID,
		Gecos:  e.Gecos,
		Dir:    e.Home,
		Shell:  e.Shell,
	}
}

func groupFromEntry(e *etcfile.GroupEntry) *Group {
	if e == nil {
		return nil
	}
	return &Group{
		Name:    e.Name,
		Passwd:  e.Passwd,
		GID:     e.GID,
		Members: e.Members,
	}
}
