//go:build linux && !cgo && !android

package userdb

import (
	"fmt"

	"github.com/hnrobert/userdb/internal/etcfile"
)

func lookupShadow(name string) (*Shadow, error) {
	e, err := etcfile.Default().LookupShadow(name)
	if err != nil {
		return nil, fmt.Errorf("lookup shadow %q: %w", name, err)
	}
	if e == nil {
		return nil, nil
	}
	return &Shadow{
		Name:       e.Name,
		Passwd:     e.Passwd,
		LastChange: e.LastChange,
		Min:        e.Min,
		Max:        e.Max,
		Warn:       e.Warn,
		Inactive:   e.Inactive,
		Expire:     e.Expire,
		Flag:       e.Flag,
	}, nil
}
