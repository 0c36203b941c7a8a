//go:build linux && !android

package userdb

// Shadow is one record of the shadow database, the fields of shadow(5).
// The day counters hold -1 when the underlying field is empty.
type Shadow struct {
	Name       string
	Passwd     string
	LastChange int64
	Min        int64
	Max        int64
	Warn       int64
	Inactive   int64
	Expire     int64
	Flag       int64
}

// LookupShadow finds the shadow record named name. Reading the shadow
// database normally requires privilege; unprivileged callers get the access
// error back.
func LookupShadow(name string) (*Shadow, error) {
	if err := checkName("lookup shadow", name); err != nil {
		return nil, err
	}
	return lookupShadow(name)
}
