// Package etcfile reads the local account database files directly.
//
// It backs the no-cgo build of the lookup package, where the reentrant libc
// primitives are unreachable. Only the flat files are consulted:
//
//	/etc/passwd
//	/etc/group
//	/etc/shadow
//
// Entries served by other providers (LDAP, systemd-userdbd, ...) are not
// visible here. The package is read-only and parses in lookup mode: lines
// that are not valid entries are skipped, never rewritten and never treated
// as load failures.
package etcfile

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Default database file locations.
const (
	PasswdPath = "/etc/passwd"
	GroupPath  = "/etc/group"
	ShadowPath = "/etc/shadow"
)

// DB locates the database files. The zero value is not usable; tests point
// the paths at fixtures.
type DB struct {
	PasswdPath string
	ShadowPath string
	GroupPath  string
}

func Default() *DB {
	return &DB{
		PasswdPath: PasswdPath,
		ShadowPath: ShadowPath,
		GroupPath:  GroupPath,
	}
}

func parseColonLine(line string) []string {
	// Keep trailing empty fields.
	return strings.Split(line, ":")
}

func readLines(r io.Reader) ([]string, error) {
	s := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	s.Buffer(buf, 1024*1024)
	var lines []string
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// skippable reports lines that carry no entry: blanks, comments, and the
// NIS compat markers.
func skippable(line string) bool {
	trim := strings.TrimSpace(line)
	return trim == "" || strings.HasPrefix(trim, "#") ||
		strings.HasPrefix(trim, "+") || strings.HasPrefix(trim, "-")
}

func parseID(field string) (uint32, bool) {
	n, err := strconv.ParseUint(field, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// parseAge reads the numeric aging fields of shadow(5), where an empty or
// unparseable field means "unset".
func parseAge(field string) int64 {
	if field == "" {
		return -1
	}
	n, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return -1
	}
	return n
}
