package etcfile

import (
	"bytes"
	"os"
)

// PasswdEntry is one parsed passwd(5) line.
type PasswdEntry struct {
	Name   string
	Passwd string
	UID    uint32
	GID    uint32
	Gecos  string
	Home   string
	Shell  string
}

func loadPasswd(path string) ([]PasswdEntry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines, err := readLines(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	var entries []PasswdEntry
	for _, line := range lines {
		if skippable(line) {
			continue
		}
		parts := parseColonLine(line)
		if len(parts) < 7 {
			continue
		}
		uid, ok := parseID(parts[2])
		if !ok {
			continue
		}
		gid, ok := parseID(parts[3])
		if !ok {
			continue
		}
		entries = append(entries, PasswdEntry{
			Name:   parts[0],
			Passwd: parts[1],
			UID:    uid,
			GID:    gid,
			Gecos:  parts[4],
			Home:   parts[5],
			Shell:  parts[6],
		})
	}
	return entries, nil
}

// LookupUser finds the first entry with the given login name. The entry is
// nil when no line matches.
func (db *DB) LookupUser(name string) (*PasswdEntry, error) {
	entries, err := loadPasswd(db.PasswdPath)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Name == name {
			return &entries[i], nil
		}
	}
	return nil, nil
}

// LookupUID finds the first entry with the given user id.
func (db *DB) LookupUID(uid uint32) (*PasswdEntry, error) {
	entries, err := loadPasswd(db.PasswdPath)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].UID == uid {
			return &entries[i], nil
		}
	}
	return nil, nil
}
