package etcfile

import (
	"bytes"
	"os"
	"strings"
)

// GroupEntry is one parsed group(5) line.
type GroupEntry struct {
	Name    string
	Passwd  string
	GID     uint32
	Members []string
}

func loadGroup(path string) ([]GroupEntry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines, err := readLines(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	var entries []GroupEntry
	for _, line := range lines {
		if skippable(line) {
			continue
		}
		parts := parseColonLine(line)
		if len(parts) < 4 {
			continue
		}
		gid, ok := parseID(parts[2])
		if !ok {
			continue
		}
		var members []string
		if parts[3] != "" {
			members = strings.Split(parts[3], ",")
		}
		entries = append(entries, GroupEntry{
			Name:    parts[0],
			Passwd:  parts[1],
			GID:     gid,
			Members: members,
		})
	}
	return entries, nil
}

// LookupGroup finds the first entry with the given group name.
func (db *DB) LookupGroup(name string) (*GroupEntry, error) {
	entries, err := loadGroup(db.GroupPath)
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

// LookupGID finds the first entry with the given group id.
func (db *DB) LookupGID(gid uint32) (*GroupEntry, error) {
	entries, err := loadGroup(db.GroupPath)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].GID == gid {
			return &entries[i], nil
		}
	}
	return nil, nil
}

// GroupIDs collects the ids of the groups name belongs to: the primary id
// first, then every group listing name as a member, without duplicates.
func (db *DB) GroupIDs(name string, primary uint32) ([]uint32, error) {
	entries, err := loadGroup(db.GroupPath)
	if err != nil {
		return nil, err
	}
	gids := []uint32{primary}
	seen := map[uint32]bool{primary: true}
	for _, e := range entries {
		if seen[e.GID] {
			continue
		}
		for _, m := range e.Members {
			if m == name {
				gids = append(gids, e.GID)
				seen[e.GID] = true
				break
			}
		}
	}
	return gids, nil
}
