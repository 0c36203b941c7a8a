package etcfile

import (
	"bytes"
	"os"
)

// ShadowEntry is one parsed shadow(5) line. The day counters hold -1 when
// the field is empty.
type ShadowEntry struct {
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

func loadShadow(path string) ([]ShadowEntry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines, err := readLines(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	var entries []ShadowEntry
	for _, line := range lines {
		if skippable(line) {
			continue
		}
		parts := parseColonLine(line)
		if len(parts) < 2 {
			continue
		}
		for len(parts) < 9 {
			parts = append(parts, "")
		}
		entries = append(entries, ShadowEntry{
			Name:       parts[0],
			Passwd:     parts[1],
			LastChange: parseAge(parts[2]),
			Min:        parseAge(parts[3]),
			Max:        parseAge(parts[4]),
			Warn:       parseAge(parts[5]),
			Inactive:   parseAge(parts[6]),
			Expire:     parseAge(parts[7]),
			Flag:       parseAge(parts[8]),
		})
	}
	return entries, nil
}

// LookupShadow finds the first entry with the given login name. Reading
// usually needs elevated privileges; the os.ReadFile error is returned as is.
func (db *DB) LookupShadow(name string) (*ShadowEntry, error) {
	entries, err := loadShadow(db.ShadowPath)
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
