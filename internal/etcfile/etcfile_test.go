package etcfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const passwdFixture = `# system accounts
root:x:0:0:root:/root:/bin/bash

daemon:x:1:1:daemon:/usr/sbin:/usr/sbin/nologin
broken:x:notanum:0:bad uid:/:/bin/false
short:x:2
+@netusers::::::
alice:x:1000:1000:Alice,,,:/home/alice:/bin/zsh
`

const groupFixture = `# system groups
root:x:0:
wheel:x:10:alice,bob
alice:x:1000:
docker:x:999:alice
audio:x:29:bob
broken:x:nope:alice
-ignored:x:50:alice
`

const shadowFixture = `# aging data
root:*:19000:0:99999:7:::
alice:$6$salt$hash:19500:0:99999:7:30:20000:
bob:!:19600
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testDB(t *testing.T) *DB {
	t.Helper()
	dir := t.TempDir()
	return &DB{
		PasswdPath: writeFixture(t, dir, "passwd", passwdFixture),
		ShadowPath: writeFixture(t, dir, "shadow", shadowFixture),
		GroupPath:  writeFixture(t, dir, "group", groupFixture),
	}
}

func TestLookupUser(t *testing.T) {
	db := testDB(t)

	got, err := db.LookupUser("alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	want := &PasswdEntry{
		Name:   "alice",
		Passwd: "x",
		UID:    1000,
		GID:    1000,
		Gecos:  "Alice,,,",
		Home:   "/home/alice",
		Shell:  "/bin/zsh",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupUserAbsent(t *testing.T) {
	db := testDB(t)

	got, err := db.LookupUser("nosuchuser")
	require.NoError(t, err)
	require.Nil(t, got)

	// Lines that are skipped during parsing must read as absent, not as
	// entries or errors.
	for _, name := range []string{"broken", "short", "+@netusers"} {
		got, err := db.LookupUser(name)
		require.NoError(t, err)
		require.Nil(t, got, "name %q", name)
	}
}

func TestLookupUID(t *testing.T) {
	db := testDB(t)

	got, err := db.LookupUID(0)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "root", got.Name)
	require.Equal(t, "/root", got.Home)

	got, err = db.LookupUID(4242)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestLookupGroup(t *testing.T) {
	db := testDB(t)

	got, err := db.LookupGroup("wheel")
	require.NoError(t, err)
	require.NotNil(t, got)
	want := &GroupEntry{
		Name:    "wheel",
		Passwd:  "x",
		GID:     10,
		Members: []string{"alice", "bob"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}

	got, err = db.LookupGroup("root")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got.Members)

	got, err = db.LookupGroup("nosuchgroup")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestLookupGID(t *testing.T) {
	db := testDB(t)

	got, err := db.LookupGID(999)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "docker", got.Name)

	got, err = db.LookupGID(4242)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestGroupIDs(t *testing.T) {
	db := testDB(t)

	// Primary id first, then membership lines, duplicates collapsed. The
	// "alice" group matches the primary id and must not repeat.
	got, err := db.GroupIDs("alice", 1000)
	require.NoError(t, err)
	require.Equal(t, []uint32{1000, 10, 999}, got)

	got, err = db.GroupIDs("bob", 29)
	require.NoError(t, err)
	require.Equal(t, []uint32{29, 10}, got)

	// Unknown names still carry their primary id.
	got, err = db.GroupIDs("nosuchuser", 7)
	require.NoError(t, err)
	require.Equal(t, []uint32{7}, got)
}

func TestLookupShadow(t *testing.T) {
	db := testDB(t)

	got, err := db.LookupShadow("alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	want := &ShadowEntry{
		Name:       "alice",
		Passwd:     "$6$salt$hash",
		LastChange: 19500,
		Min:        0,
		Max:        99999,
		Warn:       7,
		Inactive:   30,
		Expire:     20000,
		Flag:       -1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}

	// Short lines are padded; the missing aging fields read as unset.
	got, err = db.LookupShadow("bob")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, int64(19600), got.LastChange)
	require.Equal(t, int64(-1), got.Min)
	require.Equal(t, int64(-1), got.Flag)

	got, err = db.LookupShadow("nosuchuser")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestMissingFile(t *testing.T) {
	db := &DB{
		PasswdPath: filepath.Join(t.TempDir(), "nope"),
		ShadowPath: filepath.Join(t.TempDir(), "nope"),
		GroupPath:  filepath.Join(t.TempDir(), "nope"),
	}

	_, err := db.LookupUser("root")
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = db.LookupGID(0)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = db.LookupShadow("root")
	require.ErrorIs(t, err, os.ErrNotExist)
}
