//go:build cgo && !android && (linux || darwin || freebsd || netbsd || openbsd)

package userdb

/*
#include <unistd.h>
#include <sys/types.h>
#include <pwd.h>
#include <grp.h>
#include <stdlib.h>

static int mygetpwnam_r(const char *name, struct passwd *pwd,
	char *buf, size_t buflen, struct passwd **result) {
	return getpwnam_r(name, pwd, buf, buflen, result);
}

static int mygetpwuid_r(uid_t uid, struct passwd *pwd,
	char *buf, size_t buflen, struct passwd **result) {
	return getpwuid_r(uid, pwd, buf, buflen, result);
}

static int mygetgrnam_r(const char *name, struct group *grp,
	char *buf, size_t buflen, struct group **result) {
	return getgrnam_r(name, grp, buf, buflen, result);
}

static int mygetgrgid_r(gid_t gid, struct group *grp,
	char *buf, size_t buflen, struct group **result) {
	return getgrgid_r(gid, grp, buf, buflen, result);
}

static int mygetgrouplist(const char *user, gid_t group, gid_t *groups,
	int *ngroups) {
#ifdef __APPLE__
	return getgrouplist(user, (int)group, (int *)groups, ngroups);
#else
	return getgrouplist(user, group, groups, ngroups);
#endif
}
*/
import "C"

import (
	"fmt"
	"syscall"
	"unsafe"
)

// bufferKind selects the sysconf size hint for a lookup class.
type bufferKind C.int

const (
	userBuffer  = bufferKind(C._SC_GETPW_R_SIZE_MAX)
	groupBuffer = bufferKind(C._SC_GETGR_R_SIZE_MAX)
)

// minBufSize is the scratch floor. Hints below it, and systems that report
// none at all (musl and the BSDs return -1), start here.
const minBufSize = 512

func (k bufferKind) initialSize() uintptr {
	sz := C.sysconf(C.int(k))
	if sz < minBufSize {
		return minBufSize
	}
	return uintptr(sz)
}

// growScratch moves the scratch block to n bytes; a variable so tests can
// script allocator refusal. When realloc refuses, the old block stays valid
// and stays the caller's to free. The primitive must never be handed a nil
// buffer with a nonzero claimed size.
var growScratch = func(p unsafe.Pointer, n uintptr) (unsafe.Pointer, error) {
	q := C.realloc(p, C.size_t(n)) // realloc may move the block
	if q == nil {
		return nil, syscall.ENOMEM
	}
	return q, nil
}

// resolve drives one reentrant lookup to completion. call invokes the
// primitive against a scratch buffer of size bytes, and on a hit parses the
// record before returning, while the buffer is still live.
//
// The primitives report a missing entry as code 0 with a nil result, though
// several libcs answer ENOENT, ESRCH, EBADF or EPERM instead; all of those
// mean absence, not failure.
func resolve(kind bufferKind, call func(buf unsafe.Pointer, size uintptr) (found bool, errno syscall.Errno)) (bool, error) {
	size := kind.initialSize()
	// cgo's C.malloc never returns nil; it aborts the process when the
	// allocator refuses.
	buf := C.malloc(C.size_t(size))
	defer func() { C.free(buf) }()

	for {
		found, errno := call(buf, size)
		if found {
			return true, nil
		}
		switch errno {
		case syscall.EINTR:
			// Interrupted before it could finish; same buffer, same size.
		case syscall.ERANGE:
			size *= 2
			next, err := growScratch(buf, size)
			if err != nil {
				return false, err
			}
			buf = next
		case 0, syscall.ENOENT, syscall.ESRCH, syscall.EBADF, syscall.EPERM:
			return false, nil
		default:
			return false, errno
		}
	}
}

func lookupUser(name string) (*User, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	var pwd C.struct_passwd
	var u *User
	found, err := resolve(userBuffer, func(buf unsafe.Pointer, size uintptr) (bool, syscall.Errno) {
		var result *C.struct_passwd
		rc := C.mygetpwnam_r(cname, &pwd, (*C.char)(buf), C.size_t(size), &result)
		if result == nil {
			return false, syscall.Errno(rc)
		}
		u = newUser(&pwd)
		return true, 0
	})
	if err != nil {
		return nil, fmt.Errorf("lookup user %q: %w", name, err)
	}
	if !found {
		return nil, nil
	}
	return u, nil
}

func lookupUID(uid uint32) (*User, error) {
	var pwd C.struct_passwd
	var u *User
	found, err := resolve(userBuffer, func(buf unsafe.Pointer, size uintptr) (bool, syscall.Errno) {
		var result *C.struct_passwd
		rc := C.mygetpwuid_r(C.uid_t(uid), &pwd, (*C.char)(buf), C.size_t(size), &result)
		if result == nil {
			return false, syscall.Errno(rc)
		}
		u = newUser(&pwd)
		return true, 0
	})
	if err != nil {
		return nil, fmt.Errorf("lookup uid %d: %w", uid, err)
	}
	if !found {
		return nil, nil
	}
	return u, nil
}

func lookupGroup(name string) (*Group, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	var grp C.struct_group
	var g *Group
	found, err := resolve(groupBuffer, func(buf unsafe.Pointer, size uintptr) (bool, syscall.Errno) {
		var result *C.struct_group
		rc := C.mygetgrnam_r(cname, &grp, (*C.char)(buf), C.size_t(size), &result)
		if result == nil {
			return false, syscall.Errno(rc)
		}
		g = newGroup(&grp)
		return true, 0
	})
	if err != nil {
		return nil, fmt.Errorf("lookup group %q: %w", name, err)
	}
	if !found {
		return nil, nil
	}
	return g, nil
}

func lookupGID(gid uint32) (*Group, error) {
	var grp C.struct_group
	var g *Group
	found, err := resolve(groupBuffer, func(buf unsafe.Pointer, size uintptr) (bool, syscall.Errno) {
		var result *C.struct_group
		rc := C.mygetgrgid_r(C.gid_t(gid), &grp, (*C.char)(buf), C.size_t(size), &result)
		if result == nil {
			return false, syscall.Errno(rc)
		}
		g = newGroup(&grp)
		return true, 0
	})
	if err != nil {
		return nil, fmt.Errorf("lookup gid %d: %w", gid, err)
	}
	if !found {
		return nil, nil
	}
	return g, nil
}

// maxGroups bounds the getgrouplist array, following os/user. darwin answers
// -1 with ngroups untouched when the array is too small, so the doubling
// needs a terminating bound; unbounded it would overflow the int count.
const maxGroups = 2048

// nextGroupCount picks the array size for the next getgrouplist attempt
// after a -1 answer: glibc reports the required count through ngroups,
// darwin leaves it untouched and an unchanged count doubles instead.
func nextGroupCount(prev, reported int32) (int32, error) {
	n := reported
	if n <= prev {
		n = prev * 2
	}
	if n > maxGroups {
		return 0, fmt.Errorf("more than %d groups", maxGroups)
	}
	return n, nil
}

// listGroupIDs asks getgrouplist for the user's groups.
func listGroupIDs(u *User) ([]uint32, error) {
	cname := C.CString(u.Name)
	defer C.free(unsafe.Pointer(cname))

	n := C.int(256)
	for {
		gids := make([]C.gid_t, n)
		prev := n
		rv := C.mygetgrouplist(cname, C.gid_t(u.GID), &gids[0], &n)
		if rv != -1 {
			out := make([]uint32, 0, int(n))
			for _, g := range gids[:n] {
				out = append(out, uint32(g))
			}
			return out, nil
		}
		next, err := nextGroupCount(int32(prev), int32(n))
		if err != nil {
			return nil, fmt.Errorf("list groups %q: %w", u.Name, err)
		}
		n = C.int(next)
	}
}

func newUser(pwd *C.struct_passwd) *User {
	return &User{
		Name:   C.GoString(pwd.pw_name),
		Passwd: C.GoString(pwd.pw_passwd),
		UID:    uint32(pwd.pw_uid),
		GID:    uint32(pwd.pw_gid),
		Gecos:  C.GoString(pwd.pw_gecos),
		Dir:    C.GoString(pwd.pw_dir),
		Shell:  C.GoString(pwd.pw_shell),
	}
}

func newGroup(grp *C.struct_group) *Group {
	g := &Group{
		Name:   C.GoString(grp.gr_name),
		Passwd: C.GoString(grp.gr_passwd),
		GID:    uint32(grp.gr_gid),
	}
	// gr_mem is a NULL-terminated array of C strings.
	p := unsafe.Pointer(grp.gr_mem)
	for p != nil && *(**C.char)(p) != nil {
		g.Members = append(g.Members, C.GoString(*(**C.char)(p)))
		p = unsafe.Pointer(uintptr(p) + unsafe.Sizeof(p))
	}
	return g
}
