//go:build linux && cgo && !android

package userdb

/*
#include <shadow.h>
#include <stdlib.h>

static int mygetspnam_r(const char *name, struct spwd *sp,
	char *buf, size_t buflen, struct spwd **result) {
	return getspnam_r(name, sp, buf, buflen, result);
}
*/
import "C"

import (
	"fmt"
	"syscall"
	"unsafe"
)

func lookupShadow(name string) (*Shadow, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	var spwd C.struct_spwd
	var s *Shadow
	// sysconf has no key for the shadow class; the passwd hint sizes the
	// same kind of line.
	found, err := resolve(userBuffer, func(buf unsafe.Pointer, size uintptr) (bool, syscall.Errno) {
		var result *C.struct_spwd
		rc := C.mygetspnam_r(cname, &spwd, (*C.char)(buf), C.size_t(size), &result)
		if result == nil {
			return false, syscall.Errno(rc)
		}
		s = newShadow(&spwd)
		return true, 0
	})
	if err != nil {
		return nil, fmt.Errorf("lookup shadow %q: %w", name, err)
	}
	if !found {
		return nil, nil
	}
	return s, nil
}

func newShadow(spwd *C.struct_spwd) *Shadow {
	return &Shadow{
		Name:       C.GoString(spwd.sp_namp),
		Passwd:     C.GoString(spwd.sp_pwdp),
		LastChange: int64(spwd.sp_lstchg),
		Min:        int64(spwd.sp_min),
		Max:        int64(spwd.sp_max),
		Warn:       int64(spwd.sp_warn),
		Inactive:   int64(spwd.sp_inact),
		Expire:     int64(spwd.sp_expire),
		// sp_flag is unsigned in the header; unset is stored as -1.
		Flag: int64(C.long(spwd.sp_flag)),
	}
}
