package shm

import "unsafe"

// ptrAt returns a pointer into buf at byte offset off, for atomic access
// to the fixed-offset baton/counter fields at the front of the mapped
// region. Callers are responsible for keeping offsets aligned and within
// bounds; both are guaranteed by the fixed layout in this package.
func ptrAt(buf []byte, off int) unsafe.Pointer {
	return unsafe.Pointer(&buf[off])
}
