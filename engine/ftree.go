// Package engine implements a local directory synchronizer: it scans a
// source and destination directory tree into an in-memory model (FTree),
// prunes each side by an optional ignore specification, computes an
// addition/removal diff under one of four policies, and applies that diff
// to the filesystem concurrently.
package engine

import (
	"path/filepath"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
)

// FileNode is a leaf entry: a regular file, described only by the
// attributes the Differ needs to decide whether to copy it.
type FileNode struct {
	// MtimeNanos is the file's modification time, nanoseconds since the
	// Unix epoch.
	MtimeNanos int64
	// Size is the file's size in bytes.
	Size int64
}

// child is one (name, node) pair of a DirNode. A child is exactly one of
// File or Sub; the other is nil.
type child struct {
	name string
	file *FileNode
	sub  *DirNode
}

// DirNode is a directory entry: an ordered list of children plus the
// entirety flag (see Entirety for its meaning in each diff tree).
//
// DirNode additionally keeps a name->index accelerator so that
// LookupFile/LookupSubdir need not scan every child in the common case.
// The accelerator is rebuilt lazily and never changes the order of
// Children(); it is an implementation detail, not part of the observable
// model.
type DirNode struct {
	children []child
	entirety bool

	// index maps a child name to its position in children. It is built
	// by ensureIndex on the first AppendFile/AppendDir and dropped by
	// removeChildAt; while it is nil, lookups use the linear scan.
	index *xsync.MapOf[string, int]
}

// NewDir returns an empty directory node with entirety=false.
func NewDir() *DirNode {
	return &DirNode{}
}

func (d *DirNode) ensureIndex() *xsync.MapOf[string, int] {
	if d.index == nil {
		d.index = xsync.NewMapOf[string, int]()
		for i, c := range d.children {
			d.index.Store(c.name, i)
		}
	}
	return d.index
}

// AppendFile adds a file child named name to d.
func (d *DirNode) AppendFile(name string, f *FileNode) {
	d.ensureIndex().Store(name, len(d.children))
	d.children = append(d.children, child{name: name, file: f})
}

// AppendDir adds a directory child named name to d.
func (d *DirNode) AppendDir(name string, sub *DirNode) {
	d.ensureIndex().Store(name, len(d.children))
	d.children = append(d.children, child{name: name, sub: sub})
}

// Children returns d's children in insertion order. The returned slice
// must not be mutated by callers; it is shared with d.
func (d *DirNode) Children() []child {
	return d.children
}

// Name returns the child's name.
func (c child) Name() string { return c.name }

// File returns the child's FileNode and true if it is a file.
func (c child) File() (*FileNode, bool) { return c.file, c.file != nil }

// Dir returns the child's DirNode and true if it is a directory.
func (c child) Dir() (*DirNode, bool) { return c.sub, c.sub != nil }

// LookupFile scans d's children for the first file entry named name. A
// name can belong to both a file and a directory child at once (see
// RemovePath); the index only ever remembers the position of whichever
// of the two was appended last, so a stale-for-this-lookup indexed slot
// falls through to the linear scan instead of reporting not-found.
func (d *DirNode) LookupFile(name string) (*FileNode, bool) {
	if d.index != nil {
		if i, ok := d.index.Load(name); ok && i < len(d.children) && d.children[i].name == name && d.children[i].file != nil {
			return d.children[i].file, true
		}
	}
	for _, c := range d.children {
		if c.name == name && c.file != nil {
			return c.file, true
		}
	}
	return nil, false
}

// LookupSubdir scans d's children for the first directory entry named
// name. See LookupFile for why the indexed slot is checked for type
// before being trusted.
func (d *DirNode) LookupSubdir(name string) (*DirNode, bool) {
	if d.index != nil {
		if i, ok := d.index.Load(name); ok && i < len(d.children) && d.children[i].name == name && d.children[i].sub != nil {
			return d.children[i].sub, true
		}
	}
	for _, c := range d.children {
		if c.name == name && c.sub != nil {
			return c.sub, true
		}
	}
	return nil, false
}

// Entirety reports whether d is flagged for wholesale processing: "create
// the whole subtree" in an add-tree, "delete the whole subtree" in a
// rem-tree.
func (d *DirNode) Entirety() bool { return d.entirety }

// SetEntirety sets the flag on d only.
func (d *DirNode) SetEntirety(v bool) { d.entirety = v }

// SetEntiretyRecursive sets the flag on d and every descendant directory;
// files are untouched.
func (d *DirNode) SetEntiretyRecursive(v bool) {
	d.entirety = v
	for _, c := range d.children {
		if c.sub != nil {
			c.sub.SetEntiretyRecursive(v)
		}
	}
}

func (d *DirNode) indexOf(name string, wantDir bool) int {
	for i, c := range d.children {
		if c.name == name && (c.sub != nil) == wantDir {
			return i
		}
	}
	return -1
}

func (d *DirNode) removeChildAt(i int) {
	d.children = append(d.children[:i], d.children[i+1:]...)
	// The index map is now stale for every entry after i; drop it and
	// let the next append rebuild it (see ensureIndex).
	d.index = nil
}

// RemovePath removes the entry at relativePath under d. isDirHint selects
// how the final path component is interpreted: intermediate components
// must always be existing directories, or RemovePath fails. On the final
// component, if isDirHint is false, a file of that name is removed if
// present; regardless, a directory of that same name is also removed if
// present. This asymmetry is intentional (see the Ignorer's use of it)
// and must not be "fixed."
func (d *DirNode) RemovePath(relativePath string, isDirHint bool) error {
	parts := splitPath(relativePath)
	if len(parts) == 0 {
		return errEmptyPath
	}
	return d.removePath(parts, isDirHint)
}

func (d *DirNode) removePath(parts []string, isDirHint bool) error {
	name := parts[0]
	if len(parts) > 1 {
		sub, ok := d.LookupSubdir(name)
		if !ok {
			return errNoSuchPath
		}
		return sub.removePath(parts[1:], isDirHint)
	}

	if !isDirHint {
		if i := d.indexOf(name, false); i >= 0 {
			d.removeChildAt(i)
		}
	}
	if i := d.indexOf(name, true); i >= 0 {
		d.removeChildAt(i)
	}
	return nil
}

// splitPath breaks a relative path into its components, accepting either
// '/' or the platform separator so that an ignore spec written with
// forward slashes still works on every platform.
func splitPath(p string) []string {
	isSep := func(r rune) bool {
		return r == '/' || r == rune(filepath.Separator)
	}
	raw := strings.FieldsFunc(p, isSep)
	parts := make([]string, 0, len(raw))
	parts = append(parts, raw...)
	return parts
}
