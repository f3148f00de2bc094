package engine

import (
	. "gopkg.in/check.v1"
)

type FTreeSuite struct{}

var _ = Suite(&FTreeSuite{})

func (s *FTreeSuite) TestAppendAndLookupFile(c *C) {
	d := NewDir()
	d.AppendFile("a.txt", &FileNode{Size: 10, MtimeNanos: 1})
	d.AppendFile("b.txt", &FileNode{Size: 20, MtimeNanos: 2})

	f, ok := d.LookupFile("b.txt")
	c.Assert(ok, Equals, true)
	c.Assert(f.Size, Equals, int64(20))

	_, ok = d.LookupFile("missing")
	c.Assert(ok, Equals, false)
}

func (s *FTreeSuite) TestAppendAndLookupSubdir(c *C) {
	d := NewDir()
	sub := NewDir()
	sub.AppendFile("inner.txt", &FileNode{Size: 1, MtimeNanos: 1})
	d.AppendDir("sub", sub)

	got, ok := d.LookupSubdir("sub")
	c.Assert(ok, Equals, true)
	_, ok = got.LookupFile("inner.txt")
	c.Assert(ok, Equals, true)

	_, ok = d.LookupSubdir("missing")
	c.Assert(ok, Equals, false)
}

func (s *FTreeSuite) TestChildrenOrderPreserved(c *C) {
	d := NewDir()
	d.AppendFile("z", &FileNode{})
	d.AppendDir("m", NewDir())
	d.AppendFile("a", &FileNode{})

	names := []string{}
	for _, ch := range d.Children() {
		names = append(names, ch.Name())
	}
	c.Assert(names, DeepEquals, []string{"z", "m", "a"})
}

func (s *FTreeSuite) TestEntiretyRecursive(c *C) {
	leaf := NewDir()
	mid := NewDir()
	mid.AppendDir("leaf", leaf)
	top := NewDir()
	top.AppendDir("mid", mid)

	top.SetEntiretyRecursive(true)

	c.Assert(top.Entirety(), Equals, true)
	c.Assert(mid.Entirety(), Equals, true)
	c.Assert(leaf.Entirety(), Equals, true)
}

func (s *FTreeSuite) TestRemovePathFile(c *C) {
	d := NewDir()
	d.AppendFile("keep.txt", &FileNode{})
	d.AppendFile("drop.txt", &FileNode{})

	err := d.RemovePath("drop.txt", false)
	c.Assert(err, IsNil)

	_, ok := d.LookupFile("drop.txt")
	c.Assert(ok, Equals, false)
	_, ok = d.LookupFile("keep.txt")
	c.Assert(ok, Equals, true)
}

func (s *FTreeSuite) TestRemovePathNested(c *C) {
	d := NewDir()
	sub := NewDir()
	sub.AppendFile("x.txt", &FileNode{})
	d.AppendDir("sub", sub)

	err := d.RemovePath("sub/x.txt", false)
	c.Assert(err, IsNil)

	_, ok := sub.LookupFile("x.txt")
	c.Assert(ok, Equals, false)
}

func (s *FTreeSuite) TestRemovePathNoSuchIntermediate(c *C) {
	d := NewDir()
	err := d.RemovePath("nope/x.txt", false)
	c.Assert(err, Equals, errNoSuchPath)
}

func (s *FTreeSuite) TestRemovePathEmpty(c *C) {
	d := NewDir()
	err := d.RemovePath("", false)
	c.Assert(err, Equals, errEmptyPath)
	err = d.RemovePath("///", false)
	c.Assert(err, Equals, errEmptyPath)
}

// TestRemovePathAsymmetry pins the intentional asymmetric behavior: when
// isDirHint is false (the caller expects a file), a same-named directory
// is still removed if one happens to exist alongside it. This is what the
// Ignorer relies on and must never be "fixed" into symmetric behavior.
func (s *FTreeSuite) TestRemovePathAsymmetry(c *C) {
	d := NewDir()
	d.AppendFile("thing", &FileNode{})
	d.AppendDir("thing", NewDir())

	err := d.RemovePath("thing", false)
	c.Assert(err, IsNil)

	_, fileOk := d.LookupFile("thing")
	_, dirOk := d.LookupSubdir("thing")
	c.Assert(fileOk, Equals, false)
	c.Assert(dirOk, Equals, false)
}

// TestLookupWithDualEntrySameName pins that a name which belongs to both
// a file and a directory child remains independently reachable as each
// type through Lookup*, regardless of which one was appended last and
// therefore holds the index slot.
func (s *FTreeSuite) TestLookupWithDualEntrySameName(c *C) {
	d := NewDir()
	d.AppendFile("thing", &FileNode{Size: 7})
	d.AppendDir("thing", NewDir())

	f, ok := d.LookupFile("thing")
	c.Assert(ok, Equals, true)
	c.Assert(f.Size, Equals, int64(7))

	sub, ok := d.LookupSubdir("thing")
	c.Assert(ok, Equals, true)
	c.Assert(sub, NotNil)
}

// TestRemovePathDirHintOnlyRemovesDir pins the other half: isDirHint=true
// removes only the directory entry, leaving a same-named file untouched.
func (s *FTreeSuite) TestRemovePathDirHintOnlyRemovesDir(c *C) {
	d := NewDir()
	d.AppendFile("thing", &FileNode{})
	d.AppendDir("thing", NewDir())

	err := d.RemovePath("thing", true)
	c.Assert(err, IsNil)

	_, fileOk := d.LookupFile("thing")
	_, dirOk := d.LookupSubdir("thing")
	c.Assert(fileOk, Equals, true)
	c.Assert(dirOk, Equals, false)
}

func (s *FTreeSuite) TestSplitPathAcceptsForwardSlashAndPlatformSeparator(c *C) {
	c.Assert(splitPath("a/b/c"), DeepEquals, []string{"a", "b", "c"})
	c.Assert(splitPath("/a/b/"), DeepEquals, []string{"a", "b"})
}
