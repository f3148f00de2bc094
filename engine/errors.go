package engine

import (
	"fmt"
)

// ErrSrcInvalid is the sentinel kind returned (wrapped in a *RootScanError)
// by Sync when the source root cannot be opened as a directory.
var ErrSrcInvalid = fmt.Errorf("src-invalid")

// ErrDestInvalid is the sentinel kind returned (wrapped in a *RootScanError)
// by Sync when the destination root cannot be opened as a directory.
var ErrDestInvalid = fmt.Errorf("dest-invalid")

// RootScanError reports the one class of failure that aborts a Sync
// outright: the source or destination root could not be opened as a
// directory. It carries enough context for logs (Path, the underlying
// Err) while still comparing true against its Kind sentinel via errors.Is.
type RootScanError struct {
	Kind error
	Path string
	Err  error
}

func (e *RootScanError) Error() string {
	return fmt.Sprintf("%s: %q: %v", e.Kind, e.Path, e.Err)
}

// Unwrap exposes the underlying os error, e.g. for errors.As(*os.PathError).
func (e *RootScanError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrSrcInvalid) and errors.Is(err, ErrDestInvalid)
// identify which side of a Sync failed without callers needing to type
// assert *RootScanError themselves.
func (e *RootScanError) Is(target error) bool {
	return target == e.Kind
}

func wrapRoot(kind error, path string, cause error) error {
	return &RootScanError{Kind: kind, Path: path, Err: cause}
}

// CopyError reports a failed file copy during ApplyDiff, in the style of
// opencoff-go-fio's own CopyError (errors.go): Op names the step that
// failed (open-src, create-dst, copy), Src/Dst carry both paths, and Err
// unwraps to the underlying os error.
type CopyError struct {
	Op  string
	Src string
	Dst string
	Err error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copyfile: %s %q %q: %v", e.Op, e.Src, e.Dst, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// errEmptyPath and errNoSuchPath are internal sentinels returned by
// DirNode.RemovePath; callers of the Ignorer never see them because
// ApplyIgnore treats every per-line RemovePath failure as best-effort.
var (
	errEmptyPath  = fmt.Errorf("empty path")
	errNoSuchPath = fmt.Errorf("no such path")
)
