package engine

import (
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// OpCounts tallies what an Applier pass actually did, the generalization
// of the teacher lineage's ComparisonEngine counters (countPerfectMatch,
// countMismatch, ...) to "files copied / deleted, dirs created / removed,
// errors swallowed" instead of "comparison outcomes."
type OpCounts struct {
	FilesCopied  int
	FilesDeleted int
	DirsCreated  int
	DirsDeleted  int
	Errors       int
}

func (o *OpCounts) add(other OpCounts) {
	o.FilesCopied += other.FilesCopied
	o.FilesDeleted += other.FilesDeleted
	o.DirsCreated += other.DirsCreated
	o.DirsDeleted += other.DirsDeleted
	o.Errors += other.Errors
}

// RemoveDiff walks rem (a diff tree produced by Diff) and deletes the
// corresponding entries under destRoot. Per-entry I/O failures are
// swallowed - counted in the returned OpCounts and logged. RemoveDiff
// itself returns an error only if destRoot is no longer there to walk
// (e.g. it was removed out from under the sync between the initial scan
// and this call); that failure is not a per-entry concern and is
// surfaced to the caller instead of being folded into OpCounts.
func RemoveDiff(rem *DirNode, destRoot string) (OpCounts, error) {
	if _, err := os.Stat(destRoot); err != nil {
		return OpCounts{}, err
	}
	return removeNode(rem, destRoot), nil
}

// removeNode processes one directory level of a rem-tree: every child is
// handled by its own goroutine under a fresh errgroup.Group scoped to
// this call, so removeNode returns only after this subtree - and,
// transitively, every subtree beneath it - has fully joined. This is the
// structured-concurrency replacement for the original design's single
// global atomic counter plus two-party barrier (see SPEC_FULL §9).
func removeNode(dir *DirNode, destPath string) OpCounts {
	var counts OpCounts

	if dir.Entirety() {
		if err := os.RemoveAll(destPath); err != nil {
			counts.Errors++
			log.WithField("path", destPath).WithError(err).Debug("directory removal failed")
		} else {
			counts.DirsDeleted++
			log.WithField("path", destPath).Info("directory removed")
		}
		return counts
	}

	children := dir.Children()
	subCounts := make([]OpCounts, len(children))
	var g errgroup.Group
	for i, c := range children {
		i, c := i, c
		childPath := filepath.Join(destPath, c.Name())
		if sub, ok := c.Dir(); ok {
			g.Go(func() error {
				subCounts[i] = removeNode(sub, childPath)
				return nil
			})
			continue
		}
		g.Go(func() error {
			if err := os.Remove(childPath); err != nil {
				subCounts[i].Errors++
				log.WithField("path", childPath).WithError(err).Debug("file removal failed")
			} else {
				subCounts[i].FilesDeleted++
				log.WithField("path", childPath).Info("file removed")
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, sc := range subCounts {
		counts.add(sc)
	}
	return counts
}

// ApplyDiff walks add (a diff tree produced by Diff) and copies the
// corresponding entries from srcRoot into destRoot, creating directories
// as needed. Like RemoveDiff, per-entry failures are swallowed and
// counted; only destRoot itself having disappeared is surfaced as an
// error.
func ApplyDiff(add *DirNode, srcRoot, destRoot string) (OpCounts, error) {
	if _, err := os.Stat(destRoot); err != nil {
		return OpCounts{}, err
	}
	return applyNode(add, srcRoot, destRoot), nil
}

// applyNode mirrors removeNode's structured-concurrency shape: an
// entirety-flagged directory is created (or, if creation fails, the
// entire subtree beneath it is skipped - descendants of a directory
// whose creation failed are never processed), otherwise every child is
// descended into regardless, each under its own goroutine joined before
// this call returns.
func applyNode(dir *DirNode, srcPath, destPath string) OpCounts {
	var counts OpCounts

	if dir.Entirety() {
		if err := os.Mkdir(destPath, 0o777); err != nil {
			counts.Errors++
			log.WithField("path", destPath).WithError(err).Debug("directory creation failed")
			return counts
		}
		counts.DirsCreated++
		log.WithField("path", destPath).Info("directory created")
	}

	children := dir.Children()
	subCounts := make([]OpCounts, len(children))
	var g errgroup.Group
	for i, c := range children {
		i, c := i, c
		childSrc := filepath.Join(srcPath, c.Name())
		childDest := filepath.Join(destPath, c.Name())
		if sub, ok := c.Dir(); ok {
			g.Go(func() error {
				subCounts[i] = applyNode(sub, childSrc, childDest)
				return nil
			})
			continue
		}
		g.Go(func() error {
			if err := copyFile(childSrc, childDest); err != nil {
				subCounts[i].Errors++
				log.WithFields(map[string]interface{}{
					"src": childSrc,
					"dst": childDest,
				}).WithError(err).Debug("file copy failed")
			} else {
				subCounts[i].FilesCopied++
				log.WithFields(map[string]interface{}{
					"src": childSrc,
					"dst": childDest,
				}).Info("file copied")
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, sc := range subCounts {
		counts.add(sc)
	}
	return counts
}

// copyFile copies src to dest, truncating/creating dest as needed. It
// does not attempt to preserve permissions, ownership, or timestamps -
// per the engine's non-goals, content and placement are all that matter.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return &CopyError{Op: "open-src", Src: src, Dst: dest, Err: err}
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return &CopyError{Op: "create-dst", Src: src, Dst: dest, Err: err}
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return &CopyError{Op: "copy", Src: src, Dst: dest, Err: err}
	}
	return nil
}
