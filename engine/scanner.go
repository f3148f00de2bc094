package engine

import (
	"os"
	"path/filepath"
)

// Scan walks path and returns the DirNode describing it. It fails only
// when path itself cannot be opened as a directory; any per-entry error
// (an unreadable subdirectory, a file whose metadata can't be read) is
// logged and that entry is simply omitted from the result, per the
// teacher lineage's "partial progress over abort on first error" stance.
func Scan(path string) (*DirNode, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	dir := NewDir()
	for _, entry := range entries {
		name := entry.Name()
		entryPath := filepath.Join(path, name)

		switch {
		case entry.IsDir():
			sub, err := Scan(entryPath)
			if err != nil {
				log.WithFields(map[string]interface{}{
					"path": entryPath,
				}).WithError(err).Warn("skipping unreadable subdirectory")
				continue
			}
			dir.AppendDir(name, sub)

		case entry.Type().IsRegular():
			info, err := entry.Info()
			if err != nil {
				log.WithFields(map[string]interface{}{
					"path": entryPath,
				}).WithError(err).Warn("skipping file with unreadable metadata")
				continue
			}
			dir.AppendFile(name, &FileNode{
				MtimeNanos: info.ModTime().UnixNano(),
				Size:       info.Size(),
			})

		default:
			// Symlinks, sockets, devices, etc. are skipped silently,
			// per the scanner contract: only regular files and
			// directories participate in a sync.
			log.WithField("path", entryPath).Debug("skipping non-regular, non-directory entry")
		}
	}
	return dir, nil
}
