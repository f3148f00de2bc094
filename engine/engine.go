package engine

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// Summary is the SyncEngine's post-run tally, in the spirit of the
// teacher lineage's ComparisonEngine.Summarize(): a human-readable report
// of what one Sync call actually did, not just whether it succeeded.
type Summary struct {
	Mode Mode

	SrcIgnoreLinesApplied  int
	DestIgnoreLinesApplied int

	OpCounts
}

// String renders the summary the way ComparisonEngine.Summarize() renders
// its own counters: a fixed-width report suitable for a verbose CLI run.
func (s *Summary) String() string {
	return fmt.Sprintf(`SYNC SUMMARY (%s)
========================================
# Files copied:                 %8d
# Files deleted:                %8d
# Dirs created:                 %8d
# Dirs deleted:                 %8d
# Errors (swallowed):           %8d
# Src ignore lines applied:     %8d
# Dest ignore lines applied:    %8d
`,
		s.Mode,
		s.FilesCopied,
		s.FilesDeleted,
		s.DirsCreated,
		s.DirsDeleted,
		s.Errors,
		s.SrcIgnoreLinesApplied,
		s.DestIgnoreLinesApplied)
}

// Sync scans srcRoot and destRoot, optionally prunes each by its ignore
// spec, computes the diff for mode, and applies it - deletions first,
// then additions - to destRoot. srcIgnore/destIgnore are nil when no
// ignore spec was given for that side.
//
// ctx is checked only at entry: if it is already done when Sync is
// called, Sync returns ctx.Err() immediately. No phase is context-aware,
// so a cancellation arriving after Sync has started has no effect on
// that call.
func Sync(ctx context.Context, srcRoot, destRoot string, srcIgnore, destIgnore *string, verbose bool, mode Mode) (*Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	SetVerbose(verbose)

	srcTree, err := Scan(srcRoot)
	if err != nil {
		return nil, wrapRoot(ErrSrcInvalid, srcRoot, err)
	}

	summary := &Summary{Mode: mode}

	if srcIgnore != nil {
		summary.SrcIgnoreLinesApplied = ApplyIgnore(srcTree, *srcIgnore)
	}

	destTree, err := Scan(destRoot)
	if err != nil {
		return nil, wrapRoot(ErrDestInvalid, destRoot, err)
	}

	if destIgnore != nil {
		summary.DestIgnoreLinesApplied = ApplyIgnore(destTree, *destIgnore)
	}

	add, rem := Diff(srcTree, destTree, mode)

	remCounts, err := RemoveDiff(rem, destRoot)
	if err != nil {
		return nil, errors.Wrap(err, "removing stale destination entries")
	}
	summary.OpCounts.add(remCounts)

	addCounts, err := ApplyDiff(add, srcRoot, destRoot)
	if err != nil {
		return nil, errors.Wrap(err, "applying new/updated entries")
	}
	summary.OpCounts.add(addCounts)

	log.WithFields(map[string]interface{}{
		"mode": mode.String(),
		"src":  srcRoot,
		"dest": destRoot,
	}).Info("sync complete")

	return summary, nil
}
