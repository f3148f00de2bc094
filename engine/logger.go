package engine

import (
	"io"

	"github.com/sirupsen/logrus"
)

// log is the module-wide structured logger. Callers that embed this
// package in a CLI can repoint its output with SetLogOutput; by default
// it behaves like the teacher lineage's setLogger(""): discard everything.
var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// SetLogOutput repoints the module logger's output, the generalized
// equivalent of the teacher's cmd.setLogger three-way switch ("" / "-" /
// a file path) now expressed as an io.Writer so callers decide the
// destination.
func SetLogOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	log.SetOutput(w)
}

// SetVerbose raises or lowers the logger's level the way the verbose flag
// on Sync does: verbose runs log at InfoLevel and above, so successful
// operations are reported; non-verbose runs log only at WarnLevel and
// above. DebugLevel diagnostics are emitted at neither setting.
func SetVerbose(verbose bool) {
	if verbose {
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
}
