package dispatch

import (
	"io"
	"os"
)

// The stdio transport frames one JSON object per line over the
// process's standard streams; indirected here so tests can substitute
// pipes.

var (
	stdinReader  = func() io.Reader { return os.Stdin }
	stdoutWriter = func() io.Writer { return os.Stdout }
)
