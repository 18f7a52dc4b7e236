// Package loop hosts game sessions on terminals: the frame loop, HUD and overlay screens,
// and the registry used to shut down many sessions at once.
package loop

import (
	"bufio"
	"io"
)

// Run plays one session on the given terminal streams until the player quits.
func Run(r *bufio.Reader, w io.Writer, opts ClientOptions) error {
	return NewClient(r, w, opts).Run()
}
