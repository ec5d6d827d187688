// pkg/inq_cli/output.go

package inq_cli

import (
	"fmt"
	"io"
	"os"

	cerr "github.com/cockroachdb/errors"
)

// Stdout receives answers, one per line.
var Stdout io.Writer = os.Stdout

// PrintAnswer writes value and a newline to Stdout.
func PrintAnswer(value string) error {
	_, err := fmt.Fprintln(Stdout, value)
	return cerr.Wrap(err, "write answer")
}
