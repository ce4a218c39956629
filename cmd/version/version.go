/*
Package version exposes the version information of binomial
through the version command.

Filled at link time:
	-ldflags '-s -w \
	-X github.com/JulienBalestra/binomial/cmd/version.Version=$(VERSION) \
	-X github.com/JulienBalestra/binomial/cmd/version.Revision=$(REVISION)'
*/
package version

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	Package = "github.com/JulienBalestra/binomial"

	// Version holds the complete version number. Filled in at linking time.
	Version = "0.0.0+unknown"

	// Revision is filled with the VCS (e.g. git) revision being used to build
	// the program at linking time.
	Revision = "+unknown"
)

// DisplayVersion prints the package/version/revision
func DisplayVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, `package: %s
version: %s
revision: %s
go: %s
`, Package, Version, Revision, runtime.Version())
}

func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:        "version",
		Short:      "Details about version, revision and compiler",
		SuggestFor: []string{"Version", "v", "V"},
		Args:       cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			DisplayVersion(cmd.OutOrStdout())
		},
	}
}
