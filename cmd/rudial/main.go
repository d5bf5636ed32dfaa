/*
MIT License

Copyright (c) 2026 RUSS Contributors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

// Command rudial is a thin interactive client: it dials one service, feeds
// it stdin, and prints whatever comes back on stdout/stderr before exiting
// with the service's own status.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/johnm-dev/russng/client"
	"github.com/johnm-dev/russng/deadline"
	russerr "github.com/johnm-dev/russng/errors"
	"github.com/johnm-dev/russng/waitkind"
)

var (
	flagOp        string
	flagTimeoutMs int64
)

func main() {
	cmd := &cobra.Command{
		Use:   "rudial <saddr> <spath>",
		Short: "Dial a RUSS service and relay stdin/stdout/stderr",
		Args:  cobra.ExactArgs(2),
		RunE:  run,
	}
	cmd.Flags().StringVar(&flagOp, "op", "execute", "operation: execute, help, id, info, or list")
	cmd.Flags().Int64Var(&flagTimeoutMs, "timeout", 15000, "deadline in milliseconds")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	saddr, spath := args[0], args[1]

	in, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}

	dl := deadline.FromMillis(flagTimeoutMs)
	result, err := client.DialWaitInOutErr(saddr, dl, flagOp, spath, nil, nil, string(in))
	if err != nil {
		fmt.Fprintln(os.Stderr, standardMessage(err))
		os.Exit(1)
	}

	os.Stdout.Write(result.Stdout)
	os.Stderr.Write(result.Stderr)

	switch result.Kind {
	case waitkind.OK:
		os.Exit(int(result.Status))
	case waitkind.Timeout:
		fmt.Fprintln(os.Stderr, "error: no exit status")
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, "error: no exit status")
		os.Exit(1)
	}
	return nil
}

// standardMessage maps a dial-time failure to the exact standard message
// strings a RUSS server would use for the same class of failure, so a CLI
// built on top of this client reports errors in the same vocabulary.
func standardMessage(err error) string {
	switch {
	case russerr.BadArgs.Is(err):
		return "error: bad/missing arguments"
	case russerr.CannotDial.Is(err):
		return "error: cannot dial service"
	case russerr.Timeout.Is(err):
		return "error: no exit status"
	default:
		return "error: cannot dial service"
	}
}
