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

// Command russngd is a generic RUSS server host: it loads a config file,
// announces or inherits a listening socket, builds a service tree out of
// the handlers registered in handlers.go, and runs the accept loop.
package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/johnm-dev/russng/config"
	"github.com/johnm-dev/russng/fdpass"
	"github.com/johnm-dev/russng/logging"
	"github.com/johnm-dev/russng/server"
)

var (
	flagConfig string
	flagKind   string
	flagLevel  string
)

func main() {
	root := &cobra.Command{
		Use:   "russngd",
		Short: "Run a RUSS service tree over a UNIX-domain socket",
		RunE:  run,
	}
	root.Flags().StringVar(&flagConfig, "config", "", "path to a YAML/TOML/JSON config file (main:* keys)")
	root.Flags().StringVar(&flagKind, "kind", "thread", "concurrency model: thread or fork")
	root.Flags().StringVar(&flagLevel, "log-level", "info", "debug, info, warn, or error")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	logging.SetLevel(flagLevel)

	// SIGPIPE must be ignored: a client that closes its read end mid-relay
	// would otherwise kill the server on the next write.
	signal.Ignore(syscall.SIGPIPE)

	m, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	cfg := config.ServerConfigFromMap(m)

	kind := server.Thread
	if flagKind == "fork" {
		kind = server.Fork
	}

	root := server.NewRoot()
	registerHandlers(root)

	srv := server.New(root, cfg, kind)

	if server.ForkWorkerRequested() {
		server.RunForkedConn(srv)
		return nil
	}

	l, err := listener(cfg)
	if err != nil {
		return err
	}
	return srv.Serve(l)
}

func loadConfig(flags *pflag.FlagSet) (*config.Map, error) {
	if flagConfig == "" {
		return config.New(), nil
	}
	return config.Load(flagConfig, flags)
}

// listener opens the socket a fresh server announces itself (main:path
// set) or wraps the fd a supervisor already bound and passed at main:sd.
func listener(cfg config.ServerConfig) (*net.UnixListener, error) {
	if cfg.Path != "" {
		opts := fdpass.AnnounceOptions{Uid: -1, Gid: -1}
		if cfg.Mode != "" {
			if mode, err := strconv.ParseUint(cfg.Mode, 8, 32); err == nil {
				opts.Mode = os.FileMode(mode)
			}
		}
		if cfg.Uid != "" {
			if uid, err := strconv.Atoi(cfg.Uid); err == nil {
				opts.Uid = uid
			}
		}
		if cfg.Gid != "" {
			if gid, err := strconv.Atoi(cfg.Gid); err == nil {
				opts.Gid = gid
			}
		}
		return fdpass.Announce(cfg.Path, opts)
	}
	return server.ListenerFromFd(cfg.Sd)
}
