// Command fastfilter-build reads a newline-delimited text corpus and
// writes a layered binary-fuse filter index to disk (spec §4.6, §6).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"
)

var gitCommitSHA = ""

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, syscall.SIGTERM, syscall.SIGINT)

		select {
		case <-interrupt:
			fmt.Println()
			klog.Info("received interrupt signal")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(interrupt)
	}()

	app := &cli.App{
		Name:        "fastfilter-build",
		Version:     gitCommitSHA,
		Description: "Build a layered binary-fuse filter full-text index from a line-delimited text corpus.",
		Flags:       append([]cli.Flag{}, NewKlogFlagSet()...),
		Commands: []*cli.Command{
			newCmd_Build(),
		},
	}
	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	if err := app.RunContext(ctx, os.Args); err != nil {
		klog.Exit(err)
	}
}
