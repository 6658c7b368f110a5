package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/flytaly/scrapmd/pkg/convert"
	"github.com/flytaly/scrapmd/pkg/document"
	"github.com/flytaly/scrapmd/pkg/fswatcher"
)

func newWatchCmd() *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Convert documents and reconvert them when they change",
		Long: `Convert documents and reconvert them when they change

Internally, watcher polls the filesystem, so don't use the program inside the root directory of the filesystem or in the folders with large number of files.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatch,
	}
	watchCmd.Flags().DurationP("interval", "i", 500*time.Millisecond, "poll interval duration (e.g. 1s, 500ms...)")
	return watchCmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := getConfig(cmd)
	if err != nil {
		return err
	}
	interval, _ := cmd.Flags().GetDuration("interval")

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Close()

	path, err := target(cmd, args)
	if err != nil {
		return wrapLocateError(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return wrapLocateError(err)
	}

	root, watched := path, "."
	if !info.IsDir() {
		root, watched = filepath.Dir(path), filepath.Base(path)
	}
	fsys := os.DirFS(root)
	c := convert.New(converterOptions(cfg), convert.WithLogger(logger))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths := []string{watched}
	if info.IsDir() {
		if paths, err = document.FileList(fsys, "."); err != nil {
			return wrapLocateError(err)
		}
	}
	if err := c.ConvertFiles(ctx, fsys, root, paths, cfg.Workers); err != nil {
		logger.Error("%v", err)
	}

	poller := fswatcher.NewFsPoller(fsys)
	poller.AddShouldSkipHook(document.SkipEntry)
	if err := poller.Add(watched); err != nil {
		return wrapLocateError(err)
	}

	go func() {
		if err := poller.Start(interval); err != nil {
			logger.Error("%v", err)
		}
	}()

	fmt.Fprintln(cmd.OutOrStdout(), color.Cyan.Sprintf("Watching %s (every %s)", path, interval))
	c.WatchEvents(ctx, poller, fsys, root)
	return poller.Close()
}
