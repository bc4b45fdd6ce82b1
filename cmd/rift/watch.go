package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchFile calls parse once, then again after every write to filename,
// until ctx is done. Syntax errors do not stop the watch.
func watchFile(ctx context.Context, filename string, parse func() error, errOut io.Writer, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(errOut, "rift: cannot watch %s: %v\n", filename, err)
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors often save by renaming a new file over the old one
	target := filepath.Clean(filename)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		fmt.Fprintf(errOut, "rift: cannot watch %s: %v\n", filename, err)
		return err
	}

	reparse := func() {
		if err := parse(); err != nil && !errors.Is(err, ErrParseFailed) {
			logger.Warn("parse failed", "file", filename, "err", err)
		}
	}
	reparse()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("file changed", "file", filename, "op", ev.Op.String())
			fmt.Fprintf(errOut, "rift: %s changed\n", filename)
			reparse()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}
