// Package watcher turns file-system create events under the daily-notes
// folder into note-created callbacks.
package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// CreatedFunc is called once per created .md file with its vault-relative
// path (forward slashes). Calls are serialized.
type CreatedFunc func(ctx context.Context, path string)

// Watch starts an fsnotify watcher on dir (relative to vaultRoot) and reports
// created Markdown files until ctx is cancelled.
//
// Creates are batched: a file is reported settle after the most recent
// create event, which lets the host finish writing the note first. New
// directories are added to the watch list and any .md files already inside
// them are reported as created.
func Watch(ctx context.Context, vaultRoot, dir string, settle time.Duration, logger *slog.Logger, cb CreatedFunc) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	watchRoot := filepath.Join(vaultRoot, filepath.FromSlash(dir))
	if err := addDirsRecursive(w, watchRoot); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", watchRoot))

	pending := make(map[string]struct{})
	var settleTimer *time.Timer
	var settleCh <-chan time.Time

	flush := func() {
		paths := make([]string, 0, len(pending))
		for p := range pending {
			paths = append(paths, p)
		}
		clear(pending)
		sort.Strings(paths)
		for _, p := range paths {
			cb(ctx, p)
		}
	}

	enqueue := func(rel string) {
		pending[rel] = struct{}{}
		if settle <= 0 {
			flush()
			return
		}
		if settleTimer == nil {
			settleTimer = time.NewTimer(settle)
			settleCh = settleTimer.C
		} else {
			settleTimer.Reset(settle)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if settleTimer != nil {
				settleTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-settleCh:
			flush()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) {
				continue
			}

			absPath := ev.Name
			if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
				if addErr := addDirsRecursive(w, absPath); addErr != nil {
					logger.Warn("watcher: add new dir failed",
						slog.String("path", absPath),
						slog.String("error", addErr.Error()))
				} else {
					logger.Debug("watcher: watching new dir", slog.String("path", absPath))
				}
				for _, rel := range markdownFiles(vaultRoot, absPath) {
					enqueue(rel)
				}
				continue
			}

			if !strings.HasSuffix(absPath, ".md") {
				continue
			}
			rel, relErr := filepath.Rel(vaultRoot, absPath)
			if relErr != nil {
				continue
			}
			logger.Debug("watcher: created", slog.String("path", rel))
			enqueue(filepath.ToSlash(rel))

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// markdownFiles lists the .md files under dirPath relative to vaultRoot.
func markdownFiles(vaultRoot, dirPath string) []string {
	var out []string
	_ = filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		if rel, relErr := filepath.Rel(vaultRoot, path); relErr == nil {
			out = append(out, filepath.ToSlash(rel))
		}
		return nil
	})
	return out
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
