package config

import (
	"context"
	"path/filepath"

	"emperror.dev/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/log"
)

// fileWatcher follows a single file. The parent directory is watched so
// symlink swaps (kubernetes secret and configmap updates) are seen.
type fileWatcher struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func watchFile(logger log.Logger, filePath string, onChange func()) (*fileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	file := filepath.Clean(filePath)

	err = watcher.Add(filepath.Dir(file))
	if err != nil {
		_ = watcher.Close()

		return nil, errors.WithStack(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	fw := &fileWatcher{cancel: cancel, done: make(chan struct{})}

	go fw.run(ctx, watcher, file, logger, onChange)

	return fw, nil
}

func (fw *fileWatcher) run(ctx context.Context, watcher *fsnotify.Watcher, file string, logger log.Logger, onChange func()) {
	defer close(fw.done)
	defer watcher.Close()

	target, _ := filepath.EvalSymlinks(file)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}

			current, _ := filepath.EvalSymlinks(file)
			sameFile := filepath.Clean(ev.Name) == file

			switch {
			case sameFile && ev.Op&(fsnotify.Write|fsnotify.Create) != 0,
				current != "" && current != target:
				target = current

				onChange()
			case sameFile && ev.Op&fsnotify.Remove != 0:
				logger.Warnf("watched file %s removed, stop watching", file)

				return
			}
		case err, ok := <-watcher.Errors:
			if ok {
				logger.WithError(err).Error("file watcher stopped")
			}

			return
		}
	}
}

// Stop does not wait, onChange may be running.
func (fw *fileWatcher) Stop() {
	fw.cancel()
}
