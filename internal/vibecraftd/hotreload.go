package vibecraftd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/kiosk404/vibecraft/internal/vibecraft/build"
	"github.com/kiosk404/vibecraft/pkg/codec"
	"github.com/kiosk404/vibecraft/pkg/logger"
)

// runtimeSettings is the hot-reloadable, non-safety slice of the
// configuration. Safety flags and the build box are deliberately
// absent: the sanitizer policy binds once at process start.
type runtimeSettings struct {
	CommandLogging *bool   `json:"command_logging,omitempty"`
	RequestTimeout *string `json:"request_timeout,omitempty"` // Go duration string, e.g. "45s"
}

// watchRuntimeSettings watches path and applies each valid rewrite to
// the Engine. The watcher lives until stop is closed; a missing file is
// fine, settings apply once it appears.
func watchRuntimeSettings(path string, engine *build.Engine, stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory, not the file: editors replace files by
	// rename, which drops a direct file watch.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	applyRuntimeSettings(path, engine)

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-stop:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					applyRuntimeSettings(path, engine)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("runtime settings watcher: %v", err)
			}
		}
	}()

	return nil
}

func applyRuntimeSettings(path string, engine *build.Engine) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("runtime settings: read %s: %v", path, err)
		}
		return
	}

	var settings runtimeSettings
	if err := codec.Unmarshal(data, &settings); err != nil {
		logger.Warn("runtime settings: %s does not parse, keeping current values: %v", path, err)
		return
	}

	if settings.CommandLogging != nil {
		engine.SetCommandLogging(*settings.CommandLogging)
		logger.Info("runtime settings: command logging -> %v", *settings.CommandLogging)
	}
	if settings.RequestTimeout != nil {
		d, err := time.ParseDuration(*settings.RequestTimeout)
		if err != nil || d <= 0 {
			logger.Warn("runtime settings: bad request_timeout %q ignored", *settings.RequestTimeout)
		} else {
			engine.SetCommandTimeout(d)
			logger.Info("runtime settings: request timeout -> %s", d)
		}
	}
}
