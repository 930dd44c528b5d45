// Package service contains the manager loop keeping stick handedness current.
package service

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"hosas/internal/classify"
	"hosas/internal/config"
	"hosas/internal/discovery"
	"hosas/internal/hidraw"
	"hosas/internal/side"
	"hosas/internal/sysfs"
)

var (
	// Debug enables debug logging within the service package.
	Debug bool
)

type managedStick struct {
	Stick      discovery.Stick
	CancelFunc context.CancelFunc
}

// Run watches for supported sticks, classifies each at plug time and keeps
// a monitor goroutine per connected stick. Blocks until ctx is canceled.
func Run(ctx context.Context, conf *config.Config, reg *classify.Registry, st *side.Store) {
	if Debug {
		log.Default().Println("Run: Debug mode enabled")
	}

	var devEvents chan fsnotify.Event
	var devErrors chan error
	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		if err := watcher.Add("/dev"); err != nil {
			log.Default().Println("Unable to watch /dev, falling back to polling:", err)
		} else {
			devEvents = watcher.Events
			devErrors = watcher.Errors
		}
		defer watcher.Close()
	} else {
		log.Default().Println("fsnotify unavailable, falling back to polling:", err)
	}

	active := make(map[string]*managedStick)
	ticker := time.NewTicker(time.Duration(conf.PollSeconds) * time.Second)
	defer ticker.Stop()

	rescan(ctx, conf, reg, st, active)

	for {
		select {
		case <-ctx.Done():
			for _, m := range active {
				m.CancelFunc()
			}
			return
		case ev := <-devEvents:
			if strings.HasPrefix(filepath.Base(ev.Name), "hidraw") {
				rescan(ctx, conf, reg, st, active)
			}
		case err := <-devErrors:
			log.Default().Println("Watcher error:", err)
		case <-ticker.C:
			rescan(ctx, conf, reg, st, active)
		}
	}
}

func rescan(ctx context.Context, conf *config.Config, reg *classify.Registry, st *side.Store, active map[string]*managedStick) {
	sticks, err := discovery.FindAll()
	if err != nil {
		log.Default().Println("Error enumerating sticks:", err)
		return
	}

	for _, stick := range sticks {
		if _, exists := active[stick.Path]; exists {
			continue
		}
		if !reg.Supported(stick.Name) {
			continue
		}

		if Debug {
			log.Default().Println("New stick detected at", stick.Path)
		}

		// Classify immediately off the current report, so a freshly
		// plugged stick gets a side before it is ever moved. A quiet
		// device is fine; the monitor picks up the next frame.
		timeout := conf.StickConfig(stick.Serial).CopyStateTimeoutMs
		rep, err := hidraw.CopyState(stick.Path, timeout)
		if err == nil {
			reg.Dispatch(st, stick.Name, stick.Key(), rep)
		} else if !errors.Is(err, hidraw.ErrNoReport) && Debug {
			log.Default().Println("Plug-time read failed for", stick.Path, ":", err)
		}

		stickCtx, cancel := context.WithCancel(ctx)
		active[stick.Path] = &managedStick{Stick: stick, CancelFunc: cancel}
		go MonitorStick(stickCtx, reg, st, stick)
	}

	for path, m := range active {
		if !pathExists(path) {
			if Debug {
				log.Default().Println("Stick removed at", path)
			}
			m.CancelFunc()
			delete(active, path)
		}
	}
}

func pathExists(path string) bool {
	_, err := sysfs.FS.Stat(path)
	return err == nil
}
