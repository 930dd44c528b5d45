package service

import (
	"context"
	"log"
	"time"

	"hosas/internal/classify"
	"hosas/internal/discovery"
	"hosas/internal/hidraw"
	"hosas/internal/side"
)

// MonitorStick reads report frames from a stick's node and feeds each one
// to the classifier, until the context is canceled or the node goes away.
// Covers switch flips while the stick stays connected: a flip produces a
// fresh frame, and the classifier's change suppression keeps the steady
// state write-free.
func MonitorStick(ctx context.Context, reg *classify.Registry, st *side.Store, stick discovery.Stick) {
	if Debug {
		log.Default().Println("Starting stick monitor for", stick.Path)
	}

	for {
		if ctx.Err() != nil {
			return
		}

		f, err := hidraw.Open(stick.Path)
		if err != nil {
			if !pathExists(stick.Path) {
				// Unplugged; the manager cleans up.
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}

		// Closing the node unblocks the read when the context is canceled.
		done := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
			case <-done:
			}
			_ = f.Close()
		}()

		for {
			rep, err := hidraw.ReadReport(f)
			if err != nil {
				if Debug {
					log.Default().Println("Stopping read loop for", stick.Path, ":", err)
				}
				break
			}
			reg.Dispatch(st, stick.Name, stick.Key(), rep)
		}
		close(done)

		if ctx.Err() != nil || !pathExists(stick.Path) {
			return
		}
	}
}
