// Command hosas-mgr classifies twin flight sticks as left- or right-hand
// from their hardware hand switch, for HOSAS setups where the host treats
// both sticks as interchangeable.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hosas/internal/classify"
	"hosas/internal/config"
	"hosas/internal/discovery"
	"hosas/internal/export"
	"hosas/internal/hidraw"
	"hosas/internal/service"
	"hosas/internal/side"
)

var Version = "dev"

func main() {

	var rootCmd = &cobra.Command{
		Use:   "hosas-mgr",
		Short: "hosas-mgr tags twin flight sticks as left- or right-hand on Linux.",
		Long:  "hosas-mgr watches for supported flight sticks, decodes the physical hand switch out of their raw HID reports and keeps a left/right tag per stick, exposed over D-Bus for input-binding resolvers. It tracks switch flips, hot-plug and reconnection.",
	}

	debugPtr := rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	versionPtr := rootCmd.PersistentFlags().BoolP("version", "v", false, "Show version information")
	oncePtr := rootCmd.PersistentFlags().BoolP("once", "o", false, "Classify currently connected sticks, print them and exit")

	rootCmd.Run = func(_ *cobra.Command, _ []string) {

		if *versionPtr {
			fmt.Printf("hosas-mgr version %s\n", Version)
			return
		}

		conf, err := config.Load()
		if err != nil {
			log.Fatalf("Error loading configuration: %s\n", err)
			return
		}

		service.Debug = *debugPtr
		classify.Debug = *debugPtr

		reg := classify.NewRegistry()
		classify.RegisterT16000M(reg)

		if *oncePtr {
			runOnce(conf, reg)
			return
		}

		var exp *export.Service
		st := side.NewStore(func(id string, s side.Side) {
			log.Default().Printf("Stick %s is now %s\n", id, s)
			if exp != nil {
				exp.NotifySideChanged(id, s)
			}
		})

		if conf.DBusExport {
			exp, err = export.Start(st)
			if err != nil {
				log.Default().Println("D-Bus export disabled:", err)
				exp = nil
			} else {
				defer exp.Close()
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		service.Run(ctx, conf, reg, st)
	}

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %s\n", err)
	}
}

// runOnce classifies each connected stick off a single report and prints
// the result, without tagging anything for other processes.
func runOnce(conf *config.Config, reg *classify.Registry) {
	st := side.NewStore(nil)

	sticks, err := discovery.FindAll()
	if err != nil {
		log.Fatalf("Error enumerating sticks: %s\n", err)
		return
	}

	for _, stick := range sticks {
		if !reg.Supported(stick.Name) {
			continue
		}

		rep, err := hidraw.CopyState(stick.Path, conf.StickConfig(stick.Serial).CopyStateTimeoutMs)
		if err != nil {
			if errors.Is(err, hidraw.ErrNoReport) {
				fmt.Printf("%s\t%s\t%s\tno report\n", stick.Path, stick.Name, stick.Serial)
			} else {
				log.Default().Printf("Error reading %s: %s\n", stick.Path, err)
			}
			continue
		}

		reg.Dispatch(st, stick.Name, stick.Key(), rep)
		s, _ := st.Side(stick.Key())
		fmt.Printf("%s\t%s\t%s\t%s\n", stick.Path, stick.Name, stick.Serial, s)
	}
}
