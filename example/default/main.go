package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"m7s.live/capture"
	"m7s.live/capture/pkg"
	"m7s.live/capture/pkg/util"
)

func main() {
	conf := flag.String("c", "config.yaml", "config file")
	addr := flag.String("metrics", ":9100", "metrics listen address")
	flag.Parse()
	if _, err := os.Stat(*conf); err != nil {
		*conf = ""
	}
	config, err := capture.LoadConfig(*conf)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger, err := capture.NewLogger(config, os.Stderr)
	if err != nil {
		slog.Error("logger", "err", err)
		os.Exit(1)
	}
	device, err := capture.NewDevice(config, logger)
	if err != nil {
		logger.Error("open device", "err", err)
		os.Exit(1)
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(device)
	go func() {
		logger.Info("metrics listen", "addr", *addr)
		if err := http.ListenAndServe(*addr, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})); err != nil {
			logger.Error("metrics listen", "addr", *addr, "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go produce(ctx, device)
	go watch(ctx, device, logger.With("consumer", "watch"))
	snapshot(ctx, device, logger.With("consumer", "snapshot"))

	for {
		if err = device.Close(); !errors.Is(err, pkg.ErrInUse) {
			break
		}
		time.Sleep(time.Millisecond * 10)
	}
	if err != nil {
		logger.Error("close device", "err", err)
	}
}

// produce renders a moving gray ramp at 30 frames per second.
func produce(ctx context.Context, device *capture.Device) {
	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()
	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		var flags pkg.Flags
		if i%30 == 0 {
			flags = pkg.FlagKeyframe
		}
		_, err := device.CaptureFunc(device.SlotSize, func(b []byte) error {
			for j := range b {
				b[j] = byte(i + j)
			}
			return nil
		}, flags)
		if err != nil && !errors.Is(err, pkg.ErrSlotBusy) {
			if !errors.Is(err, pkg.ErrQueueClosed) {
				device.Error("capture", "err", err)
			}
			return
		}
	}
}

// watch reads every frame in place and never keeps the bytes.
func watch(ctx context.Context, device *capture.Device, logger *slog.Logger) {
	var prev *pkg.Frame
	for {
		f, err := device.Next(ctx, prev)
		if prev != nil {
			prev.Release()
		}
		if err != nil {
			return
		}
		if f.Flags().Has(pkg.FlagKeyframe) {
			logger.Info("keyframe", "seq", f.Seq(), "ts", f.Timestamp(), "len", f.Len(), "flags", f.Flags())
		}
		prev = f
	}
}

// snapshot keeps a copy of the newest frame every second.
func snapshot(ctx context.Context, device *capture.Device, logger *slog.Logger) {
	pool := util.NewBytesPool(device.SlotSize)
	var last *pkg.UserBuffer
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		f, err := device.Latest()
		if err != nil {
			continue
		}
		if last != nil {
			last.Recycle()
		}
		last = pkg.CloneFrom(pool, f)
		f.Release()
		logger.Debug("snapshot", "seq", last.Seq(), "len", last.Len(), "stats", device.Stats())
	}
}
