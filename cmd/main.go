package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"sensor-app/controller"
	"sensor-app/services/api"
	"sensor-app/services/live"
	"sensor-app/services/publish"
	"sensor-app/utils"
	"sensor-app/views"
)

func main() {
	// ── CLI flags ────────────────────────────────────────────────────
	configPath := flag.String("config", "config/app.yaml", "path to app.yaml")
	logFile := flag.String("log", "", "log file path (overrides log.file)")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (overrides log.level)")
	addr := flag.String("addr", "", "HTTP listen address (overrides server.addr)")
	exportOnExit := flag.Bool("export", true, "export every session to CSV on shutdown")
	flag.Parse()

	// ── Logger ───────────────────────────────────────────────────────
	logger := utils.InitLogger(utils.ParseLogLevel(*logLevel), *logFile)
	defer logger.Close()

	utils.L().Info("═══════════════════════════════════════════════════")
	utils.L().Info("  Sensor-App  ·  motion & location recorder")
	utils.L().Info("  GOMAXPROCS=%d  ·  PID=%d", runtime.GOMAXPROCS(0), os.Getpid())
	utils.L().Info("═══════════════════════════════════════════════════")

	// ── Load config ──────────────────────────────────────────────────
	cfg, err := utils.LoadConfig(*configPath)
	if err != nil {
		utils.L().Error("load config: %v", err)
		logger.Close()
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := logger.Configure(cfg.Log); err != nil {
		utils.L().Warn("log config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if cfg.Storage.ExportDir != "" && !filepath.IsAbs(cfg.Storage.ExportDir) {
		abs, _ := filepath.Abs(cfg.Storage.ExportDir)
		cfg.Storage.ExportDir = abs
	}
	utils.InitMetrics()

	// ── Context with OS signal cancellation ──────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	duration := cfg.Simulation.DurationSeconds
	if duration > 0 {
		var timerCancel context.CancelFunc
		ctx, timerCancel = context.WithTimeout(ctx, time.Duration(duration)*time.Second)
		defer timerCancel()
		utils.L().Info("recording will auto-stop after %ds", duration)
	}

	// ── Assembly ─────────────────────────────────────────────────────
	//
	//  readers ──callback──► sessions ──observers──► dashboard ──► live room (/live)
	//                           │              └──────────────► mqtt publisher
	//                           └── HTTP API / export controller ──► CSV

	presenter := views.Presenter{
		Pressure: views.PressureUnit(cfg.Settings.PressureUnit),
		Height:   views.HeightUnit(cfg.Settings.HeightUnit),
		Speed:    views.SpeedUnit(cfg.Settings.SpeedUnit),
	}
	exporter := views.NewExporter(
		views.ParseDelimiter(cfg.Settings.Delimiter),
		views.NewNumberFormat(cfg.Settings.Locale, views.DefaultFractionDigits),
	)

	// 1. Sessions
	sensorCtrl := controller.NewSensorsController(cfg)

	// 2. Observers
	dashCtrl := controller.NewDashboardController(presenter, time.Duration(cfg.Server.RefreshIntervalMs)*time.Millisecond)
	dashCtrl.Start(ctx, sensorCtrl)

	room := live.NewRoom()
	go room.Run(ctx)
	go live.Pump(ctx, room, dashCtrl.Out)

	if cfg.MQTT.Enabled {
		pub, err := publish.Connect(cfg.MQTT)
		if err != nil {
			utils.L().Error("mqtt disabled: %v", err)
		} else {
			detach := pub.Attach(sensorCtrl.Recorders())
			defer pub.Close()
			defer detach()
		}
	}

	// 3. Start delivery. Unavailable sensors stay idle.
	_ = sensorCtrl.StartAll()

	// 4. HTTP
	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: api.NewRouter(api.Deps{
			Sensors:   sensorCtrl,
			Exporter:  exporter,
			Presenter: presenter,
			Live:      room,
			Metrics:   utils.MetricsHandler(),
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		utils.L().Info("http listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.L().Error("http server: %v", err)
			cancel()
		}
	}()

	// ── Stats ticker ─────────────────────────────────────────────────
	statsTicker := time.NewTicker(5 * time.Second)
	defer statsTicker.Stop()

	// ── Main event loop ──────────────────────────────────────────────
	for {
		select {
		case sig := <-sigCh:
			utils.L().Info("received signal: %v — shutting down…", sig)
			cancel()
			goto shutdown

		case <-ctx.Done():
			goto shutdown

		case <-statsTicker.C:
			utils.L().Info("── stats ─────────────────────────")
			sensorCtrl.LogStats()
			utils.L().Info("──────────────────────────────────")
		}
	}

shutdown:
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.L().Warn("http shutdown: %v", err)
	}

	sensorCtrl.StopAll()

	if !*exportOnExit {
		return
	}
	exportCtrl := controller.NewExportController(cfg.Storage, exporter)
	dir, paths, err := exportCtrl.ExportAll(sensorCtrl.Recorders())
	if err != nil {
		utils.L().Error("export: %v", err)
	}
	utils.L().Info("exported %d files, %d rows", len(paths), exportCtrl.RowsWritten())

	fmt.Println("\n✓ Sensor-App finished. Exports at:", dir)
}
