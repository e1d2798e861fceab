package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"catalant-monitor/internal/config"
	"catalant-monitor/internal/extract"
	"catalant-monitor/internal/monitor"
	"catalant-monitor/internal/notify"
	"catalant-monitor/internal/secrets"
	"catalant-monitor/internal/seenstore"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "secret" {
		if err := runSecret(os.Args[2:]); err != nil {
			log.Fatal(err)
		}
		return
	}

	once := flag.Bool("once", false, "run a single check and exit (for CI schedules)")
	flag.Parse()

	config.LoadDotenv()

	dataDir := os.Getenv("MONITOR_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	cfg := mustLoadConfig(dataDir)

	// Relative paths live under the data dir.
	storePath := cfg.Store.Path
	if !filepath.IsAbs(storePath) {
		storePath = filepath.Join(dataDir, storePath)
	}
	if !filepath.IsAbs(cfg.Portal.CookiesFile) {
		cfg.Portal.CookiesFile = filepath.Join(dataDir, cfg.Portal.CookiesFile)
	}

	portalPW, err := secrets.Get(secrets.PortalAccount(cfg), "CATALANT_PASSWORD")
	if err != nil {
		// saved cookies may still carry the session; login will fail
		// loudly if they don't
		log.Printf("[monitor] %v", err)
	}

	smtpPW, err := secrets.Get(secrets.SMTPAccount(cfg), "SENDER_PASSWORD")
	if err != nil {
		log.Fatalf("[monitor] smtp: %v", err)
	}

	var store seenstore.Store
	switch cfg.Store.Backend {
	case "sqlite":
		s, err := seenstore.OpenSQLite(storePath)
		if err != nil {
			log.Fatalf("[monitor] open store: %v", err)
		}
		defer s.Close()
		store = s
	default:
		store = seenstore.NewFileStore(storePath)
	}

	notifier := &notify.Notifier{
		Mailer: &notify.SMTPMailer{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: smtpPW,
			From:     cfg.SMTP.Sender,
		},
		Recipients:    cfg.Notify.Recipients,
		SubjectPrefix: cfg.Notify.SubjectPrefix,
		DashboardURL:  cfg.DashboardURL(),
	}

	ctrl := &monitor.Controller{
		Extractor: extract.NewCatalant(cfg, portalPW),
		Store:     store,
		Notifier:  notifier,
		LockPath:  storePath + ".lock",
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		res, err := ctrl.RunCycle(ctx)
		if err != nil {
			log.Fatalf("[monitor] %v", err)
		}
		log.Printf("[monitor] check complete new=%d tracked=%d", res.New, res.Tracked)
		return
	}

	interval := time.Duration(cfg.Polling.IntervalSeconds) * time.Second
	log.Printf("[monitor] polling every %s (store=%s backend=%s)", interval, storePath, cfg.Store.Backend)

	var status atomic.Value
	ctrl.RunLoop(ctx, interval, &status)
	log.Printf("[monitor] stopped")
}

func mustLoadConfig(dataDir string) config.Config {
	cfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", cfgPath, err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("%v", err)
	}
	return cfg
}
