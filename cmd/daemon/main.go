package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	machinetalk "github.com/machinekit/go-machinetalk"
	"github.com/machinekit/go-machinetalk/zeroconf"
	log "github.com/sirupsen/logrus"
)

type App struct {
	cfg *Config

	state     machinetalk.AppState
	registrar zeroconf.Registrar
	service   *zeroconf.Service

	server *ApiServer
}

func NewApp(cfg *Config) (app *App, err error) {
	app = &App{cfg: cfg}

	if err := app.state.Read(cfg.StateDir); err != nil {
		return nil, err
	}

	// an uuid in the configuration wins over the persisted one
	serviceUUID := cfg.Service.UUID
	if len(serviceUUID) == 0 {
		serviceUUID, err = app.state.EnsureServiceUUID()
		if err != nil {
			return nil, fmt.Errorf("failed initializing service uuid: %w", err)
		}
	}

	app.registrar, err = zeroconf.NewRegistrar(cfg.ZeroconfBackend, &LogrusAdapter{log.NewEntry(log.StandardLogger())})
	if err != nil {
		return nil, fmt.Errorf("failed initializing %s registrar: %w", cfg.ZeroconfBackend, err)
	}

	app.service, err = zeroconf.NewService(&LogrusAdapter{log.NewEntry(log.StandardLogger())}, app.registrar, cfg.Service.options(serviceUUID))
	if err != nil {
		_ = app.registrar.Close()
		return nil, fmt.Errorf("failed creating service: %w", err)
	}

	return app, nil
}

func (app *App) status() *ApiResponseStatus {
	return &ApiResponseStatus{
		State:      app.service.State().String(),
		InstanceId: app.service.InstanceId(),
		Backend:    app.cfg.ZeroconfBackend,
		Record:     app.service.Record(),
	}
}

func (app *App) handleApiRequest(ctx context.Context, req ApiRequest) (any, error) {
	switch req.Type {
	case ApiRequestTypeStatus:
		return app.status(), nil
	case ApiRequestTypePublish:
		if err := app.service.Publish(ctx); errors.Is(err, zeroconf.ErrAlreadyPublished) {
			return nil, fmt.Errorf("%w: %w", ErrConflict, err)
		} else if err != nil {
			return nil, err
		}

		return app.status(), nil
	case ApiRequestTypeUnpublish:
		if err := app.service.Unpublish(ctx); errors.Is(err, zeroconf.ErrNotPublished) {
			return nil, fmt.Errorf("%w: %w", ErrConflict, err)
		} else if err != nil {
			return nil, err
		}

		return app.status(), nil
	default:
		return nil, fmt.Errorf("unknown request type: %s", req.Type)
	}
}

// Run publishes the service and serves api requests until ctx is done, then
// retracts the service.
func (app *App) Run(ctx context.Context) error {
	app.service.OnStateChange(func(_, state zeroconf.State) {
		ev := &ApiEvent{Type: ApiEventTypeUnpublished}
		if state == zeroconf.StatePublished {
			ev.Type = ApiEventTypePublished
		}

		// the service is locked until the transition returns
		go func() {
			ev.Data = ApiEventDataRecord(app.service.Record())
			app.server.Emit(ev)
		}()
	})

	if err := app.service.Publish(ctx); err != nil {
		return fmt.Errorf("failed publishing service: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			// the parent context is gone, retract with a fresh one
			unpublishCtx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			if err := app.service.Unpublish(unpublishCtx); err != nil && !errors.Is(err, zeroconf.ErrNotPublished) {
				return fmt.Errorf("failed unpublishing service: %w", err)
			}

			return nil
		case req := <-app.server.Receive():
			data, err := app.handleApiRequest(ctx, req)
			req.Reply(data, err)
		}
	}
}

func (app *App) Close() {
	if app.server != nil {
		app.server.Close()
	}

	if err := app.registrar.Close(); err != nil {
		log.WithError(err).Warn("failed closing registrar")
	}
}

// browse prints every machinekit service found within the browse timeout as
// one JSON object per line.
func browse(ctx context.Context, cfg *Config) error {
	browser, err := zeroconf.NewBrowser(&LogrusAdapter{log.NewEntry(log.StandardLogger())})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.BrowseTimeout)*time.Second)
	defer cancel()

	enc := json.NewEncoder(os.Stdout)
	return browser.Browse(ctx, cfg.Service.Type, func(info zeroconf.ServiceInfo) {
		if err := enc.Encode(info); err != nil {
			log.WithError(err).Warnf("failed printing service %s", info.Instance)
		}
	})
}

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		log.WithError(err).Fatal("failed loading configuration")
	}

	// parse and set log level
	logLevel, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Fatalf("invalid log level: %s", cfg.LogLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:    true,
		DisableTimestamp: cfg.LogDisableTimestamp,
	})

	log.Infof("running %s", machinetalk.VersionString())
	log.Debugf("%s", machinetalk.SystemInfoString())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Browse {
		if err := browse(ctx, cfg); err != nil {
			log.WithError(err).Fatal("failed browsing services")
		}
		return
	}

	if err := os.MkdirAll(cfg.StateDir, 0o700); err != nil {
		log.WithError(err).Fatal("failed creating state directory")
	}

	// only one daemon may own the persisted state
	lock := flock.New(filepath.Join(cfg.StateDir, "lockfile"))
	if locked, err := lock.TryLock(); err != nil {
		log.WithError(err).Fatal("failed to acquire lock on state directory")
	} else if !locked {
		log.Fatal("another instance is already running with the same state directory")
	}
	defer func() { _ = lock.Unlock() }()

	app, err := NewApp(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed creating app")
	}
	defer app.Close()

	// create api server if needed
	if cfg.Server.Enabled {
		app.server, err = NewApiServer(cfg.Server.Address, cfg.Server.Port, cfg.Server.AllowOrigin, cfg.Server.CertFile, cfg.Server.KeyFile)
		if err != nil {
			log.WithError(err).Fatal("failed creating api server")
		}
	} else {
		app.server, _ = NewStubApiServer()
	}

	if err := app.Run(ctx); err != nil {
		log.WithError(err).Error("failed running service")
		app.Close()
		_ = lock.Unlock()
		os.Exit(1)
	}
}
