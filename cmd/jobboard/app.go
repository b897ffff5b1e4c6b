package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/dtroode/jobboard/database"
	"github.com/dtroode/jobboard/internal/config"
	"github.com/dtroode/jobboard/internal/identity"
	"github.com/dtroode/jobboard/internal/logger"
	"github.com/dtroode/jobboard/internal/model"
	"github.com/dtroode/jobboard/internal/session"
	"github.com/dtroode/jobboard/internal/slot"
	storage "github.com/dtroode/jobboard/internal/storage/minio"
	"github.com/dtroode/jobboard/internal/token"
)

// app holds the session controller and everything it was built from.
type app struct {
	cfg        *config.ClientConfig
	logger     *logger.Logger
	api        *identity.HTTPClient
	controller *session.Controller
	closers    []func() error
}

func newApp(ctx context.Context, cfg *config.ClientConfig, location string, out, errOut io.Writer) (*app, error) {
	a := &app{
		cfg:    cfg,
		logger: logger.NewWithWriter(cfg.LogLevel, errOut),
	}
	a.api = identity.NewHTTPClient(cfg.Backend.APIURL, nil, a.logger)

	tokenSlot, err := a.openSlot(ctx)
	if err != nil {
		a.close()
		return nil, err
	}

	fetcher, err := a.openFetcher()
	if err != nil {
		a.close()
		return nil, err
	}

	nav := &printNavigator{out: out}
	a.controller = session.New(session.Deps{
		Slot:      tokenSlot,
		Decoder:   token.NewDecoder(),
		Fetcher:   identity.WithTimeout(fetcher, cfg.Backend.FetchTimeout),
		Navigator: nav,
		Logger:    a.logger,
	}, session.WithLocation(location))
	nav.host = a.controller

	return a, nil
}

func (a *app) openSlot(ctx context.Context) (model.TokenSlot, error) {
	switch a.cfg.Slot.Backend {
	case config.SlotBackendPostgres:
		if err := database.Migrate(ctx, a.cfg.Database.DSN); err != nil {
			return nil, fmt.Errorf("failed to migrate slot database: %w", err)
		}
		db, err := slot.OpenSQL(a.cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return slot.NewSQL(db, a.cfg.Slot.Key), nil

	case config.SlotBackendMinio:
		client, err := storage.Open(ctx, storage.Options{
			Endpoint:  a.cfg.Storage.Endpoint,
			AccessKey: a.cfg.Storage.AccessKey,
			SecretKey: a.cfg.Storage.SecretKey,
			UseSSL:    a.cfg.Storage.UseSSL,
			Bucket:    a.cfg.Storage.Bucket,
			Prefix:    a.cfg.Storage.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return slot.NewObject(client, a.cfg.Slot.Key), nil

	default:
		path := a.cfg.Slot.FilePath
		if path == "" {
			dir, err := os.UserConfigDir()
			if err != nil {
				return nil, fmt.Errorf("failed to resolve config dir: %w", err)
			}
			path = filepath.Join(dir, "jobboard", a.cfg.Slot.Key)
		}
		return slot.NewFile(path), nil
	}
}

func (a *app) openFetcher() (model.IdentityFetcher, error) {
	if a.cfg.Backend.Transport != config.TransportGRPC {
		return a.api, nil
	}

	conn, err := grpc.NewClient(a.cfg.Backend.GRPCAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create grpc client: %w", err)
	}
	a.closers = append(a.closers, conn.Close)
	return identity.NewGRPCClient(conn), nil
}

func (a *app) close() {
	if a.controller != nil {
		a.controller.Dispose()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("CLI: failed to release resource", "error", err.Error())
		}
	}
}
