package main

import (
	"context"
	"errors"
	log "log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"

	"maze/internal/brain"
	"maze/internal/bus"
	"maze/internal/config"
	"maze/internal/console"
	"maze/internal/desktop"
	"maze/internal/httpapi"
	"maze/internal/ipc"
	"maze/internal/logging"
	"maze/internal/proxy"
	"maze/internal/skills"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, config.ErrHelp) {
			return
		}
		log.Error("Fatal", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	if err := logging.Setup(os.Stderr, cfg.LogLevel); err != nil {
		log.Warn("Bad log level", "err", err)
	}
	log.Info("Booting up", "provider", cfg.Provider, "data", cfg.DataDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpClient, err := proxy.NewClient(cfg.Proxy, 0)
	if err != nil {
		return err
	}

	memOpts, closeMem, err := memoryOptions(cfg)
	if err != nil {
		return err
	}
	defer closeMem()

	sess, err := brain.OpenSession(ctx, cfg.DataDir, memOpts)
	if err != nil {
		// still usable: missing pieces start empty
		log.Warn("Session loaded with errors", "err", err)
	}
	log.Info("Session ready", "id", sess.ID, "tasks", sess.Tasks.Len(), "memory", sess.Memory.Len())

	kit := skills.New(desktop.New(), skills.NewYouTube(httpClient), sess.Tasks, sess.Notes)
	offline := brain.NewOffline(kit)

	var remote *brain.Remote
	if client, err := newLLM(ctx, cfg, httpClient); err != nil {
		log.Warn("Remote model disabled", "err", err)
	} else if client != nil {
		remote = brain.NewRemote(client, brain.RemoteConfig{
			Models:  cfg.Models,
			Timeout: cfg.RemoteTimeout,
		}, offline)
		log.Info("Remote model enabled", "provider", client.Name(), "models", cfg.Models)
	}

	assistant := brain.NewAssistant(sess, offline, remote)

	srv, err := ipc.Listen(cfg.Socket, func(ctx context.Context, req ipc.Request) ipc.Response {
		return ipc.Response{Reply: assistant.Respond(ctx, req.Text)}
	})
	if err != nil {
		return err
	}
	defer srv.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Serve(gctx) })

	if cfg.HTTPAddr != "" {
		e := httpapi.New(assistant)
		g.Go(func() error { return httpapi.Serve(gctx, e, cfg.HTTPAddr) })
	}
	if cfg.BusURL != "" {
		b := bus.New(bus.Config{URL: cfg.BusURL, Rate: cfg.VoiceRate, Volume: cfg.VoiceVolume}, assistant)
		g.Go(func() error { return b.Run(gctx) })
	}

	consoleDone := make(chan error, 1)
	if cfg.Console {
		in, err := console.NewLineReader(filepath.Join(cfg.DataDir, ".history"))
		if err != nil {
			log.Debug("Readline unavailable", "err", err)
		}
		closeIn := sync.OnceFunc(func() { in.Close() })
		defer context.AfterFunc(ctx, closeIn)()

		go func() {
			consoleDone <- console.New(in, os.Stdout, assistant).Run(ctx)
			closeIn()
			// leaving the console ends the daemon
			stop()
		}()
	}

	log.Info("Boot up - successful", "socket", cfg.Socket)
	err = g.Wait()

	select {
	case cerr := <-consoleDone:
		err = errors.Join(err, cerr)
	default:
	}
	return err
}
