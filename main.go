package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"LocalPaint/internal/config"
	"LocalPaint/internal/net"
	"LocalPaint/internal/ui"
)

var (
	flagConf   = flag.String("conf", "localpaint.toml", "location of configuration file")
	flagServe  = flag.Bool("serve", false, "run the browser host only, without a window")
	flagBrowse = flag.Duration("browse", 0, "list paint hosts on the local network for this long, then exit")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*flagConf)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.DiscardHandler)
	if cfg.Debug {
		logger = slog.Default()
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *flagBrowse > 0 {
		found := 0
		err := net.Browse(ctx, cfg.Service, *flagBrowse, func(addr string) {
			found++
			fmt.Printf("http://%s/\n", addr)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("Browse failed: %v", err)
		}
		log.Printf("Found %d host(s)", found)
		return
	}

	if *flagServe {
		log.Println("Starting as WEB HOST")
		if err := runWebHost(ctx, cfg, logger, nil); err != nil {
			log.Fatal(err)
		}
		return
	}

	log.Println("Starting as DESKTOP HOST")
	shareLink := ""
	started := make(chan string, 1)
	go func() {
		if err := runWebHost(ctx, cfg, logger, started); err != nil {
			log.Printf("Browser host stopped: %v", err)
			// No link to show; the window opens without one.
			select {
			case started <- "":
			default:
			}
		}
	}()
	select {
	case shareLink = <-started:
	case <-time.After(2 * time.Second):
	}
	ui.RunApp(cfg, logger, shareLink)
	stop()
}

// runWebHost serves browser sessions until ctx ends. The share link is sent
// on started once the listener is bound.
func runWebHost(ctx context.Context, cfg config.Config, logger *slog.Logger, started chan<- string) error {
	listener, port, err := net.Listen(cfg.Listen)
	if err != nil {
		return err
	}

	srv := net.NewServer(ctx, cfg, logger)
	defer srv.Close()
	httpServer := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.Advertise {
		mdnsServer, err := net.Advertise(cfg.Service, port)
		if err != nil {
			log.Printf("Failed to advertise service: %v", err)
		} else {
			defer mdnsServer.Shutdown()
			log.Printf("Advertising %s on port %d", cfg.Service, port)
		}
	}

	errc := make(chan error, 1)
	go func() { errc <- httpServer.Serve(listener) }()

	shareLink := net.ShareURL(port)
	log.Printf("Browser host listening on %s, share link: %s", listener.Addr(), shareLink)
	if started != nil {
		started <- shareLink
	}

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Println("Shutting down browser host")
	return httpServer.Shutdown(shutdownCtx)
}
