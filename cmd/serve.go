package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-spring-projects/website/internal/config"
	"github.com/go-spring-projects/website/internal/log"
	"github.com/go-spring-projects/website/internal/progress"
	"github.com/go-spring-projects/website/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and serve it locally with live reload",
	Long:  `Builds the site, serves it with clean URLs and the language cookie, and rebuilds and reloads open browsers whenever a source file or the config file changes.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 5173, "port for the local dev server")
	serveCmd.Flags().String("host", "localhost", "interface to listen on")
	serveCmd.Flags().Bool("open", false, "open browser automatically")
	serveCmd.Flags().Bool("cors", false, "allow cross-origin requests from any origin")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	port, _ := cmd.Flags().GetInt("port")
	host, _ := cmd.Flags().GetString("host")
	open, _ := cmd.Flags().GetBool("open")
	allowAll, _ := cmd.Flags().GetBool("cors")
	logger := log.WithComponent("serve")

	build := func(cfg *config.Config) error {
		generator := newGenerator(cfg, "")
		generator.LiveReload = true
		generator.Reporter = progress.Silent{}
		_, err := generator.Generate()
		return err
	}
	if err := build(cfg); err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	srv := server.New(server.Config{Host: host, Port: port, Root: cfg.OutDir, AllowAll: allowAll}, cfg)

	// Rebuilds reload the config so edits to it apply without a restart.
	// Base and out_dir are fixed for the life of the server.
	var mu sync.Mutex
	rebuild := func() error {
		mu.Lock()
		defer mu.Unlock()
		next, err := loadConfig()
		if err != nil {
			return err
		}
		next.Base, next.OutDir = cfg.Base, cfg.OutDir
		if err := build(next); err != nil {
			return err
		}
		srv.UpdateSite(next)
		srv.Hub().Broadcast()
		return nil
	}

	watcher, err := server.NewWatcher(cfg.SrcDir, []string{cfgFile}, rebuild)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go watcher.Run(ctx)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	url := fmt.Sprintf("http://%s%s", srv.Addr(), cfg.Base)
	fmt.Printf("Serving at %s, press Ctrl+C to stop\n", url)
	if open {
		openBrowser(url)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return <-errCh
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
