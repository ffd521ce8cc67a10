package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/elpatron68/cleaning-ui/internal/auth"
	"github.com/elpatron68/cleaning-ui/internal/catalog"
	"github.com/elpatron68/cleaning-ui/internal/config"
	"github.com/elpatron68/cleaning-ui/internal/ics"
	applog "github.com/elpatron68/cleaning-ui/internal/log"
	"github.com/elpatron68/cleaning-ui/internal/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is everything the subcommands share once config is loaded.
type app struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	gen     *ics.Generator
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	var listen string

	root := &cobra.Command{
		Use:           "cleaning-web",
		Short:         "Household cleaning checklist with calendar export",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default config.yaml)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cfgFile)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), a, resolveListenAddress(a.cfg, listen))
		},
	}
	serve.Flags().StringVarP(&listen, "listen", "l", "", "listen address, e.g. :8080")

	var out string
	var verify bool
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the calendar file",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cfgFile)
			if err != nil {
				return err
			}
			return runExport(a, out, verify, cmd.OutOrStdout())
		},
	}
	export.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	export.Flags().BoolVar(&verify, "verify", false, "parse the result back and report the event count")

	root.AddCommand(serve, export)
	// serve is the default
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())
	return root
}

func setup(cfgFile string) (*app, error) {
	cfg, err := config.Load(configPath(cfgFile))
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	applog.InitFromEnvFallback(cfg.Logging.Level, cfg.Logging.Format)

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("catalog error: %w", err)
	}
	settings, err := cfg.Calendar.Settings()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	return &app{cfg: cfg, catalog: cat, gen: ics.NewGenerator(settings, nil)}, nil
}

// configPath falls back to config.yaml in the working directory, then in
// the repository root when started from cmd/cleaning-web.
func configPath(flag string) string {
	if flag != "" {
		return flag
	}
	for _, p := range []string{"config.yaml", "../../config.yaml"} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// resolveListenAddress: --listen > CLEANWEB_LISTEN > config > :8080
func resolveListenAddress(cfg *config.Config, flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv("CLEANWEB_LISTEN"); env != "" {
		return env
	}
	if cfg != nil && cfg.Listen != "" {
		return cfg.Listen
	}
	return ":8080"
}

func userStore(cfg *config.Config) (*auth.InMemoryUserStore, error) {
	store := auth.NewInMemoryUserStore()
	for _, u := range cfg.Users {
		if u.Username == "" || u.PasswordHash == "" {
			continue
		}
		if err := store.AddUserHash(u.Username, []byte(u.PasswordHash)); err != nil {
			return nil, fmt.Errorf("invalid user in config: %w", err)
		}
	}
	return store, nil
}

func runServe(ctx context.Context, a *app, addr string) error {
	users, err := userStore(a.cfg)
	if err != nil {
		return err
	}
	srv := server.NewServerWithConfig(users, a.cfg, a.catalog, a.gen)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		applog.Infof("cleaning web UI listening on %s (%d tasks, auth=%t)", addr, a.catalog.Count(), users.Len() > 0)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	applog.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func runExport(a *app, out string, verify bool, stdout io.Writer) error {
	doc := a.gen.Generate(a.catalog)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}
	if verify {
		report, err := ics.Verify(bytes.NewReader(buf.Bytes()))
		if err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		applog.Infof("verified %q: %d events", report.Name, report.Events)
	}
	if out == "" || out == "-" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return err
	}
	applog.Infof("wrote %d events to %s", len(doc.Events), out)
	return nil
}
