package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"dslsplit/internal/adapter/cache"
	"dslsplit/internal/adapter/fs"
	"dslsplit/internal/server"
	"dslsplit/internal/usecase"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	Long: `Train any out-of-date tables, then serve splits over HTTP.

With --watch the lexicon files are watched and the tables are retrained and
swapped in without a restart.

Examples:
  dslsplit serve
  dslsplit serve --addr :9001 --watch`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "retrain when lexicon files change")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if serveAddr != "" {
		cfg.Service.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	trainUC := usecase.NewTrainUseCase(st, cfg, GetRootDir())
	if _, err := trainUC.TrainAll(ctx, false); err != nil {
		return fmt.Errorf("training failed: %w", err)
	}
	tables, err := usecase.LoadTables(st, cfg, trainUC)
	if err != nil {
		return err
	}

	splitCache, err := cache.NewSplitCache(cfg.Service.CacheSize)
	if err != nil {
		return err
	}
	splitUC := usecase.NewSplitUseCase(cfg, tables, splitCache)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	srv := server.New(splitUC, cfg.Service, reg)

	if serveWatch {
		files, err := lexiconFiles(trainUC)
		if err != nil {
			return err
		}
		go func() {
			err := fs.Watch(ctx, files, 500*time.Millisecond, func(reason string) {
				retrain(ctx, trainUC, splitUC, reason)
			})
			if err != nil {
				slog.Error("watcher stopped", slog.String("err", err.Error()))
			}
		}()
	}

	return srv.ListenAndServe(ctx)
}

// lexiconFiles lists every file the tables are trained from.
func lexiconFiles(trainUC *usecase.TrainUseCase) ([]string, error) {
	files := []string{trainUC.CarefulSource().Path}
	for _, v := range GetConfig().VariantNames() {
		src, err := trainUC.VariantSource(v)
		if err != nil {
			return nil, err
		}
		paths, err := src.Paths()
		if err != nil {
			return nil, err
		}
		files = append(files, paths...)
	}
	return files, nil
}

var retrainMu sync.Mutex

// retrain rebuilds the stale tables and swaps the new snapshot in. The
// service keeps answering from the old snapshot when anything fails.
func retrain(ctx context.Context, trainUC *usecase.TrainUseCase, splitUC *usecase.SplitUseCase, reason string) {
	retrainMu.Lock()
	defer retrainMu.Unlock()

	slog.Info("lexicon changed, retraining", slog.String("file", reason))
	if _, err := trainUC.TrainAll(ctx, false); err != nil {
		slog.Error("retraining failed", slog.String("err", err.Error()))
		return
	}
	tables, err := usecase.LoadTables(trainUC.Store(), GetConfig(), trainUC)
	if err != nil {
		slog.Error("reloading tables failed", slog.String("err", err.Error()))
		return
	}
	splitUC.Swap(tables)
	slog.Info("tables swapped")
}
