package cli

import (
	"fmt"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"dslsplit/internal/adapter/ngram"
	"dslsplit/internal/usecase"
)

var (
	trainForce   bool
	trainVariant []string
)

var trainCmd = &cobra.Command{
	Use:   "train [careful|brute|all]",
	Short: "Train the probability tables",
	Long: `Train the affix table (careful) and the pentagram tables (brute) from
the configured lexicon files. Tables whose inputs are unchanged are skipped
unless --force is given.

Examples:
  dslsplit train                        # Train everything that is out of date
  dslsplit train careful --force        # Retrain the careful table
  dslsplit train brute -v yngrenydansk  # Train one variant`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"careful", "brute", "all"},
	RunE:      runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)
	trainCmd.Flags().BoolVarP(&trainForce, "force", "f", false, "retrain even when the table is up to date")
	trainCmd.Flags().StringSliceVarP(&trainVariant, "variant", "v", nil, "brute variants to train (default all configured)")
}

// newProgress returns a training progress callback drawing a progress bar.
func newProgress(label string) ngram.Progress {
	var (
		bar       *progressbar.ProgressBar
		mu        sync.Mutex
		startTime time.Time
	)
	return func(done, total int) {
		mu.Lock()
		defer mu.Unlock()

		if bar == nil {
			startTime = time.Now()
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription(fmt.Sprintf("[cyan]%s[reset]", label)),
				progressbar.OptionThrottle(100*time.Millisecond),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)

		if done > 0 && done < total {
			elapsed := time.Since(startTime)
			rate := float64(done) / elapsed.Seconds()
			if rate > 0 {
				eta := time.Duration(float64(total-done)/rate) * time.Second
				bar.Describe(fmt.Sprintf("[cyan]%s[reset] ETA: %s", label, formatDuration(eta)))
			}
		}
	}
}

func runTrain(cmd *cobra.Command, args []string) error {
	target := "all"
	if len(args) > 0 {
		target = args[0]
	}
	if target != "careful" && target != "brute" && target != "all" {
		return fmt.Errorf("unknown training target %q (want careful, brute or all)", target)
	}

	cfg := GetConfig()
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	trainUC := usecase.NewTrainUseCase(st, cfg, GetRootDir())
	ctx := cmd.Context()

	var results []*usecase.TrainResult
	if target == "careful" || target == "all" {
		r, err := trainUC.TrainCareful(ctx, trainForce, newProgress("Training careful"))
		if err != nil {
			return fmt.Errorf("training failed: %w", err)
		}
		results = append(results, r)
	}
	if target == "brute" || target == "all" {
		variants := trainVariant
		if len(variants) == 0 {
			variants = cfg.VariantNames()
		}
		for _, v := range variants {
			r, err := trainUC.TrainBrute(ctx, v, trainForce, newProgress("Training "+v))
			if err != nil {
				return fmt.Errorf("training %s failed: %w", v, err)
			}
			results = append(results, r)
		}
	}

	fmt.Printf("\nTraining complete:\n")
	for _, r := range results {
		if r.Skipped {
			fmt.Printf("  %-24s up to date\n", r.Key)
			continue
		}
		fmt.Printf("  %-24s %d words, %d n-grams in %s\n", r.Key, r.Words, r.Entries, formatDuration(r.Duration))
	}
	fmt.Printf("\nTables stored at: %s\n", cfg.StorePath(GetRootDir()))
	return nil
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
