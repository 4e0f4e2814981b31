package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"dslsplit/config"
	"dslsplit/internal/adapter/lexicon"
	"dslsplit/internal/adapter/store"
	"dslsplit/internal/usecase"
)

func main() {
	dir := flag.String("dir", ".", "Directory holding the config and the trained tables")
	gold := flag.String("gold", "evaluation_data.csv", "Gold segmentations (query;expected)")
	method := flag.String("method", "mixed", "careful, brute or mixed")
	variant := flag.String("variant", "", "Brute lexicon variant (default from config)")
	top := flag.Int("top", 1, "Number of splits considered per word")
	ignoreFuge := flag.Bool("ignore-fuge", false, "Treat \"+s+\" and \"s+\" as equal")
	size := flag.Int("size", 0, "Evaluate only the first N cases (0 for all)")
	negatives := flag.Bool("negatives", false, "Print false positives and false negatives")
	grid := flag.Bool("grid", false, "Run every method with top 1 and 3, with and without fuge folding")
	flag.Parse()

	cfg, err := config.LoadFromDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	cases, err := lexicon.LoadGold(*gold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading gold data: %v\n", err)
		os.Exit(1)
	}

	st, err := store.NewBoltStore(cfg.StorePath(*dir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening table store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	tables, err := usecase.LoadTables(st, cfg, usecase.NewTrainUseCase(st, cfg, *dir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tables: %v\n", err)
		os.Exit(1)
	}
	splitUC := usecase.NewSplitUseCase(cfg, tables, nil)

	runs := []usecase.EvalOptions{{
		Method:     *method,
		Variant:    *variant,
		TopN:       *top,
		IgnoreFuge: *ignoreFuge,
		Size:       *size,
	}}
	if *grid {
		runs = runs[:0]
		for _, m := range []string{"careful", "brute", "mixed"} {
			for _, n := range []int{1, 3} {
				for _, fold := range []bool{false, true} {
					runs = append(runs, usecase.EvalOptions{Method: m, Variant: *variant, TopN: n, IgnoreFuge: fold, Size: *size})
				}
			}
		}
	}

	for _, opts := range runs {
		report, err := usecase.Evaluate(context.Background(), splitUC, cases, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Evaluation error: %v\n", err)
			os.Exit(1)
		}
		printReport(report, *negatives)
	}
}

func printReport(r *usecase.EvalReport, negatives bool) {
	fmt.Println(strings.Repeat("=", 40))
	fmt.Printf("Method:      %s\n", r.Options.Method)
	fmt.Printf("Size:        %d\n", r.Options.Size)
	fmt.Printf("Top:         %d\n", r.Options.TopN)
	fmt.Printf("Ignore fuge: %t\n", r.Options.IgnoreFuge)
	fmt.Println(strings.Repeat("-", 40))

	if negatives {
		for _, m := range r.Misses {
			kind := "FN"
			if len(m.Actual) > 0 {
				kind = "FP"
			}
			fmt.Printf("%s %s: expected %s, got %v (method: %s)\n", kind, m.Query, m.Expected, m.Actual, m.Method)
		}
		fmt.Println(strings.Repeat("-", 40))
	}

	fmt.Printf("True positives: %d\n", r.TruePositives)
	fmt.Printf("True negatives: %d\n", r.TrueNegatives)
	fmt.Printf("Total:          %d\n", r.Total())
	fmt.Printf("Precision:      %.2f\n", r.Precision())
	fmt.Printf("Recall:         %.2f\n", r.Recall())
}
