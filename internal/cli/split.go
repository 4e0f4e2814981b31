package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dslsplit/internal/adapter/cache"
	"dslsplit/internal/domain"
	"dslsplit/internal/usecase"
)

var (
	splitMethod  string
	splitVariant string
	splitLang    string
	splitJSON    bool
	splitText    bool
)

var splitCmd = &cobra.Command{
	Use:   "split <word>...",
	Short: "Split compound words",
	Long: `Split one or more compound words with the trained tables.

Examples:
  dslsplit split operakoncert
  dslsplit split -m brute -v yngrenydansk badeand
  dslsplit split --text "Operakoncerten i badeanden" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)
	splitCmd.Flags().StringVarP(&splitMethod, "method", "m", "", "careful, brute or mixed (default from config)")
	splitCmd.Flags().StringVarP(&splitVariant, "variant", "v", "", "brute lexicon variant (default from config)")
	splitCmd.Flags().StringVarP(&splitLang, "lang", "l", "", "language (default from config)")
	splitCmd.Flags().BoolVar(&splitJSON, "json", false, "output as JSON")
	splitCmd.Flags().BoolVar(&splitText, "text", false, "treat the arguments as running text")
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	trainUC := usecase.NewTrainUseCase(st, cfg, GetRootDir())
	tables, err := usecase.LoadTables(st, cfg, trainUC)
	if err != nil {
		return err
	}
	splitCache, err := cache.NewSplitCache(cfg.Service.CacheSize)
	if err != nil {
		return err
	}
	splitUC := usecase.NewSplitUseCase(cfg, tables, splitCache)

	var responses []*domain.SplitResponse
	if splitText {
		responses, err = splitUC.SplitText(cmd.Context(), usecase.TextRequest{
			Text:     strings.Join(args, " "),
			Method:   splitMethod,
			Variant:  splitVariant,
			Language: splitLang,
		})
		if err != nil {
			return err
		}
	} else {
		for _, word := range args {
			resp, err := splitUC.Split(cmd.Context(), usecase.SplitRequest{
				Word:     word,
				Method:   splitMethod,
				Variant:  splitVariant,
				Language: splitLang,
			})
			if err != nil {
				return err
			}
			responses = append(responses, resp)
		}
	}

	if splitJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(responses)
	}

	for _, resp := range responses {
		fmt.Printf("%s (%s)\n", resp.Word, resp.Method)
		if len(resp.Splits) == 0 {
			fmt.Println("  no split")
			continue
		}
		for i, s := range resp.Splits {
			fmt.Printf("  %d. %-32s %.6g\n", i+1, usecase.FormatSplit(s), s.Score)
		}
	}
	return nil
}
