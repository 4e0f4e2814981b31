package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the trained tables",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	version, err := st.SchemaVersion()
	if err != nil {
		return err
	}
	infos, err := st.ListTrained()
	if err != nil {
		return err
	}

	fmt.Printf("Table store: %s (schema v%d)\n", GetConfig().StorePath(GetRootDir()), version)
	if len(infos) == 0 {
		fmt.Println("No tables trained. Run 'dslsplit train' first.")
		return nil
	}
	for _, info := range infos {
		trained := time.Unix(info.TrainedAt, 0).Format(time.DateTime)
		fmt.Printf("  %-24s %8d words %10d n-grams  %s  %s\n", info.Key, info.Words, info.Entries, info.Fingerprint, trained)
	}
	return nil
}
