package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print your current profile record",
		Run:   runShow,
	}
	cmd.Flags().Bool("completeness", false, "Print only the completeness score")
	RootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, _ []string) {
	st, _ := loadStore(cmd)
	rec, _ := st.Current()

	if only, _ := cmd.Flags().GetBool("completeness"); only {
		fmt.Printf("%d%%\n", st.Completeness())
		return
	}
	printJSON(rec)
	fmt.Printf("completeness: %d%%\n", st.Completeness())
}
