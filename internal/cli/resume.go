package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Download your stored resume",
		Run:   runResume,
	}
	cmd.Flags().StringP("out", "o", ".", "Output directory")
	RootCmd.AddCommand(cmd)
}

func runResume(cmd *cobra.Command, _ []string) {
	st, client := loadStore(cmd)
	rec, _ := st.Current()

	data, name, err := client.DownloadResume(cmd.Context(), rec.Resume)
	if err != nil {
		exitErr("download resume", err)
	}

	outDir, _ := cmd.Flags().GetString("out")
	dest := filepath.Join(outDir, name)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		exitErr("write file", err)
	}
	fmt.Printf("wrote %s (%d bytes)\n", dest, len(data))
}
