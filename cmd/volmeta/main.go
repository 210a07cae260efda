package main

import (
	"fmt"
	"os"

	"github.com/sigreer/volmeta/internal/config"
	"github.com/sigreer/volmeta/internal/logger"
	"github.com/sigreer/volmeta/internal/version"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "volmeta",
	Short: "Mounted volume metadata resolution tool",
	Long: `Volmeta resolves metadata for mounted volumes: capacity, filesystem,
label, UUID, and remote origin. It reconciles the kernel mount table,
rich mount info, device tag caches, and the /dev/disk symlink farms
into one record per volume, tolerating partial source failures.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("volmeta " + version.Version)
	},
}

// loadConfig loads options for a command, exiting on a malformed file.
func loadConfig() *config.Options {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/volmeta/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	cobra.OnInitialize(func() {
		if debug, _ := rootCmd.PersistentFlags().GetBool("debug"); debug {
			logger.SetLevel("debug")
		}
	})

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(hiddenCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
