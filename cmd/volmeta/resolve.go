package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sigreer/volmeta/internal/volume"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve metadata for all mounted volumes",
	Long: `Resolve metadata for every eligible mount point concurrently.

Per-volume failures never abort the run: a volume whose sources fail
gets a record with its status set to the failure, and the rest resolve
normally.`,
	Run: runResolve,
}

func init() {
	resolveCmd.Flags().Bool("json", false, "Output as JSON")
	resolveCmd.Flags().Bool("all", false, "Include system volumes")
	resolveCmd.Flags().Int("timeout", 0, "Per-volume timeout in milliseconds (overrides config)")
}

func runResolve(cmd *cobra.Command, args []string) {
	jsonOut, _ := cmd.Flags().GetBool("json")
	all, _ := cmd.Flags().GetBool("all")
	timeout, _ := cmd.Flags().GetInt("timeout")

	cfg := loadConfig()
	if all {
		cfg.IncludeSystemVolumes = true
	}
	if timeout > 0 {
		cfg.TimeoutMs = timeout
	}

	results, err := volume.New(cfg).ResolveAll(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(results)
		return
	}

	if len(results) == 0 {
		fmt.Println("No volumes resolved.")
		return
	}

	printResults(results)
}

func printResults(results []volume.Metadata) {
	fmt.Printf("%-32s %-8s %-10s %-10s %-10s %s\n", "MOUNT POINT", "FSTYPE", "SIZE", "AVAIL", "REMOTE", "STATUS")
	fmt.Println(strings.Repeat("-", 90))

	ok := 0
	for _, m := range results {
		if m.OK {
			ok++
		}

		mp := m.MountPoint
		if len(mp) > 32 {
			mp = "..." + mp[len(mp)-29:]
		}

		size, avail := "-", "-"
		if m.OK {
			size = humanize.IBytes(m.Size)
			avail = humanize.IBytes(m.Available)
		}

		remoteCol := "-"
		if m.Remote {
			remoteCol = m.RemoteHost
		}

		status := "ok"
		if !m.OK {
			status = m.Status
		} else if m.Status != "" {
			status = "degraded"
		}

		fmt.Printf("%-32s %-8s %-10s %-10s %-10s %s\n",
			mp, orDash(m.FileSystem), size, avail, remoteCol, status)
	}

	fmt.Println(strings.Repeat("-", 90))
	fmt.Printf("Resolved: %d | Failed: %d\n", ok, len(results)-ok)
}
