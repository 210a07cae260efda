package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sigreer/volmeta/internal/mounts"
	"github.com/sigreer/volmeta/internal/volume"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List mount points that resolution would cover",
	Run:   runList,
}

func init() {
	listCmd.Flags().Bool("json", false, "Output as JSON")
	listCmd.Flags().Bool("all", false, "Include system volumes")
}

func runList(cmd *cobra.Command, args []string) {
	jsonOut, _ := cmd.Flags().GetBool("json")
	all, _ := cmd.Flags().GetBool("all")

	cfg := loadConfig()
	if all {
		cfg.IncludeSystemVolumes = true
	}

	points, err := volume.New(cfg).ListAll()
	if err != nil {
		if err == mounts.ErrUnsupported {
			fmt.Fprintln(os.Stderr, "Error: mount enumeration is not supported on this platform")
		} else {
			fmt.Fprintf(os.Stderr, "Error listing mount points: %v\n", err)
		}
		os.Exit(1)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(points)
		return
	}

	if len(points) == 0 {
		fmt.Println("No mount points found.")
		return
	}

	fmt.Printf("%-40s %-12s %s\n", "MOUNT POINT", "FSTYPE", "FLAGS")
	fmt.Println(strings.Repeat("-", 65))
	for _, p := range points {
		flags := "-"
		if p.IsSystemVolume {
			flags = "system"
		}
		fmt.Printf("%-40s %-12s %s\n", p.MountPoint, p.FSType, flags)
	}
	fmt.Println(strings.Repeat("-", 65))
	fmt.Printf("Total: %d\n", len(points))
}
