package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/sigreer/volmeta/internal/volume"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <mount-point>",
	Short: "Resolve metadata for one mount point",
	Args:  cobra.ExactArgs(1),
	Run:   runGet,
}

func init() {
	getCmd.Flags().Bool("json", false, "Output as JSON")
	getCmd.Flags().String("device", "", "Device hint (e.g. /dev/sda1)")
}

func runGet(cmd *cobra.Command, args []string) {
	jsonOut, _ := cmd.Flags().GetBool("json")
	device, _ := cmd.Flags().GetString("device")

	cfg := loadConfig()
	if device == "" {
		device = cfg.Device
	}

	meta, err := volume.New(cfg).Resolve(args[0], device)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving %s: %v\n", args[0], err)
		os.Exit(1)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(meta)
		return
	}

	printMetadata(meta)
}

func printMetadata(m *volume.Metadata) {
	fmt.Printf("%-14s %s\n", "Mount point:", m.MountPoint)
	fmt.Printf("%-14s %s\n", "Filesystem:", orDash(m.FileSystem))
	fmt.Printf("%-14s %s\n", "Label:", orDash(m.Label))
	fmt.Printf("%-14s %s\n", "UUID:", orDash(m.UUID))
	fmt.Printf("%-14s %s (%d bytes)\n", "Size:", humanize.IBytes(m.Size), m.Size)
	fmt.Printf("%-14s %s\n", "Used:", humanize.IBytes(m.Used))
	fmt.Printf("%-14s %s\n", "Available:", humanize.IBytes(m.Available))
	fmt.Printf("%-14s %s\n", "Mounted from:", orDash(m.MountFrom))
	fmt.Printf("%-14s %s\n", "URI:", orDash(m.URI))
	if m.Remote {
		fmt.Printf("%-14s %s\n", "Remote host:", orDash(m.RemoteHost))
		fmt.Printf("%-14s %s\n", "Remote share:", orDash(m.RemoteShare))
		if m.RemoteUser != "" {
			fmt.Printf("%-14s %s\n", "Remote user:", m.RemoteUser)
		}
	}
	if m.Status != "" {
		fmt.Printf("%-14s %s\n", "Status:", m.Status)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
