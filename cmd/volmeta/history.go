package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded snapshots and events",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded snapshots",
	Run:   runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <snapshot-id>",
	Short: "Show the volumes of one snapshot",
	Args:  cobra.ExactArgs(1),
	Run:   runHistoryShow,
}

var historyEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent resolution events",
	Run:   runHistoryEvents,
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyEventsCmd)

	historyCmd.PersistentFlags().String("db", "", "Database path")

	historyListCmd.Flags().Int("limit", 20, "Maximum number of snapshots to show")
	historyListCmd.Flags().Bool("json", false, "Output as JSON")

	historyShowCmd.Flags().Bool("json", false, "Output as JSON")

	historyEventsCmd.Flags().Int("limit", 50, "Maximum number of events to show")
	historyEventsCmd.Flags().Bool("json", false, "Output as JSON")
}

func runHistoryList(cmd *cobra.Command, args []string) {
	database, err := openDB(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	snaps, err := database.ListSnapshots(limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error querying snapshots: %v\n", err)
		os.Exit(1)
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(snaps)
		return
	}

	if len(snaps) == 0 {
		fmt.Println("No snapshots recorded. Run 'volmeta snapshot' to create one.")
		return
	}

	fmt.Printf("%-8s %-25s %-18s %-8s %s\n", "ID", "TAKEN", "HOST", "VOLUMES", "FAILURES")
	fmt.Println(strings.Repeat("-", 70))
	for _, s := range snaps {
		fmt.Printf("%-8d %-25s %-18s %-8d %d\n",
			s.ID, s.TakenAt.Format("2006-01-02 15:04:05"), orDash(s.Hostname), s.VolumeCount, s.FailureCount)
	}
}

func runHistoryShow(cmd *cobra.Command, args []string) {
	var id int64
	if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid snapshot ID %q\n", args[0])
		os.Exit(1)
	}

	database, err := openDB(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	vols, err := database.GetSnapshotVolumes(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error querying snapshot %d: %v\n", id, err)
		os.Exit(1)
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(vols)
		return
	}

	if len(vols) == 0 {
		fmt.Printf("No volumes recorded for snapshot %d.\n", id)
		return
	}

	fmt.Printf("%-32s %-8s %-10s %-10s %s\n", "MOUNT POINT", "FSTYPE", "SIZE", "AVAIL", "STATUS")
	fmt.Println(strings.Repeat("-", 80))
	for _, v := range vols {
		size, avail := "-", "-"
		if v.OK {
			size = humanize.IBytes(uint64(v.SizeBytes))
			avail = humanize.IBytes(uint64(v.AvailBytes))
		}
		status := "ok"
		if !v.OK {
			status = v.Status
		} else if v.Status != "" {
			status = "degraded"
		}
		fmt.Printf("%-32s %-8s %-10s %-10s %s\n",
			v.MountPoint, orDash(v.FileSystem), size, avail, status)
	}
}

func runHistoryEvents(cmd *cobra.Command, args []string) {
	database, err := openDB(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	events, err := database.ListEvents(limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error querying events: %v\n", err)
		os.Exit(1)
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(events)
		return
	}

	if len(events) == 0 {
		fmt.Println("No events recorded.")
		return
	}

	fmt.Printf("%-20s %-16s %-32s %s\n", "TIME", "TYPE", "MOUNT POINT", "DETAILS")
	fmt.Println(strings.Repeat("-", 95))
	for _, e := range events {
		fmt.Printf("%-20s %-16s %-32s %s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.EventType, orDash(e.MountPoint), e.Details)
	}
}
