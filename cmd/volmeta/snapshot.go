package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sigreer/volmeta/internal/db"
	"github.com/sigreer/volmeta/internal/volume"
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Resolve all volumes and record the result",
	Long: `Resolve every eligible mount point and store the outcome in the
snapshot database. Failures are recorded as events alongside the
snapshot so degraded runs stay auditable.`,
	Run: runSnapshot,
}

func init() {
	snapshotCmd.Flags().Bool("all", false, "Include system volumes")
	snapshotCmd.Flags().String("db", "", "Database path (default is "+db.DefaultPath+")")
}

func openDB(cmd *cobra.Command) (*db.DB, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = loadConfig().DatabasePath
	}
	return db.New(path)
}

func runSnapshot(cmd *cobra.Command, args []string) {
	all, _ := cmd.Flags().GetBool("all")

	cfg := loadConfig()
	if all {
		cfg.IncludeSystemVolumes = true
	}

	results, err := volume.New(cfg).ResolveAll(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(results) == 0 {
		fmt.Println("No volumes resolved; nothing recorded.")
		return
	}

	database, err := openDB(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	id, err := database.RecordSnapshot(results)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording snapshot: %v\n", err)
		os.Exit(1)
	}

	failures := 0
	for _, m := range results {
		if m.OK {
			continue
		}
		failures++
		if err := database.RecordEvent(db.EventResolveFailed, m.MountPoint, m.Status); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record event for %s: %v\n", m.MountPoint, err)
		}
	}

	fmt.Printf("Snapshot %d recorded: %d volumes, %d failures\n", id, len(results), failures)
}
