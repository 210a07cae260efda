package db

import (
	"fmt"
	"os"
	"time"

	"github.com/sigreer/volmeta/internal/volume"
)

// Snapshot represents one recorded resolution run
type Snapshot struct {
	ID           int64
	Hostname     string
	VolumeCount  int
	FailureCount int
	TakenAt      time.Time
}

// SnapshotVolume represents one volume record within a snapshot
type SnapshotVolume struct {
	ID          int64
	SnapshotID  int64
	MountPoint  string
	FileSystem  string
	Label       string
	UUID        string
	SizeBytes   int64
	UsedBytes   int64
	AvailBytes  int64
	MountFrom   string
	URI         string
	Remote      bool
	RemoteHost  string
	RemoteShare string
	OK          bool
	Status      string
}

// RecordSnapshot stores a full resolution run and returns the snapshot ID
func (d *DB) RecordSnapshot(volumes []volume.Metadata) (int64, error) {
	hostname, _ := os.Hostname()

	failures := 0
	for _, v := range volumes {
		if !v.OK {
			failures++
		}
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}

	res, err := tx.Exec(`
		INSERT INTO snapshots (hostname, volume_count, failure_count)
		VALUES (?, ?, ?)
	`, hostname, len(volumes), failures)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to record snapshot: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	for _, v := range volumes {
		_, err := tx.Exec(`
			INSERT INTO snapshot_volumes (
				snapshot_id, mount_point, filesystem, label, uuid,
				size_bytes, used_bytes, available_bytes,
				mount_from, uri, remote, remote_host, remote_share, ok, status
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, v.MountPoint, v.FileSystem, v.Label, v.UUID,
			int64(v.Size), int64(v.Used), int64(v.Available),
			v.MountFrom, v.URI, v.Remote, v.RemoteHost, v.RemoteShare, v.OK, v.Status)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to record volume %s: %w", v.MountPoint, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return id, nil
}

// ListSnapshots returns the most recent snapshots, newest first
func (d *DB) ListSnapshots(limit int) ([]*Snapshot, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := d.conn.Query(`
		SELECT id, COALESCE(hostname, ''), volume_count, failure_count, taken_at
		FROM snapshots
		ORDER BY taken_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []*Snapshot
	for rows.Next() {
		s := &Snapshot{}
		if err := rows.Scan(&s.ID, &s.Hostname, &s.VolumeCount, &s.FailureCount, &s.TakenAt); err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}

// GetSnapshotVolumes returns the volume records belonging to a snapshot
func (d *DB) GetSnapshotVolumes(snapshotID int64) ([]*SnapshotVolume, error) {
	rows, err := d.conn.Query(`
		SELECT id, snapshot_id, mount_point,
		       COALESCE(filesystem, ''), COALESCE(label, ''), COALESCE(uuid, ''),
		       COALESCE(size_bytes, 0), COALESCE(used_bytes, 0), COALESCE(available_bytes, 0),
		       COALESCE(mount_from, ''), COALESCE(uri, ''), remote,
		       COALESCE(remote_host, ''), COALESCE(remote_share, ''), ok, COALESCE(status, '')
		FROM snapshot_volumes
		WHERE snapshot_id = ?
		ORDER BY mount_point
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot volumes: %w", err)
	}
	defer rows.Close()

	var vols []*SnapshotVolume
	for rows.Next() {
		v := &SnapshotVolume{}
		if err := rows.Scan(&v.ID, &v.SnapshotID, &v.MountPoint,
			&v.FileSystem, &v.Label, &v.UUID,
			&v.SizeBytes, &v.UsedBytes, &v.AvailBytes,
			&v.MountFrom, &v.URI, &v.Remote,
			&v.RemoteHost, &v.RemoteShare, &v.OK, &v.Status); err != nil {
			return nil, err
		}
		vols = append(vols, v)
	}
	return vols, rows.Err()
}
