// Package volume resolves reconciled metadata records for mounted
// volumes. Each record is built fresh per call from several individually
// unreliable sources merged under an explicit precedence: statfs on an
// open handle for capacity, rich mount info for origin and labels, the
// device tag cache for identity, and the by-uuid/by-label symlink farms
// as a last resort.
package volume

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidMountPoint marks mount points rejected before resolution.
var ErrInvalidMountPoint = errors.New("invalid mount point")

// ErrOverflow marks size arithmetic that would wrap around. Treated as
// fatal for the volume rather than silently truncated.
var ErrOverflow = errors.New("volume size calculation would overflow")

// Metadata is one reconciled volume record. It is never mutated after
// being returned; the caller owns it alone.
type Metadata struct {
	MountPoint  string `json:"mountPoint"`
	FileSystem  string `json:"fileSystem,omitempty"`
	Label       string `json:"label,omitempty"`
	UUID        string `json:"uuid,omitempty"`
	Size        uint64 `json:"size"`
	Used        uint64 `json:"used"`
	Available   uint64 `json:"available"`
	MountFrom   string `json:"mountFrom,omitempty"`
	URI         string `json:"uri,omitempty"`
	Remote      bool   `json:"remote"`
	RemoteHost  string `json:"remoteHost,omitempty"`
	RemoteShare string `json:"remoteShare,omitempty"`
	RemoteUser  string `json:"remoteUser,omitempty"`
	OK          bool   `json:"ok"`
	Status      string `json:"status,omitempty"`
}

// Stats is the result of the mandatory capacity query.
type Stats struct {
	Size      uint64
	Used      uint64
	Available uint64
}

// remoteFSTypes is the set of filesystem types that imply a network
// mount regardless of what the origin string looks like.
var remoteFSTypes = map[string]bool{
	"nfs":        true,
	"nfs4":       true,
	"cifs":       true,
	"smb":        true,
	"smbfs":      true,
	"ncpfs":      true,
	"afs":        true,
	"davfs":      true,
	"fuse.sshfs": true,
	"glusterfs":  true,
}

// normalizeUUID settles identity strings on a single casing per format:
// RFC 4122 UUIDs collapse to the canonical lowercase form, short
// volume-serial forms (FAT and friends) keep their conventional
// uppercase.
func normalizeUUID(s string) string {
	if u, err := uuid.Parse(s); err == nil {
		return u.String()
	}
	return strings.ToUpper(s)
}
