package volume

import (
	"fmt"
	"strings"

	"github.com/sigreer/volmeta/internal/blkid"
	"github.com/sigreer/volmeta/internal/config"
	"github.com/sigreer/volmeta/internal/diskby"
	"github.com/sigreer/volmeta/internal/findmnt"
	"github.com/sigreer/volmeta/internal/logger"
	"github.com/sigreer/volmeta/internal/mounts"
	"github.com/sigreer/volmeta/internal/pathsec"
	"github.com/sigreer/volmeta/internal/remote"
)

// Resolver reconciles per-volume metadata records. The query functions
// are fields so tests can swap in failing or synthetic sources; New
// wires the real ones.
type Resolver struct {
	opts *config.Options

	stats func(canonical string) (Stats, error)
	rich  func(mountPoint string) (*findmnt.Info, error)
	tags  func(device string) (*blkid.Tags, error)
	list  func(opts *config.Options) ([]mounts.MountPoint, error)

	uuidDir  string
	labelDir string
}

// New returns a Resolver backed by the platform query sources.
func New(opts *config.Options) *Resolver {
	return &Resolver{
		opts:     opts,
		stats:    queryStats,
		rich:     findmnt.Query,
		tags:     queryTags,
		list:     mounts.List,
		uuidDir:  diskby.ByUUIDDir,
		labelDir: diskby.ByLabelDir,
	}
}

// queryTags acquires a call-scoped tag-cache handle, queries, and
// releases it. Concurrent resolutions each take their own handle.
func queryTags(device string) (*blkid.Tags, error) {
	c, err := blkid.Open()
	if err != nil {
		return nil, err
	}
	defer c.Release()
	return c.Tags(device)
}

// Resolve produces one reconciled record for a mount point. Enrichment
// failures degrade into the record's Status; only validation and the
// mandatory capacity query are fatal.
func (r *Resolver) Resolve(mountPoint, device string) (*Metadata, error) {
	if strings.TrimSpace(mountPoint) == "" {
		return nil, fmt.Errorf("%w: blank", ErrInvalidMountPoint)
	}

	canonical, err := pathsec.ValidateForRead(mountPoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMountPoint, err)
	}

	st, err := r.stats(canonical)
	if err != nil {
		return nil, err
	}

	meta := &Metadata{
		MountPoint: canonical,
		Size:       st.Size,
		Used:       st.Used,
		Available:  st.Available,
		OK:         true,
	}
	var warnings []string

	// === Merge from rich mount info ===
	if r.rich != nil {
		info, err := r.rich(canonical)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("rich info warning: %v", err))
		} else if info != nil {
			meta.FileSystem = info.FSType
			meta.MountFrom = info.Source
			if info.Label != nil {
				meta.Label = *info.Label
			}
			if info.UUID != nil {
				meta.UUID = *info.UUID
			}
			if device == "" && strings.HasPrefix(info.Source, "/dev/") {
				device = info.Source
			}
		}
	}

	// === Merge from device tags ===
	if device != "" && (meta.UUID == "" || meta.Label == "") && r.tags != nil {
		tags, err := r.tags(device)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("blkid warning: %v", err))
		} else {
			if meta.UUID == "" && tags.UUID != nil {
				meta.UUID = *tags.UUID
			}
			if meta.Label == "" && tags.Label != nil {
				meta.Label = *tags.Label
			}
			if meta.FileSystem == "" && tags.Type != nil {
				meta.FileSystem = *tags.Type
			}
		}
	}

	// === Fall back to the symlink farms ===
	if device != "" {
		if meta.UUID == "" {
			if name, ok := diskby.FindLinkNameTargeting(r.uuidDir, device); ok {
				meta.UUID = name
			}
		}
		if meta.Label == "" {
			if name, ok := diskby.FindLinkNameTargeting(r.labelDir, device); ok {
				meta.Label = name
			}
		}
	}

	r.classifyRemote(meta)

	if meta.UUID != "" {
		meta.UUID = normalizeUUID(meta.UUID)
	}
	meta.RemoteShare = strings.TrimRight(meta.RemoteShare, "/")
	if len(warnings) > 0 {
		meta.Status = strings.Join(warnings, "; ")
	}

	logger.Debugf("volume: resolved %s fs=%s remote=%t uuid=%s",
		meta.MountPoint, meta.FileSystem, meta.Remote, meta.UUID)
	return meta, nil
}

// classifyRemote settles locality. A recognized remote filesystem type
// wins; otherwise a remote-shaped origin string decides. Host and share
// always come from parsing the origin when one is available.
func (r *Resolver) classifyRemote(meta *Metadata) {
	origin, parsed := remote.Parse(meta.MountFrom)

	if remoteFSTypes[meta.FileSystem] {
		meta.Remote = true
	} else if parsed {
		meta.Remote = true
	}

	if !meta.Remote {
		if meta.URI == "" {
			meta.URI = "file://" + meta.MountPoint
		}
		return
	}

	if parsed {
		meta.RemoteHost = origin.Host
		meta.RemoteShare = origin.Share
		meta.RemoteUser = origin.User
	}
	if meta.URI == "" && meta.RemoteHost != "" {
		scheme := uriScheme(meta.FileSystem)
		if parsed && origin.Protocol != "" {
			scheme = origin.Protocol
		}
		meta.URI = scheme + "://" + meta.RemoteHost + "/" + strings.TrimRight(meta.RemoteShare, "/")
	}
}

func uriScheme(fsType string) string {
	switch fsType {
	case "cifs", "smb", "smbfs":
		return "smb"
	case "nfs", "nfs4":
		return "nfs"
	case "fuse.sshfs":
		return "sftp"
	case "davfs":
		return "dav"
	default:
		if fsType != "" {
			return fsType
		}
		return "file"
	}
}
