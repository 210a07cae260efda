// Package findmnt wraps findmnt(8) as the optional rich mount-info
// source. Everything here is best-effort: when the binary is missing or
// misbehaves the caller records a warning and carries on.
package findmnt

import (
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/sigreer/volmeta/internal/logger"
)

// Info is the rich metadata findmnt reports for one mount.
type Info struct {
	Target  string
	Source  string
	FSType  string
	Label   *string
	UUID    *string
	PartLbl *string
}

type findmntOutput struct {
	Filesystems []struct {
		Target  string  `json:"target"`
		Source  string  `json:"source"`
		FSType  string  `json:"fstype"`
		Label   *string `json:"label"`
		UUID    *string `json:"uuid"`
		PartLbl *string `json:"partlabel"`
	} `json:"filesystems"`
}

const columns = "TARGET,SOURCE,FSTYPE,LABEL,UUID,PARTLABEL"

// Query returns rich info for a single mount point.
func Query(mountPoint string) (*Info, error) {
	out, err := exec.Command("findmnt", "-J", "-o", columns, "--mountpoint", mountPoint).Output()
	if err != nil {
		return nil, fmt.Errorf("findmnt %s: %w", mountPoint, err)
	}

	var decoded findmntOutput
	if err := json.Unmarshal(out, &decoded); err != nil {
		return nil, fmt.Errorf("findmnt %s: decode: %w", mountPoint, err)
	}
	if len(decoded.Filesystems) == 0 {
		return nil, fmt.Errorf("findmnt %s: no match", mountPoint)
	}

	fs := decoded.Filesystems[0]
	info := &Info{
		Target:  fs.Target,
		Source:  fs.Source,
		FSType:  fs.FSType,
		Label:   fs.Label,
		UUID:    fs.UUID,
		PartLbl: fs.PartLbl,
	}
	logger.Debugf("findmnt: %s source=%s fstype=%s", info.Target, info.Source, info.FSType)
	return info, nil
}

// List returns rich info for every mount findmnt knows about.
func List() ([]Info, error) {
	out, err := exec.Command("findmnt", "-J", "-l", "-o", columns).Output()
	if err != nil {
		return nil, fmt.Errorf("findmnt list: %w", err)
	}

	var decoded findmntOutput
	if err := json.Unmarshal(out, &decoded); err != nil {
		return nil, fmt.Errorf("findmnt list: decode: %w", err)
	}

	infos := make([]Info, 0, len(decoded.Filesystems))
	for _, fs := range decoded.Filesystems {
		infos = append(infos, Info{
			Target:  fs.Target,
			Source:  fs.Source,
			FSType:  fs.FSType,
			Label:   fs.Label,
			UUID:    fs.UUID,
			PartLbl: fs.PartLbl,
		})
	}
	return infos, nil
}
