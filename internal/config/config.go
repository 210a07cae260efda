package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Options is the configuration surface for enumeration and resolution.
// It is read-only once loaded; resolutions never mutate it.
type Options struct {
	// TimeoutMs bounds each per-volume resolution inside a batch.
	TimeoutMs int `yaml:"timeout_ms"`

	// Device is an identity-lookup hint for single-volume resolution.
	Device string `yaml:"device,omitempty"`

	IncludeSystemVolumes bool `yaml:"include_system_volumes"`

	// MaxConcurrency caps the resolution fan-out. Zero means the
	// available hardware parallelism.
	MaxConcurrency int `yaml:"max_concurrency"`

	// MountTablePaths are ordered candidates; the first readable one wins.
	MountTablePaths []string `yaml:"mount_table_paths"`

	// SystemFSTypes and SystemPathPatterns classify system volumes.
	SystemFSTypes      []string `yaml:"system_fs_types"`
	SystemPathPatterns []string `yaml:"system_path_patterns"`

	ExcludedMountPointGlobs []string `yaml:"excluded_mount_point_globs"`

	// DatabasePath is where the snapshot/history sink lives.
	DatabasePath string `yaml:"database_path,omitempty"`
}

var defaultOptions = Options{
	TimeoutMs: 5000,
	MountTablePaths: []string{
		"/proc/self/mounts",
		"/proc/mounts",
		"/etc/mtab",
	},
	SystemFSTypes: []string{
		"autofs", "binfmt_misc", "bpf", "cgroup", "cgroup2", "configfs",
		"debugfs", "devpts", "devtmpfs", "efivarfs", "fusectl", "hugetlbfs",
		"mqueue", "nfsd", "overlay", "proc", "pstore", "ramfs", "rpc_pipefs",
		"securityfs", "selinuxfs", "squashfs", "sysfs", "tracefs",
	},
	SystemPathPatterns: []string{
		"/proc/**", "/sys/**", "/dev/**", "/run/**", "/snap/**", "/boot/efi",
	},
}

// Default returns a copy of the baseline options.
func Default() *Options {
	opts := defaultOptions
	return &opts
}

// Load reads options from a YAML config file. With an empty path the
// default locations are tried; a missing file just means defaults.
func Load(path string) (*Options, error) {
	if path == "" {
		candidates := []string{
			"/etc/volmeta/config.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/volmeta/config.yaml"),
			"config.yaml",
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	opts := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, opts); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyDefaults(opts)
	return opts, nil
}

func applyDefaults(opts *Options) {
	if opts.TimeoutMs <= 0 {
		opts.TimeoutMs = defaultOptions.TimeoutMs
	}
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = runtime.NumCPU()
	}
	if len(opts.MountTablePaths) == 0 {
		opts.MountTablePaths = defaultOptions.MountTablePaths
	}
	if len(opts.SystemFSTypes) == 0 {
		opts.SystemFSTypes = defaultOptions.SystemFSTypes
	}
	if len(opts.SystemPathPatterns) == 0 {
		opts.SystemPathPatterns = defaultOptions.SystemPathPatterns
	}
}
