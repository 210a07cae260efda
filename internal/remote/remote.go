// Package remote classifies a mount origin string (device spec or URI)
// into host, share, protocol, and user, independent of OS.
package remote

import "strings"

// Origin is the parsed remote location of a mount source.
type Origin struct {
	Host     string
	Share    string
	Protocol string
	User     string
}

// Parse recognizes three shapes, in precedence order:
//
//	protocol://host[/share]
//	//host[/share]
//	[user@]host:share
//
// A single leading slash is a local path, never a UNC spec. Trailing
// slashes on the share are left for the caller's normalization step.
func Parse(origin string) (*Origin, bool) {
	if origin == "" {
		return nil, false
	}

	if idx := strings.Index(origin, "://"); idx > 0 {
		o := &Origin{Protocol: origin[:idx]}
		rest := origin[idx+3:]
		o.User, rest = splitUser(rest)
		if slash := strings.IndexByte(rest, '/'); slash >= 0 {
			o.Host = rest[:slash]
			o.Share = rest[slash+1:]
		} else {
			o.Host = rest
		}
		if o.Host == "" {
			return nil, false
		}
		return o, true
	}

	if strings.HasPrefix(origin, "//") {
		rest := origin[2:]
		o := &Origin{}
		o.User, rest = splitUser(rest)
		if slash := strings.IndexByte(rest, '/'); slash >= 0 {
			o.Host = rest[:slash]
			o.Share = rest[slash+1:]
		} else {
			o.Host = rest
		}
		if o.Host == "" {
			return nil, false
		}
		return o, true
	}

	// Colon form: host:/share or user@host:share. A leading slash means a
	// local path, not a remote spec.
	if strings.HasPrefix(origin, "/") {
		return nil, false
	}
	if colon := strings.IndexByte(origin, ':'); colon > 0 {
		o := &Origin{}
		hostPart := origin[:colon]
		o.User, hostPart = splitUser(hostPart)
		if hostPart == "" {
			return nil, false
		}
		o.Host = hostPart
		o.Share = strings.TrimPrefix(origin[colon+1:], "/")
		return o, true
	}

	return nil, false
}

func splitUser(s string) (user, rest string) {
	if at := strings.IndexByte(s, '@'); at > 0 {
		// Only treat as user@host when the @ precedes any path separator.
		if slash := strings.IndexByte(s, '/'); slash < 0 || at < slash {
			return s[:at], s[at+1:]
		}
	}
	return "", s
}
