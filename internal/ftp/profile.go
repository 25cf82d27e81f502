// Package ftp edits the FTP connection profile kept in the extension
// configuration. It does not open connections.
package ftp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/amytools-labs/amytools/internal/store"
)

// Configuration keys.
const (
	KeyHost      = "ftpHost"
	KeyPort      = "ftpPort"
	KeyUser      = "ftpUser"
	KeyRemoteDir = "ftpRemoteDir"
)

// DefaultPort is used when the configuration has no port.
const DefaultPort = 21

var ErrInvalidProfile = errors.New("invalid ftp profile")

// Profile is an FTP connection profile.
type Profile struct {
	Host      string
	Port      int
	User      string
	RemoteDir string
}

// Store is the part of the configuration store the dialog writes through.
type Store interface {
	Snapshot() store.Configuration
	Update(ctx context.Context, fn func(store.Configuration)) error
}

// FromConfig reads a profile from cfg. A missing or malformed port yields
// DefaultPort.
func FromConfig(cfg store.Configuration) Profile {
	p := Profile{
		Host:      cfg[KeyHost],
		Port:      DefaultPort,
		User:      cfg[KeyUser],
		RemoteDir: cfg[KeyRemoteDir],
	}
	if n, err := strconv.Atoi(cfg[KeyPort]); err == nil {
		p.Port = n
	}
	return p
}

// ParsePort parses a port number in 1-65535. Empty means DefaultPort.
func ParsePort(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultPort, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return 0, fmt.Errorf("%w: port must be a number between 1 and 65535, got %q", ErrInvalidProfile, s)
	}
	return n, nil
}

// Validate checks the profile.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Host) == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidProfile)
	}
	if strings.ContainsAny(p.Host, " /") {
		return fmt.Errorf("%w: host %q is not a host name", ErrInvalidProfile, p.Host)
	}
	if p.Port < 1 || p.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidProfile, p.Port)
	}
	return nil
}

// Address returns host:port.
func (p Profile) Address() string {
	return p.Host + ":" + strconv.Itoa(p.Port)
}

// Apply writes the profile into cfg.
func (p Profile) Apply(cfg store.Configuration) {
	cfg[KeyHost] = strings.TrimSpace(p.Host)
	cfg[KeyPort] = strconv.Itoa(p.Port)
	cfg[KeyUser] = strings.TrimSpace(p.User)
	remote := strings.TrimSpace(p.RemoteDir)
	if remote == "" {
		remote = "/"
	}
	cfg[KeyRemoteDir] = remote
}

// Save validates p and persists it in one write.
func Save(ctx context.Context, s Store, p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.Update(ctx, p.Apply); err != nil {
		return fmt.Errorf("saving ftp profile: %w", err)
	}
	return nil
}
