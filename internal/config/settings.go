package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultProfile is used when no profile is selected.
const DefaultProfile = "default"

const envConfigPath = "SP_CONFIG"

// Profile holds the OAuth application settings of one ShootProof account.
type Profile struct {
	ClientID    string `toml:"client_id"`
	RedirectURI string `toml:"redirect_uri"`
	Scope       string `toml:"scope"`
	BaseURL     string `toml:"base_url,omitempty"`
}

// Settings is the content of config.toml.
type Settings struct {
	CurrentProfile string             `toml:"current_profile,omitempty"`
	Profiles       map[string]Profile `toml:"profiles,omitempty"`
}

// ErrProfileNotFound is returned for a profile missing from the settings file.
var ErrProfileNotFound = errors.New("profile not configured - run 'sp auth init' first")

// Path returns the settings file location (SP_CONFIG overrides the default).
func Path() string {
	if p := strings.TrimSpace(os.Getenv(envConfigPath)); p != "" {
		return p
	}
	return filepath.Join(configHome(), "config.toml")
}

// LoadSettings reads the settings file. A missing file yields empty settings.
func LoadSettings() (*Settings, error) {
	path := Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Settings{Profiles: map[string]Profile{}}, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if s.Profiles == nil {
		s.Profiles = map[string]Profile{}
	}
	return &s, nil
}

// Save writes the settings file with owner-only permissions.
func (s *Settings) Save() error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Current returns the selected profile name.
func (s *Settings) Current() string {
	if s.CurrentProfile == "" {
		return DefaultProfile
	}
	return s.CurrentProfile
}

// Profile returns the named profile, or the current one when name is empty.
func (s *Settings) Profile(name string) (Profile, error) {
	if name == "" {
		name = s.Current()
	}
	p, ok := s.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w (profile %q)", ErrProfileNotFound, name)
	}
	return p, nil
}

// SetProfile stores p under name and makes it current.
func (s *Settings) SetProfile(name string, p Profile) {
	if name == "" {
		name = DefaultProfile
	}
	if s.Profiles == nil {
		s.Profiles = map[string]Profile{}
	}
	s.Profiles[name] = p
	s.CurrentProfile = name
}

// RemoveProfile deletes a profile; the current profile falls back to the first remaining one.
func (s *Settings) RemoveProfile(name string) {
	delete(s.Profiles, name)
	if s.CurrentProfile != name {
		return
	}
	s.CurrentProfile = ""
	if names := s.ProfileNames(); len(names) > 0 {
		s.CurrentProfile = names[0]
	}
}

// ProfileNames returns the configured profile names in sorted order.
func (s *Settings) ProfileNames() []string {
	names := make([]string, 0, len(s.Profiles))
	for name := range s.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
