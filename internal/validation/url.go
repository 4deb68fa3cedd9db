// Package validation checks user-supplied URLs and contact fields before they
// are saved or sent.
package validation

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// APIBaseURL validates an API or auth base URL. It must be absolute and use
// https, except on loopback hosts where http is accepted.
func APIBaseURL(rawURL string) error {
	u, err := parseAbsolute(rawURL)
	if err != nil {
		return err
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("base URL must not carry a query or fragment")
	}
	if isCloudMetadata(u.Hostname()) {
		return fmt.Errorf("cloud metadata endpoints are not allowed")
	}
	if u.Scheme == "http" && !IsLoopback(u.Hostname()) {
		return fmt.Errorf("base URL must use https (http is only accepted for loopback hosts)")
	}
	return nil
}

// RedirectURI validates an OAuth redirect URI. Plain http is only accepted on
// loopback hosts, which is also where sp can receive the code itself.
func RedirectURI(rawURL string) error {
	u, err := parseAbsolute(rawURL)
	if err != nil {
		return err
	}
	if u.Fragment != "" {
		return fmt.Errorf("redirect URI must not carry a fragment")
	}
	if u.Scheme == "http" && !IsLoopback(u.Hostname()) {
		return fmt.Errorf("redirect URI must use https unless it points to 127.0.0.1, ::1 or localhost")
	}
	return nil
}

func parseAbsolute(rawURL string) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL format: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL scheme: only http and https are allowed, got %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("URL must contain a hostname")
	}
	return u, nil
}

// IsLoopback reports whether hostname names the local machine.
func IsLoopback(hostname string) bool {
	hostname = strings.ToLower(strings.TrimSuffix(hostname, "."))
	if hostname == "localhost" || strings.HasSuffix(hostname, ".localhost") {
		return true
	}
	ip := net.ParseIP(hostname)
	return ip != nil && ip.IsLoopback()
}

func isCloudMetadata(hostname string) bool {
	switch strings.ToLower(hostname) {
	case "169.254.169.254", "metadata.google.internal", "metadata", "fd00:ec2::254":
		return true
	}
	return false
}
