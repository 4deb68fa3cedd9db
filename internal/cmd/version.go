package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/shootproof/shootproof-cli/internal/api"
)

// version is set at build time via ldflags
var version = "dev"

// canonicalVersion returns version as canonical semver without the leading
// "v", or "" for development builds.
func canonicalVersion() string {
	v := strings.TrimSpace(version)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return strings.TrimPrefix(semver.Canonical(v), "v")
}

func userAgent() string {
	if v := canonicalVersion(); v != "" {
		return "shootproof-cli/" + v
	}
	return "shootproof-cli/" + version
}

// wrapperVersion is the X-WRAPPER value: "go-<version>" for release builds.
func wrapperVersion() string {
	if v := canonicalVersion(); v != "" {
		return "go-" + v
	}
	return api.DefaultWrapper
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Print version information",
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{
					"version":    version,
					"user_agent": userAgent(),
					"wrapper":    wrapperVersion(),
				})
			}
			printAction(cmd, "shootproof-cli version %s", version)
			return nil
		}),
	}
}
