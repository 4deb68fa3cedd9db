package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shootproof/shootproof-cli/internal/api"
	"github.com/shootproof/shootproof-cli/internal/config"
	"github.com/shootproof/shootproof-cli/internal/resolve"
)

// maxBodyPreview bounds how much of an API error body is echoed to the terminal.
const maxBodyPreview = 500

// HandleError processes an error and returns a user-friendly message with suggestions
func HandleError(err error) string {
	if err == nil {
		return ""
	}

	var msg strings.Builder

	var apiErr *api.APIError
	var valErr *api.ValidationError
	var authErr *api.AuthExchangeError
	var ambiguous *resolve.AmbiguousError

	switch {
	case errors.Is(err, config.ErrNotLoggedIn):
		msg.WriteString("Not logged in.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Run: sp auth init --client-id ID --redirect-uri URI --scope SCOPE\n")
		msg.WriteString("  - Then: sp auth login\n")
		msg.WriteString("  - Or export SP_ACCESS_TOKEN\n")

	case errors.Is(err, config.ErrProfileNotFound):
		fmt.Fprintf(&msg, "Error: %s\n", err.Error())

	case errors.As(err, &authErr):
		fmt.Fprintf(&msg, "Authentication failed: %s\n\n", authErr.Error())
		msg.WriteString("Suggestions:\n")
		if authErr.Refresh {
			msg.WriteString("  - The refresh token may have been revoked; run: sp auth login\n")
		} else {
			msg.WriteString("  - Authorization codes are single use; start again with: sp auth login\n")
			msg.WriteString("  - Check the client ID and redirect URI: sp auth status\n")
		}

	case errors.As(err, &valErr):
		fmt.Fprintf(&msg, "Error: %s\n", valErr.Error())

	case errors.As(err, &apiErr):
		fmt.Fprintf(&msg, "%s\n", apiErr.Error())
		if body := strings.TrimSpace(string(apiErr.Body)); body != "" {
			if len(body) > maxBodyPreview {
				body = body[:maxBodyPreview] + "..."
			}
			fmt.Fprintf(&msg, "%s\n", body)
		}
		msg.WriteString("\n")
		msg.WriteString(suggestionsForStatusCode(apiErr.StatusCode))

	case errors.As(err, &ambiguous):
		fmt.Fprintf(&msg, "Error: %s\n\n", ambiguous.Error())
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Pass the numeric ID instead of a name\n")

	case strings.Contains(err.Error(), "connection refused"):
		msg.WriteString("Connection refused.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Check the API base URL (SP_BASE_URL or the profile's base_url)\n")
		msg.WriteString("  - Check your network connection\n")

	case strings.Contains(err.Error(), "no such host"):
		msg.WriteString("DNS resolution failed.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Check the API base URL spelling\n")
		msg.WriteString("  - Verify your DNS settings\n")

	case strings.Contains(err.Error(), "certificate"):
		msg.WriteString("TLS certificate error.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Verify the server's SSL certificate\n")
		msg.WriteString("  - Ensure you're using https:// correctly\n")

	default:
		fmt.Fprintf(&msg, "Error: %s\n", err.Error())
	}

	return msg.String()
}

func suggestionsForStatusCode(code int) string {
	var suggestions strings.Builder
	suggestions.WriteString("Suggestions:\n")

	switch {
	case code == 400:
		suggestions.WriteString("  - Check your request parameters\n")
		suggestions.WriteString("  - Use --debug to see the request\n")

	case code == 401:
		suggestions.WriteString("  - Your access token may be invalid or expired\n")
		suggestions.WriteString("  - Run: sp auth refresh (or sp auth login)\n")

	case code == 403:
		suggestions.WriteString("  - You don't have permission for this action\n")
		suggestions.WriteString("  - Check the scope granted to your application\n")

	case code == 404:
		suggestions.WriteString("  - The resource doesn't exist\n")
		suggestions.WriteString("  - Check the ID is correct\n")

	case code >= 500:
		suggestions.WriteString("  - Server error - not your fault\n")
		suggestions.WriteString("  - Wait and retry\n")

	default:
		suggestions.WriteString("  - Use --debug for more details\n")
	}

	return suggestions.String()
}
