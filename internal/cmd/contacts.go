package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shootproof/shootproof-cli/internal/api"
	"github.com/shootproof/shootproof-cli/internal/validation"
)

func newContactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contacts",
		Aliases: []string{"contact", "co"},
		Short:   "Manage contacts",
		Long: strings.TrimSpace(`
Manage the studio's contacts.

Contact fields are given with repeated --field key=value flags (dotted keys nest,
as in address.city=Austin) or as a JSON object on stdin. Known fields: brand_id,
first_name, last_name, email, phone, business_name, notes, tags and address with
address_1, address_2, city, state, state_other, country and zip_postal.
`),
	}

	cmd.AddCommand(newContactsGetCmd())
	cmd.AddCommand(newContactsCreateCmd())
	cmd.AddCommand(newContactsUpdateCmd())
	cmd.AddCommand(newContactsBulkCreateCmd())
	cmd.AddCommand(newContactsDeleteCmd())

	return cmd
}

// contactInput reads a contact from --field flags, or from stdin when none are given.
func contactInput(cmd *cobra.Command, fields []string) (api.Record, error) {
	var record api.Record
	if len(fields) > 0 {
		var err error
		if record, err = parseFields(fields); err != nil {
			return nil, err
		}
	} else if err := readJSONInput(cmd, &record); err != nil {
		return nil, fmt.Errorf("%w (use --field key=value or pipe a JSON object)", err)
	}
	if err := validation.Contact(record); err != nil {
		return nil, err
	}
	return record, nil
}

func newContactsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <contact-id>",
		Short: "Show a contact",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			contactID, err := parseID(args[0], "contact")
			if err != nil {
				return err
			}
			return runQuery(cmd, view{}, func(ctx context.Context, env *callEnv) (api.Result, error) {
				return env.Services.Contacts.Get(ctx, contactID)
			})
		}),
	}
}

func newContactsCreateCmd() *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a contact",
		Example: strings.TrimSpace(`
  sp contacts create --field first_name=Ann --field email=ann@example.com --field address.city=Austin
  echo '{"first_name":"Ann","address":{"city":"Austin"}}' | sp contacts create
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			contact, err := contactInput(cmd, fields)
			if err != nil {
				return err
			}
			v := view{done: func(r api.Result) string { return "Created contact " + describe(r, "contact", contactLabel(contact)) }}
			return runMutation(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				return env.Services.Contacts.Create(ctx, contact)
			})
		}),
	}

	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "Contact field as key=value (repeatable)")
	return cmd
}

func newContactsUpdateCmd() *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "update <contact-id>",
		Short: "Update a contact",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			contactID, err := parseID(args[0], "contact")
			if err != nil {
				return err
			}
			contact, err := contactInput(cmd, fields)
			if err != nil {
				return err
			}
			v := view{done: func(api.Result) string { return fmt.Sprintf("Updated contact %d", contactID) }}
			return runMutation(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				return env.Services.Contacts.Update(ctx, contactID, contact)
			})
		}),
	}

	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "Contact field as key=value (repeatable)")
	return cmd
}

func newContactsBulkCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bulk-create",
		Short: "Create several contacts from a JSON array on stdin",
		Example: strings.TrimSpace(`
  sp contacts bulk-create < contacts.json
  jq '[.[] | {first_name, email}]' export.json | sp contacts bulk-create --dry-run
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			var contacts []api.Record
			if err := readJSONInput(cmd, &contacts); err != nil {
				return fmt.Errorf("%w (pipe a JSON array of contact objects)", err)
			}
			for i, c := range contacts {
				if err := validation.Contact(c); err != nil {
					return fmt.Errorf("contact %d: %w", i, err)
				}
			}
			v := view{done: func(api.Result) string { return fmt.Sprintf("Created %d contacts", len(contacts)) }}
			return runMutation(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				return env.Services.Contacts.BulkCreate(ctx, contacts)
			})
		}),
	}
}

func newContactsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <contact-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a contact",
		Args:    cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			contactID, err := parseID(args[0], "contact")
			if err != nil {
				return err
			}
			v := view{done: func(api.Result) string { return fmt.Sprintf("Deleted contact %d", contactID) }}
			return runMutation(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				return env.Services.Contacts.Delete(ctx, contactID)
			})
		}),
	}
}

func contactLabel(contact api.Record) string {
	name := strings.TrimSpace(valueOr(contact["first_name"]) + " " + valueOr(contact["last_name"]))
	if name != "" {
		return name
	}
	if email, ok := contact["email"].(string); ok {
		return email
	}
	return "contact"
}

func valueOr(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
