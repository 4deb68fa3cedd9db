package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shootproof/shootproof-cli/internal/api"
	"github.com/shootproof/shootproof-cli/internal/iocontext"
	"github.com/shootproof/shootproof-cli/internal/outfmt"
)

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func isJSON(cmd *cobra.Command) bool {
	return outfmt.IsJSON(cmdContext(cmd))
}

// printJSON outputs data as JSON with optional query filtering
func printJSON(cmd *cobra.Command, v any) error {
	ioStreams := iocontext.GetIO(cmdContext(cmd))
	return outfmt.WriteFiltered(cmdContext(cmd), ioStreams.Out, v)
}

// printJSONErr writes a structured error to stderr, ignoring --query.
func printJSONErr(cmd *cobra.Command, v any) error {
	return outfmt.WriteJSON(cmd.ErrOrStderr(), map[string]any{"error": v}, outfmt.IsCompact(cmdContext(cmd)))
}

// printAction writes a one-line confirmation for text output.
func printAction(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(iocontext.GetIO(cmdContext(cmd)).Out, format+"\n", args...)
}

// parseID parses a positive numeric ID argument.
func parseID(value, resource string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID %q: must be a positive integer", resource, value)
	}
	return id, nil
}

// readJSONInput reads and decodes JSON from the command's stdin into v.
func readJSONInput(cmd *cobra.Command, v any) error {
	ioStreams := iocontext.GetIO(cmdContext(cmd))
	if ioStreams.StdinIsTerminal {
		return fmt.Errorf("no input data provided on stdin")
	}
	data, err := io.ReadAll(ioStreams.In)
	if err != nil {
		return fmt.Errorf("failed to read from stdin: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("no input data provided on stdin")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid JSON input: %w", err)
	}
	return nil
}

// parseFields turns repeated key=value flags into a record. Dotted keys nest:
// address.city=Austin becomes {"address": {"city": "Austin"}}. A key cannot be
// both a value and a parent of nested fields.
func parseFields(pairs []string) (api.Record, error) {
	record := api.Record{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --field %q: must be key=value", pair)
		}
		parts := strings.Split(key, ".")
		node := map[string]any(record)
		for i, part := range parts[:len(parts)-1] {
			switch child := node[part].(type) {
			case nil:
				next := map[string]any{}
				node[part] = next
				node = next
			case map[string]any:
				node = child
			default:
				return nil, fmt.Errorf("invalid --field %q: %s is already set as a value", pair, strings.Join(parts[:i+1], "."))
			}
		}
		leaf := parts[len(parts)-1]
		if _, ok := node[leaf].(map[string]any); ok {
			return nil, fmt.Errorf("invalid --field %q: %s already has nested fields", pair, key)
		}
		node[leaf] = value
	}
	return record, nil
}

// handledError marks an error whose message was already written.
type handledError struct {
	err      error
	exitCode int
}

func (e *handledError) Error() string {
	return e.err.Error()
}

func (e *handledError) Unwrap() error {
	return e.err
}

func (e *handledError) ExitCode() int {
	return e.exitCode
}

// RunE wraps a command so failures are rendered once, as text or structured JSON.
func RunE(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err == nil {
			return nil
		}
		if isJSON(cmd) {
			if structured := api.StructuredErrorFromError(err); structured != nil {
				_ = printJSONErr(cmd, structured)
			}
		} else {
			_, _ = fmt.Fprint(cmd.ErrOrStderr(), HandleError(err))
		}
		return &handledError{err: err, exitCode: ExitCode(err)}
	}
}

type aliasBridgeValue struct {
	pflag.Value
	canonical *pflag.Flag
}

// Set marks the canonical flag as changed when the alias is used.
func (v *aliasBridgeValue) Set(s string) error {
	if err := v.Value.Set(s); err != nil {
		return err
	}
	v.canonical.Changed = true
	return nil
}

type aliasBridgeSliceValue struct {
	aliasBridgeValue
	slice pflag.SliceValue
}

func (v *aliasBridgeSliceValue) Append(s string) error     { return v.slice.Append(s) }
func (v *aliasBridgeSliceValue) Replace(ss []string) error { return v.slice.Replace(ss) }
func (v *aliasBridgeSliceValue) GetSlice() []string        { return v.slice.GetSlice() }

// flagAlias registers a hidden long-form alias sharing name's value.
func flagAlias(fs *pflag.FlagSet, name, alias string) {
	f := fs.Lookup(name)
	if f == nil {
		panic(fmt.Sprintf("flagAlias: flag %q not found", name))
	}
	a := *f
	a.Name = alias
	a.Shorthand = ""
	a.Usage = ""
	a.Hidden = true
	bridge := &aliasBridgeValue{Value: f.Value, canonical: f}
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		a.Value = &aliasBridgeSliceValue{aliasBridgeValue: *bridge, slice: sv}
	} else {
		a.Value = bridge
	}
	newAnn := map[string][]string{"alias-of": {name}}
	for k, v := range f.Annotations {
		if k == cobra.BashCompOneRequiredFlag {
			continue
		}
		newAnn[k] = v
	}
	a.Annotations = newAnn
	fs.AddFlag(&a)
}

// flagOrAliasChanged returns true if the named flag or any of its
// hidden aliases was explicitly set by the user.
func flagOrAliasChanged(cmd *cobra.Command, name string) bool {
	if cmd.Flags().Changed(name) || cmd.InheritedFlags().Changed(name) {
		return true
	}

	aliasChanged := func(fs *pflag.FlagSet) bool {
		found := false
		fs.VisitAll(func(f *pflag.Flag) {
			if ann, ok := f.Annotations["alias-of"]; ok && len(ann) > 0 && ann[0] == name && fs.Changed(f.Name) {
				found = true
			}
		})
		return found
	}

	return aliasChanged(cmd.Flags()) || aliasChanged(cmd.InheritedFlags())
}
