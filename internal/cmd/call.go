package cmd

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shootproof/shootproof-cli/internal/api"
	"github.com/shootproof/shootproof-cli/internal/dryrun"
	"github.com/shootproof/shootproof-cli/internal/filter"
	"github.com/shootproof/shootproof-cli/internal/iocontext"
	"github.com/shootproof/shootproof-cli/internal/outfmt"
	"github.com/shootproof/shootproof-cli/internal/resolve"
)

// view describes how a result is rendered as text. A zero view prints the
// result as key/value lines.
type view struct {
	listKey string
	columns []string
	empty   string
	// done, when set, replaces the result dump for mutating commands.
	done func(result api.Result) string
}

// callEnv is what a command body works with: the services to call, plus
// name lookups that always go to the network.
type callEnv struct {
	Services api.Services

	factory *clientFactory
	lookup  *api.Client
}

func (e *callEnv) resolver() (resolve.Resolver, error) {
	if e.lookup == nil {
		client, err := e.factory.authenticated()
		if err != nil {
			return resolve.Resolver{}, err
		}
		e.lookup = client
	}
	return resolve.Resolver{Services: api.NewServices(e.lookup)}, nil
}

// brandID resolves a --brand value. Empty input means no brand.
func (e *callEnv) brandID(ctx context.Context, input string) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, nil
	}
	if isNumeric(input) {
		return parseID(input, "brand")
	}
	r, err := e.resolver()
	if err != nil {
		return 0, err
	}
	return r.Brand(ctx, input)
}

// eventID resolves an event argument given as an ID or a name.
func (e *callEnv) eventID(ctx context.Context, input string) (int, error) {
	input = strings.TrimSpace(input)
	if isNumeric(input) {
		return parseID(input, "event")
	}
	r, err := e.resolver()
	if err != nil {
		return 0, err
	}
	return r.Event(ctx, input, 0)
}

// isNumeric reports whether input is an integer literal, so it is taken as an
// ID rather than a name.
func isNumeric(input string) bool {
	_, err := strconv.Atoi(input)
	return err == nil
}

type callFunc func(ctx context.Context, env *callEnv) (api.Result, error)

// runQuery runs a read-only call and renders its result.
func runQuery(cmd *cobra.Command, v view, fn callFunc) error {
	return runCall(cmd, false, v, fn)
}

// runMutation runs a call that changes state. Under --dry-run the services
// record instead of sending, and the recorded calls are printed.
func runMutation(cmd *cobra.Command, v view, fn callFunc) error {
	return runCall(cmd, true, v, fn)
}

func runCall(cmd *cobra.Command, mutating bool, v view, fn callFunc) error {
	ctx := cmdContext(cmd)
	env := &callEnv{factory: newClientFactory()}

	if mutating && dryrun.IsEnabled(ctx) {
		rec := &dryrun.Recorder{}
		env.Services = api.NewServices(rec)
		if _, err := fn(ctx, env); err != nil {
			return err
		}
		return writePreviews(cmd, rec.Previews())
	}

	client, err := env.factory.authenticated()
	if err != nil {
		return err
	}
	env.Services = api.NewServices(client)
	env.lookup = client

	result, err := fn(ctx, env)
	if err != nil {
		return err
	}
	return render(cmd, result, v)
}

func writePreviews(cmd *cobra.Command, previews []dryrun.Preview) error {
	if isJSON(cmd) {
		return printJSON(cmd, map[string]any{"dry_run": true, "calls": previews})
	}
	out := iocontext.GetIO(cmdContext(cmd)).Out
	for _, p := range previews {
		p.Write(out)
	}
	return nil
}

func render(cmd *cobra.Command, result api.Result, v view) error {
	ctx := cmdContext(cmd)
	ioStreams := iocontext.GetIO(ctx)
	f := outfmt.NewFormatter(ctx, ioStreams.Out, ioStreams.ErrOut)
	if wrote, err := f.Output(result); wrote {
		return err
	}

	if v.done != nil {
		printAction(cmd, "%s", v.done(result))
		return nil
	}

	key := v.listKey
	if key == "" {
		if found, ok := filter.ListKey(map[string]any(result)); ok && len(v.columns) > 0 {
			key = found
		}
	}
	if key != "" {
		records, _ := result[key].([]any)
		if len(records) == 0 && v.empty != "" {
			f.Empty(v.empty)
			return nil
		}
		columns := v.columns
		if len(columns) == 0 {
			columns = []string{"id", "name"}
		}
		return f.Table(records, columns)
	}
	return f.KeyValues(result)
}
