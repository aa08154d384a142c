// Package interp implements the deterministic interpreter: it walks a typed
// program statement by statement, evaluating expressions, performing tool
// calls through a registry.Registry, and appending a replay.Event for every
// observable effect, including a per-statement "Random" heartbeat driven by
// a fixed-seed linear congruential generator so a run is fully reproducible
// from its seed.
package interp

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/axiom-lang/axiom/ast"
	"github.com/axiom-lang/axiom/capability"
	"github.com/axiom-lang/axiom/policy"
	"github.com/axiom-lang/axiom/registry"
	"github.com/axiom-lang/axiom/replay"
	"github.com/axiom-lang/axiom/telemetry"
)

// ErrorKind classifies a RuntimeError for callers that want to branch on
// failure category without string-matching the message.
type ErrorKind int

const (
	// MissingCapability means no capability was supplied under the name a
	// ToolCall requested.
	MissingCapability ErrorKind = iota
	// InvalidCapability means the supplied capability does not grant tool
	// rights.
	InvalidCapability
	// InvalidTimeout means a ToolCall declared a zero timeout.
	InvalidTimeout
	// MissingToolSignature means no ToolDecl registered the tool being
	// called.
	MissingToolSignature
	// ToolValidation means a tool's output failed the required-field check.
	ToolValidation
	// ToolExecution means the underlying registry.Registry call itself
	// returned an error.
	ToolExecution
	// Eval means expression evaluation failed (unknown variable, non-Int
	// operands to a binary operator).
	Eval
	// PolicyDenied means a policy.Engine blocked a further tool call.
	PolicyDenied
)

func (k ErrorKind) String() string {
	switch k {
	case MissingCapability:
		return "missing capability"
	case InvalidCapability:
		return "invalid capability"
	case InvalidTimeout:
		return "invalid timeout"
	case MissingToolSignature:
		return "missing tool signature"
	case ToolValidation:
		return "tool validation failed"
	case ToolExecution:
		return "tool execution failed"
	case Eval:
		return "evaluation error"
	case PolicyDenied:
		return "policy denied"
	default:
		return "unknown error"
	}
}

// RuntimeError is a terminal interpretation failure.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func runtimeErrf(kind ErrorKind, format string, args ...any) error {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Options configures a single Execute call.
type Options struct {
	// DeterministicSeed seeds the per-statement Random heartbeat's LCG.
	// Execute uses the value as given, zero included, and substitutes no
	// default; DefaultOptions returns the default seed of 42.
	DeterministicSeed uint64
	// Policy, if non-nil, is consulted before every ToolCall statement
	// executes and may abort the run with a PolicyDenied RuntimeError.
	Policy *policy.Engine
	// Logger, if non-nil, receives a Debug message around each statement and
	// an Info message on each tool invocation. It is never consulted on the
	// path that builds replay.Event values or computes the digest, so
	// logging cannot perturb a run's determinism. Defaults to a no-op
	// Logger.
	Logger telemetry.Logger
}

// DefaultOptions returns the Options used when a caller has no specific
// seed requirement.
func DefaultOptions() Options {
	return Options{DeterministicSeed: 42}
}

// Printer receives the rendered text of each Print statement as the
// interpreter executes it. Execute does not write to stdout itself; callers
// that want console output pass an os.Stdout-backed Printer.
type Printer interface {
	Print(line string)
}

// PrinterFunc adapts a function to a Printer.
type PrinterFunc func(line string)

// Print implements Printer.
func (f PrinterFunc) Print(line string) { f(line) }

// discardPrinter drops every line; used when a caller passes a nil Printer.
type discardPrinter struct{}

func (discardPrinter) Print(string) {}

// Execute runs typed to completion against capabilities and reg, returning
// the resulting replay log. printer may be nil, in which case Print
// statements are still recorded in the log but produce no side-effecting
// output.
func Execute(ctx context.Context, typed *ast.TypedProgram, capabilities map[string]capability.Capability, reg registry.Registry, printer Printer, opts Options) (*replay.Log, error) {
	if printer == nil {
		printer = discardPrinter{}
	}
	if typed.Effect == ast.Tool && len(capabilities) == 0 {
		return nil, runtimeErrf(MissingCapability, "tool effect requested but no capabilities supplied")
	}

	logger := opts.Logger
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	runID := uuid.NewString()

	env := map[string]ast.Value{}
	log := &replay.Log{RunID: runID}
	rng := newLCG(opts.DeterministicSeed)
	var policyState policy.State

	for i, stmt := range typed.Program.Statements {
		logger.Debug(ctx, "executing statement", "run_id", runID, "index", i, "statement", fmt.Sprintf("%T", stmt))
		switch s := stmt.(type) {
		case ast.ToolDecl:
			// Declarations carry no runtime effect.
		case ast.Let:
			v, err := evalExpr(s.Expr, env)
			if err != nil {
				return nil, err
			}
			env[s.Name] = v
		case ast.Print:
			v, err := evalExpr(s.Expr, env)
			if err != nil {
				return nil, err
			}
			msg := formatValue(v)
			printer.Print(msg)
			log.Push(replay.PrintEvent{Value: msg})
		case ast.ToolCall:
			if opts.Policy != nil {
				if d := opts.Policy.Decide(ctx, policyState); !d.Allow {
					return nil, runtimeErrf(PolicyDenied, "%s", d.Reason)
				}
			}
			logger.Info(ctx, "tool invocation", "run_id", runID, "tool", s.Tool)
			callErr := execToolCall(ctx, s, typed.Tools, capabilities, reg, env, log)
			if opts.Policy != nil {
				policyState.Observe(callErr != nil)
			}
			if callErr != nil {
				return nil, callErr
			}
		default:
			return nil, runtimeErrf(Eval, "unhandled statement type %T", stmt)
		}
		log.Push(replay.RandomEvent{Value: rng.next()})
	}
	return log, nil
}

func execToolCall(ctx context.Context, call ast.ToolCall, tools map[string]ast.ToolSignature, capabilities map[string]capability.Capability, reg registry.Registry, env map[string]ast.Value, log *replay.Log) error {
	if call.TimeoutMS == 0 {
		return runtimeErrf(InvalidTimeout, "tool call %s has zero timeout", call.Tool)
	}
	cap, ok := capabilities[call.Cap]
	if !ok {
		return runtimeErrf(MissingCapability, "%s", call.Cap)
	}
	if !cap.CanUseTool() {
		return runtimeErrf(InvalidCapability, "%s does not grant tool rights", call.Cap)
	}
	sig, ok := tools[call.Tool]
	if !ok {
		return runtimeErrf(MissingToolSignature, "%s", call.Tool)
	}

	fields := make([]string, 0, len(call.Input))
	for _, arg := range call.Input {
		v, err := evalExpr(arg.Expr, env)
		if err != nil {
			return err
		}
		fields = append(fields, fmt.Sprintf("%q:%s", arg.Name, toJSON(v)))
	}
	inputJSON := "{" + strings.Join(fields, ",") + "}"

	out, err := reg.Call(ctx, call.Tool, inputJSON)
	if err != nil {
		return runtimeErrf(ToolExecution, "%s", err)
	}
	if err := validateToolOutput(out, sig.Output); err != nil {
		return err
	}

	log.Push(replay.ToolCallEvent{
		Tool:        call.Tool,
		Input:       inputJSON,
		Output:      out,
		Source:      "tool-registry",
		TimestampMS: 0,
		OutputHash:  stableHashHex(out),
		PolicyTags:  []string{"default"},
	})
	log.Push(replay.TimeEvent{Millis: call.TimeoutMS})
	return nil
}

// validateToolOutput enforces the spec's minimal contract: the raw output
// text must contain a `"field":` substring for every declared output field.
// This is a textual check, not a structural one — see the schema package
// for an opt-in stronger validation mode layered on top of it.
func validateToolOutput(raw string, schema map[string]ast.Type) error {
	keys := make([]string, 0, len(schema))
	for k := range schema {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		needle := fmt.Sprintf("%q:", k)
		if !strings.Contains(raw, needle) {
			return runtimeErrf(ToolValidation, "tool output missing required field: %s", k)
		}
	}
	return nil
}

func evalExpr(expr ast.Expr, env map[string]ast.Value) (ast.Value, error) {
	switch e := expr.(type) {
	case ast.IntLit:
		return ast.IntValue{Value: e.Value}, nil
	case ast.BoolLit:
		return ast.BoolValue{Value: e.Value}, nil
	case ast.TextLit:
		return ast.TextValue{Value: e.Value}, nil
	case ast.VarRef:
		v, ok := env[e.Name]
		if !ok {
			return nil, runtimeErrf(Eval, "unknown variable: %s", e.Name)
		}
		return v, nil
	case ast.BinaryExpr:
		l, err := evalExpr(e.Left, env)
		if err != nil {
			return nil, err
		}
		r, err := evalExpr(e.Right, env)
		if err != nil {
			return nil, err
		}
		li, lok := l.(ast.IntValue)
		ri, rok := r.(ast.IntValue)
		if !lok || !rok {
			return nil, runtimeErrf(Eval, "binary ops require Int values")
		}
		var result int64
		switch e.Op {
		case ast.Add:
			result = li.Value + ri.Value
		case ast.Sub:
			result = li.Value - ri.Value
		case ast.Mul:
			result = li.Value * ri.Value
		case ast.Div:
			result = li.Value / ri.Value
		}
		return ast.IntValue{Value: result}, nil
	default:
		return nil, runtimeErrf(Eval, "unhandled expression type %T", expr)
	}
}

func toJSON(v ast.Value) string {
	switch val := v.(type) {
	case ast.IntValue:
		return strconv.FormatInt(val.Value, 10)
	case ast.BoolValue:
		return strconv.FormatBool(val.Value)
	case ast.TextValue:
		return `"` + val.Value + `"`
	default:
		panic(fmt.Sprintf("interp: unhandled value variant %T", v))
	}
}

func formatValue(v ast.Value) string {
	switch val := v.(type) {
	case ast.IntValue:
		return strconv.FormatInt(val.Value, 10)
	case ast.BoolValue:
		return strconv.FormatBool(val.Value)
	case ast.TextValue:
		return val.Value
	default:
		panic(fmt.Sprintf("interp: unhandled value variant %T", v))
	}
}

func stableHashHex(s string) string {
	const (
		offset uint64 = 0xcbf29ce484222325
		prime  uint64 = 0x100000001B3
	)
	hash := offset
	for i := 0; i < len(s); i++ {
		hash ^= uint64(s[i])
		hash *= prime
	}
	return fmt.Sprintf("%016x", hash)
}

// lcg is the fixed linear congruential generator driving the interpreter's
// Random heartbeat. Its multiplier is Knuth's MMIX constant with an
// increment of 1, chosen for reproducibility, not cryptographic strength.
type lcg struct {
	state uint64
}

func newLCG(seed uint64) *lcg {
	return &lcg{state: seed}
}

func (g *lcg) next() uint64 {
	g.state = g.state*6364136223846793005 + 1
	return g.state
}
