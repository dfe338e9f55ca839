// Package action implements the code-action pipeline: filter evaluation,
// action listing and shell execution against the current selection.
package action

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"hxls/internal/registry"
	"hxls/internal/scheduler"
	"hxls/internal/shell"
	"hxls/internal/variables"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Verdict is the outcome of one filter evaluation. Anything but Enabled
// hides the action; the distinct failure variants keep the reason visible
// in logs.
type Verdict int

const (
	Enabled Verdict = iota
	Disabled
	TimedOut
	ExecutionError
)

func (v Verdict) String() string {
	switch v {
	case Enabled:
		return "enabled"
	case Disabled:
		return "disabled"
	case TimedOut:
		return "timed out"
	default:
		return "execution error"
	}
}

// FilterResult pairs an action with its filter verdict.
type FilterResult struct {
	Action  registry.Action
	Verdict Verdict
	Err     error
}

// Data rides inside a CodeAction between textDocument/codeAction and
// codeAction/resolve. The command already has its variables resolved.
type Data struct {
	URI     string         `json:"uri"`
	Range   protocol.Range `json:"range"`
	Command string         `json:"command"`
}

// Engine evaluates filters and executes action commands on a bounded
// worker pool, off the protocol-handling path.
type Engine struct {
	pool    *scheduler.Scheduler
	timeout time.Duration
}

func NewEngine(pool *scheduler.Scheduler) *Engine {
	return &Engine{pool: pool, timeout: shell.DefaultTimeout}
}

// EvaluateFilters runs every action's filter concurrently, piping the
// selection to stdin and exposing the variable bindings as environment.
// Results come back in declaration order. A filter failure never fails
// the request; it just disables its action.
func (e *Engine) EvaluateFilters(ctx context.Context, actions []registry.Action, vars *variables.Context) []FilterResult {
	results := make([]FilterResult, len(actions))
	env := vars.Env()

	var wg sync.WaitGroup
	for i, act := range actions {
		results[i].Action = act

		if act.Filter.String() == "" {
			results[i].Verdict = Enabled
			continue
		}

		wg.Add(1)
		i, act := i, act
		scheduled := e.pool.Schedule(scheduler.Task{
			Name: "filter " + act.Name,
			Execute: func(poolCtx context.Context) error {
				defer wg.Done()
				verdict, err := e.runFilter(ctx, act, vars, env)
				results[i].Verdict = verdict
				results[i].Err = err
				if verdict != Enabled && err != nil {
					log.Printf("action %s filter %s: %v", act.Name, verdict, err)
				}
				return nil
			},
		})
		if !scheduled {
			wg.Done()
			results[i].Verdict = ExecutionError
			results[i].Err = scheduler.ErrStopped
		}
	}
	wg.Wait()
	return results
}

func (e *Engine) runFilter(ctx context.Context, act registry.Action, vars *variables.Context, env []string) (Verdict, error) {
	script := vars.Substitute(act.Filter.String())

	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	result, err := shell.Run(runCtx, script, vars.SelectedText, env)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return TimedOut, err
		}
		return ExecutionError, err
	}

	// Case-sensitive: "True" does not enable.
	switch result.Stdout {
	case "true", "1", "":
		return Enabled, nil
	}
	return Disabled, nil
}

// CodeActions converts the enabled filter results into selectable code
// actions. Shell commands are eagerly substituted so the Data payload is
// self-contained at resolve time.
func CodeActions(results []FilterResult, vars *variables.Context, uri string, rng protocol.Range) []protocol.CodeAction {
	kind := protocol.CodeActionKindEmpty
	preferred := true

	var out []protocol.CodeAction
	for _, r := range results {
		if r.Verdict != Enabled {
			continue
		}
		out = append(out, protocol.CodeAction{
			Title:       r.Action.Title,
			Kind:        &kind,
			IsPreferred: &preferred,
			Data: Data{
				URI:     uri,
				Range:   rng,
				Command: vars.Substitute(r.Action.Shell.String()),
			},
		})
	}
	return out
}

// DecodeData recovers the Data payload from a resolve request, where it
// arrives as raw JSON.
func DecodeData(raw any) (Data, error) {
	encoded, err := json.Marshal(raw)
	if err != nil {
		return Data{}, fmt.Errorf("action data: %w", err)
	}
	var data Data
	if err := json.Unmarshal(encoded, &data); err != nil {
		return Data{}, fmt.Errorf("action data: %w", err)
	}
	if data.Command == "" {
		return Data{}, errors.New("action data: missing command")
	}
	return data, nil
}

// Execute runs a resolved action command with the selection on stdin.
// The trimmed stdout is the replacement text; empty output means the
// action was fire-and-forget and no edit results. The spawned process is
// killed when ctx is cancelled and partial output is discarded.
func (e *Engine) Execute(ctx context.Context, command, selection string, env []string) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var result shell.Result
	done := e.pool.Go("action "+firstWord(command), func(context.Context) error {
		var err error
		result, err = shell.Run(runCtx, command, selection, env)
		return err
	})
	if err := <-done; err != nil {
		return "", fmt.Errorf("action execution: %w", err)
	}
	return result.Stdout, nil
}

func firstWord(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
