package pipeline

import (
	"context"
	"fmt"

	"github.com/agentx-labs/putup/internal/ctxlog"
	"github.com/agentx-labs/putup/internal/options"
	"github.com/agentx-labs/putup/internal/structure"
)

// Run folds the initial state through every action of plan in order. Each
// action is announced on env.Report before it runs. The first failing
// action stops the run; its error is returned wrapped with the action ID
// and report entries made so far are kept.
func Run(ctx context.Context, plan *Plan, env Env, opts options.Options) (State, error) {
	logger := ctxlog.FromContext(ctx)
	st := State{Structure: structure.Empty(), Opts: opts.Clone()}

	for _, action := range plan.actions {
		if err := ctx.Err(); err != nil {
			return st, fmt.Errorf("run interrupted before %s: %w", action.ID, err)
		}
		if env.Report != nil {
			env.Report.Invoke(string(action.ID))
		}
		logger.Debug("invoking action", "action", action.ID)

		next, err := action.Run(ctx, env, st)
		if err != nil {
			return st, fmt.Errorf("action %s: %w", action.ID, err)
		}
		st = next
	}
	return st, nil
}
