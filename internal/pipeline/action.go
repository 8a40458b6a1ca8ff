// Package pipeline builds and runs the ordered action plan of a
// scaffolding run.
//
// An action is a named transformation of State. The base plan is a fixed
// list of actions; extensions splice extra actions in before or after
// named anchors, or remove actions, before anything runs. The runner then
// folds State through the plan from left to right.
package pipeline

import (
	"context"
	"strings"

	"github.com/agentx-labs/putup/internal/fsops"
	"github.com/agentx-labs/putup/internal/options"
	"github.com/agentx-labs/putup/internal/report"
	"github.com/agentx-labs/putup/internal/structure"
	"github.com/agentx-labs/putup/internal/vcs"
)

// ActionID names an action uniquely within a plan, in the form
// "<namespace>:<name>" (e.g. "putup.scaffold:define_structure").
type ActionID string

// NewActionID joins a namespace and a name.
func NewActionID(namespace, name string) ActionID {
	return ActionID(namespace + ":" + name)
}

// Name returns the part of the ID after the namespace.
func (id ActionID) Name() string {
	if i := strings.LastIndexByte(string(id), ':'); i >= 0 {
		return string(id)[i+1:]
	}
	return string(id)
}

// String implements fmt.Stringer.
func (id ActionID) String() string { return string(id) }

// State is the value threaded through the plan.
type State struct {
	Structure structure.Structure
	Opts      options.Options
}

// Env carries the collaborators available to every action.
type Env struct {
	Report  *report.Report
	FS      fsops.FS
	Git     vcs.Git
	Version string
}

// RunFunc transforms a state. Implementations must not mutate their input
// and must return the state unchanged when they have nothing to contribute.
type RunFunc func(ctx context.Context, env Env, st State) (State, error)

// Action is a named step of the plan.
type Action struct {
	ID  ActionID
	Run RunFunc
}
