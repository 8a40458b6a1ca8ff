package pipeline

import (
	"slices"

	"github.com/agentx-labs/putup/internal/apperrors"
)

// HookKind selects how a Hook edits the plan.
type HookKind int

const (
	HookInsertBefore HookKind = iota
	HookInsertAfter
	HookRemove
)

// Hook is one edit of the plan contributed by an extension.
type Hook struct {
	Kind   HookKind
	Anchor ActionID
	Action Action
}

// InsertBefore places action immediately before anchor.
func InsertBefore(anchor ActionID, action Action) Hook {
	return Hook{Kind: HookInsertBefore, Anchor: anchor, Action: action}
}

// InsertAfter places action immediately after anchor.
func InsertAfter(anchor ActionID, action Action) Hook {
	return Hook{Kind: HookInsertAfter, Anchor: anchor, Action: action}
}

// Remove drops the action with the given ID.
func Remove(id ActionID) Hook {
	return Hook{Kind: HookRemove, Anchor: id}
}

// Extension contributes plan edits.
type Extension interface {
	Name() string
	Hooks() []Hook
}

// Plan is an immutable ordered list of actions with unique IDs.
type Plan struct {
	actions []Action
}

// Actions returns a copy of the planned actions.
func (p *Plan) Actions() []Action { return slices.Clone(p.actions) }

// IDs returns the planned action IDs in order.
func (p *Plan) IDs() []ActionID {
	ids := make([]ActionID, len(p.actions))
	for i, a := range p.actions {
		ids[i] = a.ID
	}
	return ids
}

// Len returns the number of planned actions.
func (p *Plan) Len() int { return len(p.actions) }

// BuildPlan applies each extension's hooks, in the order given, to the base
// actions. Anchors are resolved against the list as edited so far, so a
// later hook may anchor on an action inserted by an earlier one.
func BuildPlan(base []Action, exts []Extension) (*Plan, error) {
	list := make([]Action, 0, len(base))
	for _, a := range base {
		if err := checkNew(list, a, "base"); err != nil {
			return nil, err
		}
		list = append(list, a)
	}

	for _, ext := range exts {
		for _, h := range ext.Hooks() {
			var err error
			list, err = apply(list, h, ext.Name())
			if err != nil {
				return nil, err
			}
		}
	}
	return &Plan{actions: list}, nil
}

func apply(list []Action, h Hook, owner string) ([]Action, error) {
	idx := indexOf(list, h.Anchor)
	if idx < 0 {
		return nil, apperrors.New(apperrors.KindConfiguration,
			"extension %s: unknown anchor action %q", owner, h.Anchor)
	}

	switch h.Kind {
	case HookRemove:
		return slices.Delete(slices.Clone(list), idx, idx+1), nil
	case HookInsertBefore, HookInsertAfter:
		if err := checkNew(list, h.Action, "extension "+owner); err != nil {
			return nil, err
		}
		if h.Kind == HookInsertAfter {
			idx++
		}
		return slices.Insert(slices.Clone(list), idx, h.Action), nil
	default:
		return nil, apperrors.New(apperrors.KindConfiguration,
			"extension %s: unsupported hook kind %d", owner, h.Kind)
	}
}

func checkNew(list []Action, a Action, owner string) error {
	if a.ID == "" || a.Run == nil {
		return apperrors.New(apperrors.KindConfiguration, "%s: action %q is incomplete", owner, a.ID)
	}
	if indexOf(list, a.ID) >= 0 {
		return apperrors.New(apperrors.KindConfiguration, "%s: duplicate action %q", owner, a.ID)
	}
	return nil
}

func indexOf(list []Action, id ActionID) int {
	return slices.IndexFunc(list, func(a Action) bool { return a.ID == id })
}
