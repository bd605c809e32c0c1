package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/declparse/internal/ctxlog"
)

// HookKind tells which table a reference points into.
type HookKind int

const (
	ConverterHook HookKind = iota
	ValidatorHook
	ProducerHook
	ActionHook
)

func (k HookKind) String() string {
	switch k {
	case ConverterHook:
		return "converter"
	case ValidatorHook:
		return "validator"
	case ProducerHook:
		return "producer"
	case ActionHook:
		return "action"
	default:
		return fmt.Sprintf("HookKind(%d)", int(k))
	}
}

// Ref is a hook name used by a declaration. Where locates the use for the
// error message, e.g. "parser \"convert\" argument \"format\"".
type Ref struct {
	Kind  HookKind
	Name  string
	Where string
}

// ErrValidation is wrapped by the error ValidateRefs returns.
var ErrValidation = errors.New("registry validation failed")

// ValidateRefs checks that every reference resolves and reports all the
// missing ones at once.
func (r *Registry) ValidateRefs(ctx context.Context, refs []Ref) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, ref := range refs {
		var ok bool
		switch ref.Kind {
		case ConverterHook:
			_, ok = r.converters[ref.Name]
		case ValidatorHook:
			_, ok = r.validators[ref.Name]
		case ProducerHook:
			_, ok = r.producers[ref.Name]
		case ActionHook:
			_, ok = r.actions[ref.Name]
		}
		if !ok {
			errs = append(errs, fmt.Sprintf("%s: %s '%s' is not registered", ref.Where, ref.Kind, ref.Name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n- %s", ErrValidation, strings.Join(errs, "\n- "))
	}
	logger.Debug("Registry references validated.", "count", len(refs))
	return nil
}
