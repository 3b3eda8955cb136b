package audithook

import (
	"log/slog"
	"slices"

	"github.com/caisseplanck/register/audit"
)

// Option configures an Extension.
type Option func(*Extension)

// WithLogger sets the logger that receives sink failures and unknown
// action names.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extension) { e.logger = logger }
}

// WithEnabledActions records only the named till actions, for example
// ActionCheckout and ActionBalanceAdjusted. Without it every action is
// recorded.
func WithEnabledActions(actions ...string) Option {
	return func(e *Extension) {
		e.enabled = make(map[string]bool, len(actions))
		for _, action := range e.known(actions) {
			e.enabled[action] = true
		}
	}
}

// WithDisabledActions skips the named till actions. The till passes its
// configured audit_disabled_actions list here, so a typo is logged rather
// than silently ignored.
func WithDisabledActions(actions ...string) Option {
	return func(e *Extension) {
		if e.enabled == nil {
			e.enabled = make(map[string]bool)
			for _, action := range allActions() {
				e.enabled[action] = true
			}
		}
		for _, action := range e.known(actions) {
			delete(e.enabled, action)
		}
	}
}

// WithStreams limits recording to actions that land on the given streams,
// e.g. audit.StreamTransactions alone for a sales-only trail.
func WithStreams(streams ...audit.Stream) Option {
	return func(e *Extension) {
		if e.enabled == nil {
			e.enabled = make(map[string]bool)
			for _, action := range allActions() {
				e.enabled[action] = true
			}
		}
		for action := range e.enabled {
			if !slices.Contains(streams, streamOf(action)) {
				delete(e.enabled, action)
			}
		}
	}
}

// known filters actions down to the ones this hook emits and remembers the
// rest for New to report.
func (e *Extension) known(actions []string) []string {
	all := allActions()
	out := make([]string, 0, len(actions))
	for _, action := range actions {
		if slices.Contains(all, action) {
			out = append(out, action)
		} else {
			e.unknown = append(e.unknown, action)
		}
	}
	return out
}
