package match3

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors for the core's one genuinely recoverable-but-abnormal
// condition (spec.md §7: exceeding the tick budget in run_until_stable).
// Validation failures (out-of-bounds, non-adjacent swap, empty/suspended
// cell) are not errors at all — ApplyMove just returns false, per
// spec.md §7 — so they have no sentinel here.
var ErrTickBudgetExceeded = stderrors.New("match3: tick budget exceeded before board became stable")

// wrapTickBudget builds a diagnostic error carrying the ticks the call
// spent and the state's running tick counter when the budget ran out, the way
// github.com/pkg/errors is meant to be used for operational context —
// mirrored on the teacher's own fmt.Errorf-with-context convention in
// team.go, upgraded to a wrapped error since RunUntilStable's failure is
// a deeper, harder-to-reproduce condition than "team is full".
func wrapTickBudget(ticksSpent int, stateTick uint64) error {
	return errors.Wrapf(ErrTickBudgetExceeded, "after %d ticks (state tick %d)", ticksSpent, stateTick)
}

// panicf aborts with a diagnostic for a programmer-contract violation
// (spec.md §7): currently, an out-of-bounds Position reaching
// GameState.At/GroundAt/CoverAt. These must never occur in a correct
// caller, so unlike validation failures they are not recoverable return
// values.
func panicf(format string, args ...interface{}) {
	panic(fmt.Sprintf("match3: contract violation: "+format, args...))
}
