package router

import (
	"runtime/debug"

	"github.com/Suhaibinator/ERouter/pkg/common"
)

// Outcome describes how a handler chain terminated.
type Outcome string

const (
	// OutcomeCompleted means every handler in the chain ran.
	OutcomeCompleted Outcome = "completed"

	// OutcomeShortCircuit means a handler returned without calling next
	// while later handlers remained.
	OutcomeShortCircuit Outcome = "short_circuit"

	// OutcomeFault means a handler returned an error or panicked.
	// Handlers that had not run yet were skipped.
	OutcomeFault Outcome = "fault"
)

// runChain runs handlers in order against one request and response.
//
// Each handler receives a next function that runs the rest of the chain and
// returns its error. next is idempotent: a second call returns the first
// result without running the tail again. Calling next after the last handler
// returns nil immediately. A panic anywhere in the chain is recovered and
// reported as a *PanicError fault.
func runChain(handlers []common.Handler, req *common.Request, res *common.Response) (outcome Outcome, err error) {
	ran := 0

	defer func() {
		if rec := recover(); rec != nil {
			outcome = OutcomeFault
			err = &PanicError{Value: rec, Stack: debug.Stack()}
		}
	}()

	var step func(i int) common.Next
	step = func(i int) common.Next {
		called := false
		var result error
		return func() error {
			if called {
				return result
			}
			called = true
			if i >= len(handlers) {
				return nil
			}
			ran++
			result = handlers[i](req, res, step(i+1))
			return result
		}
	}

	if err := step(0)(); err != nil {
		return OutcomeFault, err
	}
	if ran < len(handlers) {
		return OutcomeShortCircuit, nil
	}
	return OutcomeCompleted, nil
}
