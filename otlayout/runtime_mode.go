package otlayout

import (
	"fmt"
	"sync/atomic"
)

// Contract checks guard calls into rules which the matcher never produces,
// e.g. testing a rule at a position outside its context. They are off by
// default, as they sit on the hot path of shaping; tests and debugging
// sessions may switch them on. A failed check panics.
var contractChecks atomic.Bool

// SetContractChecks switches contract checks on or off and returns the previous setting.
func SetContractChecks(on bool) bool {
	return contractChecks.Swap(on)
}

// ContractChecks reports whether contract checks are enabled.
func ContractChecks() bool {
	return contractChecks.Load()
}

func assertPosition(r *ContextRule, at int) {
	if at < 1 || at >= r.ContextLength() {
		panic(fmt.Sprintf("assertion [context position] failed: %d not in [1,%d)", at, r.ContextLength()))
	}
}
