package account

import (
	"context"

	"github.com/looplab/fsm"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// States of one multicall, in order. A multicall never retries inside this
// module; a failed dispatch lands in StateFailed and stays there.
const (
	StateNoncePending = "nonce_pending"
	StateAggregated   = "aggregated"
	StateHashed       = "hashed"
	StateSigned       = "signed"
	StateDispatched   = "dispatched"
	StateSettled      = "settled"
	StateFailed       = "failed"
)

const (
	eventAggregate = "aggregate"
	eventHash      = "hash"
	eventSign      = "sign"
	eventDispatch  = "dispatch"
	eventSettle    = "settle"
	eventFail      = "fail"
)

type lifecycle struct {
	machine *fsm.FSM
}

func newLifecycle(logger logrus.FieldLogger) *lifecycle {
	return &lifecycle{
		machine: fsm.NewFSM(
			StateNoncePending,
			fsm.Events{
				{Name: eventAggregate, Src: []string{StateNoncePending}, Dst: StateAggregated},
				{Name: eventHash, Src: []string{StateAggregated}, Dst: StateHashed},
				{Name: eventSign, Src: []string{StateHashed}, Dst: StateSigned},
				{Name: eventDispatch, Src: []string{StateSigned}, Dst: StateDispatched},
				{Name: eventSettle, Src: []string{StateDispatched}, Dst: StateSettled},
				{Name: eventFail, Src: []string{StateNoncePending, StateAggregated, StateHashed, StateSigned, StateDispatched}, Dst: StateFailed},
			},
			fsm.Callbacks{
				"enter_state": func(_ context.Context, e *fsm.Event) {
					logger.WithFields(logrus.Fields{
						"from": e.Src,
						"to":   e.Dst,
					}).Debug("multicall state transition")
				},
			},
		),
	}
}

func (lc *lifecycle) advance(ctx context.Context, event string) error {
	if err := lc.machine.Event(ctx, event); err != nil {
		return errors.Wrapf(err, "multicall lifecycle cannot %s from %s", event, lc.machine.Current())
	}
	return nil
}

// fail force-terminates the multicall; calling it from a terminal state is
// a no-op so error paths can use it unconditionally.
func (lc *lifecycle) fail(ctx context.Context) {
	if lc.machine.Current() == StateSettled || lc.machine.Current() == StateFailed {
		return
	}
	_ = lc.machine.Event(ctx, eventFail)
}

func (lc *lifecycle) Current() string {
	return lc.machine.Current()
}
