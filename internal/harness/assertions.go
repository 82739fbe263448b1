package harness

import (
	"github.com/mdakit/mdaseq/internal/mda"
)

// evaluateExpectations checks the scenario's expectations against the result,
// recording every violation rather than stopping at the first.
func evaluateExpectations(result *Result, scenario *Scenario) {
	exp := scenario.Expect

	if exp.ErrorCode != "" {
		if result.ErrorCode != exp.ErrorCode {
			result.AddFailure("expected error code %s, got %q", exp.ErrorCode, result.ErrorCode)
		}
		return
	}
	if result.ErrorCode != "" {
		result.AddFailure("unexpected error code %s", result.ErrorCode)
		return
	}

	if exp.Count != nil && len(result.Events) != *exp.Count {
		result.AddFailure("expected %d events, got %d", *exp.Count, len(result.Events))
	}
	if exp.UniqueIndices {
		assertUniqueIndices(result)
	}
	if exp.MonotonicStartTimes {
		assertMonotonicStartTimes(result)
	}
	for _, e := range exp.Events {
		assertEvent(result, e)
	}
}

// assertUniqueIndices verifies no two events share an axis index.
func assertUniqueIndices(result *Result) {
	seen := make(map[string]int, len(result.Events))
	for i := range result.Events {
		key := result.Events[i].Index.Key()
		if prev, dup := seen[key]; dup {
			result.AddFailure("events %d and %d share index %s", prev, i, key)
			return
		}
		seen[key] = i
	}
}

// assertMonotonicStartTimes verifies min_start_time never decreases across
// the stream. Events without a start time are skipped.
func assertMonotonicStartTimes(result *Result) {
	last := -1.0
	for i := range result.Events {
		t := result.Events[i].MinStartTime
		if t == nil {
			continue
		}
		if *t < last {
			result.AddFailure("event %d: min_start_time %g decreased below %g", i, *t, last)
			return
		}
		last = *t
	}
}

// assertEvent spot-checks one event against its expectation.
func assertEvent(result *Result, exp EventExpectation) {
	if exp.At >= len(result.Events) {
		result.AddFailure("event %d: stream has only %d events", exp.At, len(result.Events))
		return
	}
	ev := &result.Events[exp.At]

	for axis, step := range exp.Index {
		got, ok := ev.Index.Get(mda.Axis(axis))
		if !ok {
			result.AddFailure("event %d: index has no axis %s", exp.At, axis)
			continue
		}
		if got != step {
			result.AddFailure("event %d: axis %s at step %d, expected %d", exp.At, axis, got, step)
		}
	}

	if exp.Channel != "" {
		if ev.Channel == nil {
			result.AddFailure("event %d: no channel, expected %s", exp.At, exp.Channel)
		} else if ev.Channel.Config != exp.Channel {
			result.AddFailure("event %d: channel %s, expected %s", exp.At, ev.Channel.Config, exp.Channel)
		}
	}
	if exp.Exposure != nil && ev.Exposure != *exp.Exposure {
		result.AddFailure("event %d: exposure %g, expected %g", exp.At, ev.Exposure, *exp.Exposure)
	}

	checkCoord(result, exp.At, "x", ev.X, exp.X)
	checkCoord(result, exp.At, "y", ev.Y, exp.Y)
	checkCoord(result, exp.At, "z", ev.Z, exp.Z)
	checkCoord(result, exp.At, "min_start_time", ev.MinStartTime, exp.MinStartTime)

	if exp.PosName != "" && ev.PosName != exp.PosName {
		result.AddFailure("event %d: pos_name %q, expected %q", exp.At, ev.PosName, exp.PosName)
	}
}

// checkCoord compares one optional float field when the expectation sets it.
func checkCoord(result *Result, at int, name string, got, want *float64) {
	if want == nil {
		return
	}
	if got == nil {
		result.AddFailure("event %d: %s unset, expected %g", at, name, *want)
		return
	}
	if *got != *want {
		result.AddFailure("event %d: %s %g, expected %g", at, name, *got, *want)
	}
}
