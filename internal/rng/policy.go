package rng

// Policy is the tagged choice between a frozen, fully deterministic step and
// a stochastic step driven by a Random stream. Worlds thread a Policy through
// every transition instead of an optional RNG value.
type Policy struct {
	stream *Random
}

// Deterministic returns the policy with no randomness: probabilistic gates
// behave as if frozen and mutation never fires.
func Deterministic() Policy {
	return Policy{}
}

// Stochastic returns a policy drawing from the given stream.
func Stochastic(stream *Random) Policy {
	return Policy{stream: stream}
}

// Enabled reports whether the policy carries a random stream.
func (p Policy) Enabled() bool {
	return p.stream != nil
}

// Stream returns the policy's random stream. It panics for a deterministic
// policy: draws with no deterministic fallback are a caller contract
// violation, not a recoverable condition.
func (p Policy) Stream() *Random {
	if p.stream == nil {
		panic("rng: deterministic policy has no stream")
	}
	return p.stream
}

// Fork derives a child policy. A deterministic policy forks to deterministic;
// a stochastic one forks its stream, advancing the parent.
func (p Policy) Fork() Policy {
	if p.stream == nil {
		return Policy{}
	}
	return Stochastic(p.stream.Fork())
}

// MultiFork produces count child policies, forked strictly in index order
// before any consumer runs. Forking up front in a fixed order is what makes
// parallel row output reproducible for a fixed seed regardless of scheduling.
func (p Policy) MultiFork(count int) []Policy {
	children := make([]Policy, count)
	for i := range children {
		children[i] = p.Fork()
	}
	return children
}
