package shop

// FetchState is the lifecycle of one shop listing request.
//
// A new state is loading with no results. It settles exactly once per fetch
// attempt: on success Results holds the payload and Loaded is true; on
// failure Loaded stays false, Results stays nil and Err is set. IsLoading is
// false after either outcome.
type FetchState struct {
	Results   []Shop
	Loaded    bool
	IsLoading bool
	Err       error
}

// NewFetchState returns the initial loading state.
func NewFetchState() FetchState {
	return FetchState{IsLoading: true}
}

// Settled reports whether the current fetch attempt has completed.
func (s FetchState) Settled() bool {
	return !s.IsLoading
}

// Failed reports whether the state settled with an error.
func (s FetchState) Failed() bool {
	return s.Settled() && s.Err != nil
}

// Succeed returns the settled state for a successful fetch. A nil payload is
// stored as an empty, initialized list.
func (s FetchState) Succeed(results []Shop) FetchState {
	if results == nil {
		results = []Shop{}
	}
	return FetchState{Results: results, Loaded: true}
}

// Fail returns the settled state for a failed fetch.
func (s FetchState) Fail(err error) FetchState {
	return FetchState{Err: err}
}

// Reload returns s back in the loading state for a new fetch attempt.
// Previous results are kept until the new attempt settles.
func (s FetchState) Reload() FetchState {
	s.IsLoading = true
	s.Err = nil
	return s
}
