package shop

// Snapshot is what one request observes of a mounted view: the view's ID,
// the filter its current attempt was issued for, and the fetch state.
//
// Filter can differ from the filter a request asked for when the view does
// not refetch on filter changes.
type Snapshot struct {
	ViewID string
	Filter Filter
	State  FetchState
}
