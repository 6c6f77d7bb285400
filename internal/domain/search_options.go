package domain

// SearchOptions filters the task list for the find command. Nil fields do
// not filter.
type SearchOptions struct {
	Keyword     *string
	Kind        *Kind
	Done        *bool
	MinPriority *Priority
}

// IsEmpty reports whether no filter is set.
func (o SearchOptions) IsEmpty() bool {
	return (o.Keyword == nil || *o.Keyword == "") && o.Kind == nil && o.Done == nil && o.MinPriority == nil
}
