package shop

// ErrorPolicy selects how a failed fetch is presented.
type ErrorPolicy string

const (
	// ErrorPolicyInline shows an error banner above an empty grid.
	ErrorPolicyInline ErrorPolicy = "inline"
	// ErrorPolicyBlank shows nothing but the empty grid.
	ErrorPolicyBlank ErrorPolicy = "blank"
)

// IsValid returns true if the policy is one of the defined constants.
func (p ErrorPolicy) IsValid() bool {
	switch p {
	case ErrorPolicyInline, ErrorPolicyBlank:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (p ErrorPolicy) String() string {
	return string(p)
}

// ShowError reports whether s should render its error under this policy.
func (p ErrorPolicy) ShowError(s FetchState) bool {
	return p == ErrorPolicyInline && s.Failed()
}
