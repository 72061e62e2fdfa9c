package enums

import "fmt"

// DraftStatus tracks whether an order draft is still editable or handed off.
type DraftStatus string

const (
	DraftStatusDraft     DraftStatus = "draft"
	DraftStatusSubmitted DraftStatus = "submitted"
)

var validDraftStatuses = []DraftStatus{
	DraftStatusDraft,
	DraftStatusSubmitted,
}

// String implements fmt.Stringer.
func (d DraftStatus) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DraftStatus.
func (d DraftStatus) IsValid() bool {
	for _, candidate := range validDraftStatuses {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDraftStatus converts raw input into a DraftStatus.
func ParseDraftStatus(value string) (DraftStatus, error) {
	for _, candidate := range validDraftStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid draft status %q", value)
}
