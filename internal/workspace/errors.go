package workspace

import "errors"

var (
	ErrLocationNotFound     = errors.New("location not found")
	ErrEmptyInput           = errors.New("nothing to import")
	ErrNothingExtracted     = errors.New("no entries extracted")
	ErrNoneGeocoded         = errors.New("no entries could be geocoded")
	ErrClientNotFound       = errors.New("client not found")
	ErrConfirmationRequired = errors.New("delete requires confirmation")
	ErrInvalidEntry         = errors.New("name and address are required")
	ErrBusy                 = errors.New("operation already in progress")
)

var userMessages = map[error]string{
	ErrLocationNotFound:     "Could not find location.",
	ErrEmptyInput:           "Paste a list of entries to import.",
	ErrNothingExtracted:     "AI couldn't find any entries. Try: 'School Name: Address'",
	ErrNoneGeocoded:         "Failed to geocode any addresses from the list.",
	ErrClientNotFound:       "That entry no longer exists.",
	ErrConfirmationRequired: "Please confirm before deleting this entry.",
	ErrInvalidEntry:         "Name and address are required.",
	ErrBusy:                 "Please wait for the current request to finish.",
}

// UserMessage returns the alert text shown for err.
func UserMessage(err error) string {
	for target, msg := range userMessages {
		if errors.Is(err, target) {
			return msg
		}
	}
	return "Something went wrong. Please try again."
}
