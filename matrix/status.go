// Package matrix holds the character matrix model the dialogs collect notes for:
// taxa, characters and their states, cell status codes and the notebook
// that stores what users write.
package matrix

import "strconv"

// StatusCode classifies a cell note
type StatusCode int

// Default status codes
const (
	Unscored StatusCode = -1
	Scored   StatusCode = 0
	NPA      StatusCode = 1 // Not presently applicable
)

// StatusOption pairs a display name with its status code
type StatusOption struct {
	Name string
	Code StatusCode
}

// DefaultStatusOptions returns the built-in status options in display order
func DefaultStatusOptions() []StatusOption {
	return []StatusOption{
		{Name: "Unscored", Code: Unscored},
		{Name: "Scored", Code: Scored},
		{Name: "NPA", Code: NPA},
	}
}

// String returns the default name for the code, or the number itself
func (c StatusCode) String() string {
	for _, opt := range DefaultStatusOptions() {
		if opt.Code == c {
			return opt.Name
		}
	}
	return strconv.Itoa(int(c))
}

// NameFor looks up the display name of code in opts
func NameFor(opts []StatusOption, code StatusCode) string {
	for _, opt := range opts {
		if opt.Code == code {
			return opt.Name
		}
	}
	return code.String()
}
