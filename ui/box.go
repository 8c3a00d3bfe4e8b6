package ui

// BoxChars holds the characters used to draw dialog frames
type BoxChars struct {
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string
	Horizontal  string
	Vertical    string
	TeeLeft     string
	TeeRight    string
	Close       string // Title bar close control
}

// UnicodeBox uses light box-drawing characters
var UnicodeBox = BoxChars{
	TopLeft:     "┌",
	TopRight:    "┐",
	BottomLeft:  "└",
	BottomRight: "┘",
	Horizontal:  "─",
	Vertical:    "│",
	TeeLeft:     "├",
	TeeRight:    "┤",
	Close:       "[×]",
}

// ASCIIBox is for terminals without UTF-8
var ASCIIBox = BoxChars{
	TopLeft:     "+",
	TopRight:    "+",
	BottomLeft:  "+",
	BottomRight: "+",
	Horizontal:  "-",
	Vertical:    "|",
	TeeLeft:     "+",
	TeeRight:    "+",
	Close:       "[x]",
}

// GetBoxChars picks the character set
func GetBoxChars(ascii bool) BoxChars {
	if ascii {
		return ASCIIBox
	}
	return UnicodeBox
}
