package axon

// Tag is the first character of a line identifying the message family.
type Tag byte

// Tags
const (
	TagUnknown   Tag = 0
	TagHandshake Tag = 'H'
	TagCommand   Tag = 'C'
	TagInit      Tag = 'I'
	TagRecord    Tag = 'R'
	TagState     Tag = 'S'
)

// String implements fmt.Stringer.
func (t Tag) String() string {
	if t == TagUnknown {
		return "unknown"
	}
	return string(rune(t))
}

// Classify tells the family of a received line.
// Only handshake and command lines are ever received by a device,
// everything else is TagUnknown.
func Classify(line string) Tag {
	if len(line) == 0 {
		return TagUnknown
	}
	switch t := Tag(line[0]); t {
	case TagHandshake, TagCommand:
		return t
	}
	return TagUnknown
}

// IsHandshake checks if a line is a handshake.
func IsHandshake(line string) bool {
	return Classify(line) == TagHandshake
}

// IsCommand checks if a line is a command.
func IsCommand(line string) bool {
	return Classify(line) == TagCommand
}
