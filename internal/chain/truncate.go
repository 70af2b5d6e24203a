package chain

// DisplayHead and DisplayTail are the character counts kept by Truncate for addresses.
const (
	DisplayHead = 8
	DisplayTail = 8
)

// Truncate shortens text to its first head and last tail characters joined by "...".
// Text that already fits is returned unchanged.
func Truncate(text string, head, tail int) string {
	runes := []rune(text)
	if head < 0 || tail < 0 || len(runes) <= head+tail {
		return text
	}
	return string(runes[:head]) + "..." + string(runes[len(runes)-tail:])
}

// DisplayAddress truncates an address for display.
func DisplayAddress(address string) string {
	return Truncate(address, DisplayHead, DisplayTail)
}
