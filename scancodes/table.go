// Package scancodes maps Set 1 (IBM PC XT) keyboard scancodes to the
// printable characters they type.
package scancodes

// ReleaseMask is set on the scancode byte when a key is released; the
// low 7 bits keep the key identity.
const ReleaseMask = 0x80

// LeftAlt is the make code for the left Alt key.
const LeftAlt = 0x38

// Unknown is returned for any code outside the mapped rows.
const Unknown = '?'

// Contiguous make-code rows.
// http://www.win.tue.nl/~aeb/linux/kbd/scancodes-1.html#ss1.4
var rows = []struct {
	base  byte
	chars string
}{
	{0x02, "1234567890"},
	{0x10, "qwertyuiop"},
	{0x1e, "asdfghjkl"},
	{0x2c, "zxcvbnm"},
	{0x1c, "\n"},
	{0x39, " "},
}

var table [128]byte

func init() {
	for i := range table {
		table[i] = Unknown
	}
	for _, r := range rows {
		copy(table[r.base:], r.chars)
	}
}

// Translate returns the character typed by a scancode, ignoring the
// release bit. Codes outside the mapped rows yield Unknown. Total over
// the full byte domain.
func Translate(code byte) byte {
	return table[code&^ReleaseMask]
}

// IsRelease reports whether a scancode is a key-release (break) code.
func IsRelease(code byte) bool {
	return code&ReleaseMask != 0
}

// ForChar returns the make code typing ch, or 0 if no row contains it.
func ForChar(ch byte) byte {
	for _, r := range rows {
		for i := 0; i < len(r.chars); i++ {
			if r.chars[i] == ch {
				return r.base + byte(i)
			}
		}
	}
	return 0
}
