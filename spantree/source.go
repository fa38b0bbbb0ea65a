package spantree

import (
	"sort"
	"unicode/utf8"
)

// Source indexes a document by UTF-16 code units.
type Source struct {
	text string
	// bytes[i] is the byte offset of the rune that starts at UTF-16 offset
	// starts[i]. Both end with the document length.
	starts []int
	bytes  []int
}

// NewSource indexes text for conversion between UTF-16 offsets and byte
// offsets.
func NewSource(text string) Source {
	s := Source{
		text:   text,
		starts: make([]int, 0, len(text)+1),
		bytes:  make([]int, 0, len(text)+1),
	}
	u := 0
	for i, r := range text {
		s.starts = append(s.starts, u)
		s.bytes = append(s.bytes, i)
		u += runeLen16(r)
	}
	s.starts = append(s.starts, u)
	s.bytes = append(s.bytes, len(text))
	return s
}

func (s Source) Text() string { return s.text }

// Len returns the document length in UTF-16 code units.
func (s Source) Len() int {
	if len(s.starts) == 0 {
		return 0
	}
	return s.starts[len(s.starts)-1]
}

// Clamp clamps off into [0, Len] and rounds offsets that fall inside a
// surrogate pair down to the start of the pair.
func (s Source) Clamp(off int) int {
	if off <= 0 || len(s.starts) == 0 {
		return 0
	}
	if off >= s.Len() {
		return s.Len()
	}
	return s.starts[s.index(off)]
}

// ByteOffset converts a UTF-16 offset into a byte offset into Text.
func (s Source) ByteOffset(off int) int {
	if len(s.starts) == 0 || off <= 0 {
		return 0
	}
	if off >= s.Len() {
		return len(s.text)
	}
	return s.bytes[s.index(off)]
}

// Offset converts a byte offset into a UTF-16 offset. Byte offsets inside a
// multi-byte rune round down.
func (s Source) Offset(byteOff int) int {
	if len(s.bytes) == 0 || byteOff <= 0 {
		return 0
	}
	if byteOff >= len(s.text) {
		return s.Len()
	}
	i := sort.SearchInts(s.bytes, byteOff)
	if i < len(s.bytes) && s.bytes[i] == byteOff {
		return s.starts[i]
	}
	return s.starts[i-1]
}

// Slice returns the text in [start, end). Offsets are clamped and swapped
// when reversed.
func (s Source) Slice(start, end int) string {
	if end < start {
		start, end = end, start
	}
	return s.text[s.ByteOffset(start):s.ByteOffset(end)]
}

// SliceSpan is Slice over sp.
func (s Source) SliceSpan(sp Span) string {
	return s.Slice(sp.Start, sp.End)
}

// index returns the largest i with starts[i] <= off.
func (s Source) index(off int) int {
	i := sort.SearchInts(s.starts, off)
	if i < len(s.starts) && s.starts[i] == off {
		return i
	}
	return i - 1
}

// Len16 returns the UTF-16 length of str.
func Len16(str string) int {
	n := 0
	for _, r := range str {
		n += runeLen16(r)
	}
	return n
}

func runeLen16(r rune) int {
	if r >= 0x10000 && r <= utf8.MaxRune {
		return 2
	}
	return 1
}
