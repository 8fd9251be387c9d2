package fileread

// Span is a contiguous byte range [Off, Off+Len).
type Span struct {
	Off int64
	Len int64
}

func (s Span) End() int64 { return s.Off + s.Len }

// Partition splits [0, size) into n contiguous spans of size/n bytes; the
// last span absorbs the remainder. n < 1 is treated as 1.
func Partition(size int64, n int) []Span {
	if n < 1 {
		n = 1
	}
	chunk := size / int64(n)
	spans := make([]Span, n)
	for i := range spans {
		off := int64(i) * chunk
		spans[i] = Span{Off: off, Len: chunk}
	}
	last := &spans[n-1]
	last.Len = size - last.Off
	return spans
}
