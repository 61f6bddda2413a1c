package seqkit

import "unicode/utf8"

// String adapts a string into a sequence of one-character strings.
// A character is a rune, so multi-byte UTF-8 characters are kept whole.
//
//	seqkit.String("fo0") // "f", "o", "0"
func String(s string) Sequence[string] {
	return stringSeq(s)
}

// Runes adapts a string into a sequence of its characters.
func Runes(s string) Sequence[rune] {
	return runeSeq(s)
}

type stringSeq string

func (s stringSeq) Len() int { return utf8.RuneCountInString(string(s)) }

func (s stringSeq) Iterator() Iterator[string] {
	return &stringIter{runes: runeIter{str: string(s)}}
}

func (s stringSeq) String() string { return string(s) }

type runeSeq string

func (s runeSeq) Len() int { return utf8.RuneCountInString(string(s)) }

func (s runeSeq) Iterator() Iterator[rune] {
	return &runeIter{str: string(s)}
}

type runeIter struct {
	str    string
	offset int
	closed bool
}

func (i *runeIter) HasNext() bool {
	return !i.closed && i.offset < len(i.str)
}

func (i *runeIter) Next() (rune, error) {
	if !i.HasNext() {
		return 0, ErrExhausted
	}
	r, size := utf8.DecodeRuneInString(i.str[i.offset:])
	i.offset += size
	return r, nil
}

func (i *runeIter) Err() error { return nil }

func (i *runeIter) Close() error {
	i.closed = true
	return nil
}

type stringIter struct {
	runes runeIter
}

func (i *stringIter) HasNext() bool { return i.runes.HasNext() }

func (i *stringIter) Next() (string, error) {
	r, err := i.runes.Next()
	if err != nil {
		return "", err
	}
	return string(r), nil
}

func (i *stringIter) Err() error { return nil }

func (i *stringIter) Close() error { return i.runes.Close() }
