package sequence

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"seqentropy/internal/errors"
)

// Sequence is an ordered run of integer symbol codes. Only equality between
// codes is observed, so any int value (including negatives) is legal.
type Sequence []int

// Len returns the number of symbols
func (s Sequence) Len() int { return len(s) }

// Distinct returns the number of distinct symbol codes
func (s Sequence) Distinct() int {
	seen := make(map[int]struct{}, len(s))
	for _, c := range s {
		seen[c] = struct{}{}
	}
	return len(seen)
}

// Clone returns a copy that can be mutated without affecting s
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Relabel maps every code through mapping. Codes absent from mapping are kept.
func (s Sequence) Relabel(mapping map[int]int) Sequence {
	out := make(Sequence, len(s))
	for i, c := range s {
		if m, ok := mapping[c]; ok {
			out[i] = m
		} else {
			out[i] = c
		}
	}
	return out
}

// ParseTokens reads integer codes separated by whitespace and/or commas.
// Anything else is rejected with an INVALID_INPUT error.
func ParseTokens(text string) (Sequence, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
	seq := make(Sequence, 0, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.WithCode(errors.CodeInvalidInput,
				fmt.Errorf("token %d (%q) is not an integer symbol code", i, f))
		}
		seq = append(seq, v)
	}
	return seq, nil
}

// FromStrings converts already-split fields into codes
func FromStrings(fields []string) (Sequence, error) {
	seq := make(Sequence, 0, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.WithCode(errors.CodeInvalidInput,
				fmt.Errorf("field %d (%q) is not an integer symbol code", i, f))
		}
		seq = append(seq, v)
	}
	return seq, nil
}
