// Package password generates random passwords.
package password

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Character sets.
const (
	Lower   = "abcdefghijklmnopqrstuvwxyz"
	Upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits  = "0123456789"
	Symbols = "!@#$%^&*()-_=+[]{};:,.?"
)

// DefaultLength is the length used when Options.Length is zero.
const DefaultLength = 16

var (
	ErrNoCharset     = errors.New("no character set enabled")
	ErrInvalidLength = errors.New("invalid password length")
)

// Options selects the length and character sets.
type Options struct {
	Length  int
	Lower   bool
	Upper   bool
	Digits  bool
	Symbols bool
}

// DefaultOptions enables every set at DefaultLength.
func DefaultOptions() Options {
	return Options{Length: DefaultLength, Lower: true, Upper: true, Digits: true, Symbols: true}
}

func (o Options) sets() []string {
	var sets []string
	if o.Lower {
		sets = append(sets, Lower)
	}
	if o.Upper {
		sets = append(sets, Upper)
	}
	if o.Digits {
		sets = append(sets, Digits)
	}
	if o.Symbols {
		sets = append(sets, Symbols)
	}
	return sets
}

// Generate returns a password containing at least one character from each
// enabled set.
func Generate(o Options) (string, error) {
	if o.Length == 0 {
		o.Length = DefaultLength
	}
	sets := o.sets()
	if len(sets) == 0 {
		return "", ErrNoCharset
	}
	if o.Length < len(sets) {
		return "", fmt.Errorf("%w: %d is shorter than the %d enabled character sets", ErrInvalidLength, o.Length, len(sets))
	}

	out := make([]byte, 0, o.Length)
	for _, set := range sets {
		c, err := pick(set)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	all := strings.Join(sets, "")
	for len(out) < o.Length {
		c, err := pick(all)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	if err := shuffle(out); err != nil {
		return "", err
	}
	return string(out), nil
}

func randInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}
	return int(v.Int64()), nil
}

func pick(set string) (byte, error) {
	i, err := randInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

// shuffle is a Fisher-Yates shuffle over the secure source.
func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := randInt(i + 1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}
