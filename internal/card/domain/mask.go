package domain

import (
	"strings"
	"unicode/utf8"
)

const maskGroup = "****"

// Mask returns the display form of a card number, for example
// "0123456789012345" becomes "**** **** **** 2345".
func Mask(number string) (string, error) {
	if utf8.RuneCountInString(number) != NumberLength {
		return "", ErrInvalidCardNumber
	}

	runes := []rune(number)
	return strings.Join(
		[]string{maskGroup, maskGroup, maskGroup, string(runes[NumberLength-4:])},
		" ",
	), nil
}
