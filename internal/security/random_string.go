package security

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
)

const (
	upperAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	lowerAlphabet = "abcdefghijkmnopqrstuvwxyz"
	digitAlphabet = "23456789"

	// PasswordAlphabet skips look-alike characters (0/O, 1/l/I).
	PasswordAlphabet = upperAlphabet + lowerAlphabet + digitAlphabet

	minTemporaryPasswordLength = 8
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns an unbiased string drawn from crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	return randomStringFrom(rand.Reader, length, alphabet)
}

// TemporaryPassword returns a random password of at least eight characters containing an upper
// case letter, a lower case letter and a digit.
func TemporaryPassword(length int) (string, error) {
	return temporaryPasswordFrom(rand.Reader, length)
}

func temporaryPasswordFrom(source io.Reader, length int) (string, error) {
	if length < minTemporaryPasswordLength {
		length = minTemporaryPasswordLength
	}

	value := make([]byte, 0, length)
	for _, alphabet := range []string{upperAlphabet, lowerAlphabet, digitAlphabet} {
		char, err := randomStringFrom(source, 1, alphabet)
		if err != nil {
			return "", err
		}
		value = append(value, char...)
	}
	rest, err := randomStringFrom(source, length-len(value), PasswordAlphabet)
	if err != nil {
		return "", err
	}
	value = append(value, rest...)

	// Fisher-Yates so the guaranteed classes do not sit at fixed positions.
	for index := len(value) - 1; index > 0; index-- {
		position, err := rand.Int(source, big.NewInt(int64(index+1)))
		if err != nil {
			return "", err
		}
		swap := position.Int64()
		value[index], value[swap] = value[swap], value[index]
	}
	return string(value), nil
}

func randomStringFrom(source io.Reader, length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(source, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}
	return string(value), nil
}
