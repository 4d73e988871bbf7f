package helpers

import (
	"math/rand"
	"strconv"
)

// GenerateOTP returns a random 6-digit numeric code as a string.
func GenerateOTP() string {
	return strconv.Itoa(rand.Intn(900000) + 100000)
}
