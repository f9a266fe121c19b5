package trading

import "math/rand"

var idChars = []rune("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// randomID builds an n-character alphanumeric id for algo orders.
func randomID(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = idChars[rand.Intn(len(idChars))]
	}
	return string(b)
}
