package compiler

import (
	"crypto/rand"
	"math/big"
)

// RecordIDLength is the length of generated primary key values.
const RecordIDLength = 12

// recordIDAlphabet keeps ids lowercase alphanumeric so they survive
// case-insensitive stores and URLs unchanged.
const recordIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewRecordID returns a random 12-character identifier for the implicit id
// column. Ids are generated at row-insertion time when the caller does not
// supply one, never at schema-compilation time.
func NewRecordID() string {
	max := big.NewInt(int64(len(recordIDAlphabet)))
	id := make([]byte, RecordIDLength)

	for i := range id {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// nothing sensible can continue past that.
			panic(err)
		}

		id[i] = recordIDAlphabet[n.Int64()]
	}

	return string(id)
}
