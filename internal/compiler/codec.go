package compiler

import (
	"encoding/json"
	"time"

	"github.com/recordkit/schemac/internal/errors"
)

// Codec translates between a native in-memory value and its stored textual
// representation. Codecs are only attached to columns in native mode; a model
// built for transmission as plain JSON carries none.
type Codec struct {
	Encode func(value interface{}) (string, error)
	Decode func(stored string) (interface{}, error)
}

// dateLayout is the ISO-8601 representation dates are stored under.
const dateLayout = time.RFC3339Nano

// DateCodec encodes a time.Time to an ISO-8601 string in UTC and decodes it
// back. Encode-then-decode returns a time equal to the original instant.
func DateCodec() *Codec {
	return &Codec{
		Encode: func(value interface{}) (string, error) {
			t, ok := value.(time.Time)
			if !ok {
				return "", errors.Newf(errors.ErrTypeInvalidDefault, "date value must be a time.Time, got %T", value)
			}

			return t.UTC().Format(dateLayout), nil
		},
		Decode: func(stored string) (interface{}, error) {
			t, err := time.Parse(dateLayout, stored)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrTypeSerialization, "stored date %q is not ISO-8601", stored)
			}

			return t, nil
		},
	}
}

// JSONCodec serializes a value to its JSON text on write and parses the text
// back on read.
func JSONCodec() *Codec {
	return &Codec{
		Encode: func(value interface{}) (string, error) {
			data, err := json.Marshal(value)
			if err != nil {
				return "", errors.Wrap(err, errors.ErrTypeSerialization, "value is not JSON-serializable")
			}

			return string(data), nil
		},
		Decode: func(stored string) (interface{}, error) {
			var value interface{}
			if err := json.Unmarshal([]byte(stored), &value); err != nil {
				return nil, errors.Wrap(err, errors.ErrTypeSerialization, "stored value is not valid JSON")
			}

			return value, nil
		},
	}
}
