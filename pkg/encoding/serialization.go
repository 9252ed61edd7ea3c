package encoding

import "encoding/json"

// Serializable provides a clean, simple interface for serializing and deserializing values.
type Serializable interface {
	Serialize() ([]byte, error)
	Deserialize([]byte) error
}

// Encode is the JSON form used for state values.
func Encode[T any](v T) ([]byte, error) {
	return json.Marshal(v)
}

// DecodeInto replaces *dst with the value decoded from data. *dst is left
// unchanged on error.
func DecodeInto[T any](data []byte, dst *T) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*dst = v
	return nil
}
