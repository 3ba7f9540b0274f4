package vault

import (
	"bytes"
	"encoding/json"
)

// SecretAction is what an update does to a stored secret
type SecretAction int

const (
	SecretUnchanged SecretAction = iota
	SecretClear
	SecretSet
)

// SecretUpdate is the three-state secret input accepted at the API boundary.
// The zero value (field absent from the payload) leaves the secret unchanged.
type SecretUpdate struct {
	Action SecretAction
	Value  string
}

// ParseSecretUpdate maps a raw wire value to a SecretUpdate:
// masked sentinel keeps the stored value, nil or "" clears it, anything else replaces it.
func ParseSecretUpdate(raw *string) SecretUpdate {
	switch {
	case raw == nil || *raw == "":
		return SecretUpdate{Action: SecretClear}
	case *raw == MaskedSentinel:
		return SecretUpdate{Action: SecretUnchanged}
	default:
		return SecretUpdate{Action: SecretSet, Value: *raw}
	}
}

// UnmarshalJSON distinguishes an explicit null (clear) from an absent field (unchanged).
func (u *SecretUpdate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*u = ParseSecretUpdate(nil)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = ParseSecretUpdate(&raw)
	return nil
}

// Apply returns the value to store given the current ciphertext
func (u SecretUpdate) Apply(codec Codec, current *string) (*string, error) {
	switch u.Action {
	case SecretClear:
		return nil, nil
	case SecretSet:
		encrypted, err := codec.Encrypt(u.Value)
		if err != nil {
			return current, err
		}
		return &encrypted, nil
	default:
		return current, nil
	}
}
