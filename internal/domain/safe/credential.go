package safe

import "strings"

// CredentialLength is the number of digits of the safe password.
const CredentialLength = 3

// Credential is the password programmed into the safe.
// Empty slots hold KeyNone. It is a value type: copies never share storage.
type Credential [CredentialLength]Key

// With returns a copy of the credential with the slot at index set to key.
func (c Credential) With(index int, key Key) Credential {
	c[index] = key

	return c
}

// Matches reports whether key is the digit stored at index.
// An empty slot never matches.
func (c Credential) Matches(index int, key Key) bool {
	return key.IsDigit() && c[index] == key
}

// IsEmpty reports whether no digit has been programmed yet.
func (c Credential) IsEmpty() bool {
	return c == Credential{}
}

// IsComplete reports whether every slot holds a digit.
func (c Credential) IsComplete() bool {
	for _, key := range c {
		if !key.IsDigit() {
			return false
		}
	}

	return true
}

// String masks the credential: "*" for a programmed slot, "-" for an empty one.
func (c Credential) String() string {
	var b strings.Builder

	for _, key := range c {
		if key.IsDigit() {
			b.WriteByte('*')
		} else {
			b.WriteByte('-')
		}
	}

	return b.String()
}
