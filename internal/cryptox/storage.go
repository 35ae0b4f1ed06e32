package cryptox

import "strconv"

// StorageCipher seals vault storage in two layers: the inner layer is keyed
// by the community owner's id, the outer layer by the process-wide secret.
// Both layers must open, in reverse order, for a payload to be readable.
type StorageCipher struct {
	secretKey string
	ownerKey  string
}

// NewStorageCipher returns a cipher for one community owner.
func NewStorageCipher(secretKey string, ownerID int64) *StorageCipher {
	return &StorageCipher{secretKey: secretKey, ownerKey: strconv.FormatInt(ownerID, 10)}
}

// Seal encrypts text with the owner key, then with the secret key.
func (c *StorageCipher) Seal(text string) (string, error) {
	inner, err := Encrypt(c.ownerKey, text)
	if err != nil {
		return "", err
	}
	return Encrypt(c.secretKey, inner)
}

// Open decrypts a sealed payload. A failure in either layer yields ErrIntegrity.
func (c *StorageCipher) Open(sealed string) (string, error) {
	inner, err := Decrypt(c.secretKey, sealed)
	if err != nil {
		return "", err
	}
	return Decrypt(c.ownerKey, inner)
}

// Wipe overwrites b with zeros. It is used for key material read from a
// terminal. A nil slice is ignored.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
