// Package cryptox implements the symmetric cipher used for vault storage.
//
// Blobs are standard base64 text of IV || AES-256-CBC(padded plaintext). The
// AES key is the SHA-256 digest of the key string, a fresh IV is generated for
// every call, and the trailing byte of the padded plaintext encodes the
// padding length, which Decrypt validates.
package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrIntegrity is returned by Decrypt when a blob is malformed, truncated, or
// fails the padding check after decryption (wrong key or corrupted data).
var ErrIntegrity = errors.New("cipher integrity check failed")

// randRead is a seam for tests.
var randRead = rand.Read

func deriveKey(key string) []byte {
	sum := sha256.Sum256([]byte(key))
	return sum[:]
}

// Encrypt encrypts plaintext under key and returns a base64 blob.
//
// Example:
//
//	blob, err := Encrypt("secret", "line one\nline two")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	text, err := Decrypt("secret", blob) // "line one\nline two"
func Encrypt(key, plaintext string) (string, error) {
	block, err := aes.NewCipher(deriveKey(key))
	if err != nil {
		return "", err
	}

	padding := aes.BlockSize - len(plaintext)%aes.BlockSize
	padded := make([]byte, 0, len(plaintext)+padding)
	padded = append(padded, plaintext...)
	padded = append(padded, bytes.Repeat([]byte{byte(padding)}, padding)...)

	data := make([]byte, aes.BlockSize+len(padded))
	iv := data[:aes.BlockSize]
	if _, err := randRead(iv); err != nil {
		return "", fmt.Errorf("iv generation error: %w", err)
	}

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(data[aes.BlockSize:], padded)

	return base64.StdEncoding.EncodeToString(data), nil
}

// Decrypt reverses Encrypt. Any failure to decode, decrypt or validate the
// blob is reported as ErrIntegrity.
func Decrypt(key, blob string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", ErrIntegrity
	}
	if len(data) < 2*aes.BlockSize || len(data)%aes.BlockSize != 0 {
		return "", ErrIntegrity
	}

	block, err := aes.NewCipher(deriveKey(key))
	if err != nil {
		return "", err
	}

	iv, ciphertext := data[:aes.BlockSize], data[aes.BlockSize:]
	plain := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ciphertext)

	padding := int(plain[len(plain)-1])
	if padding == 0 || padding > aes.BlockSize {
		return "", ErrIntegrity
	}
	if !bytes.Equal(plain[len(plain)-padding:], bytes.Repeat([]byte{byte(padding)}, padding)) {
		return "", ErrIntegrity
	}

	plain = plain[:len(plain)-padding]
	if !utf8.Valid(plain) {
		return "", ErrIntegrity
	}
	return string(plain), nil
}
