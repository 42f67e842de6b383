package wherelib

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

// At-rest envelope layout: magic || salt || nonce || AES-256-GCM
// ciphertext. The key is derived from the configured passphrase with
// scrypt; a fresh salt is generated on every write, so two saves of the
// same document never produce the same bytes.
const (
	envelopeMagic   = "WACHE1"
	envelopeSaltLen = 16

	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
)

type envelope struct {
	passphrase string
}

func newEnvelope(passphrase string) *envelope {
	return &envelope{passphrase: passphrase}
}

func (e *envelope) aead(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(e.passphrase), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot derive a key: %v", ErrCacheEncryption, err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheEncryption, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheEncryption, err)
	}

	return aead, nil
}

func (e *envelope) seal(plaintext []byte) ([]byte, error) {
	salt := make([]byte, envelopeSaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("%w: cannot generate a salt: %v", ErrCacheEncryption, err)
	}

	aead, err := e.aead(salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("%w: cannot generate a nonce: %v", ErrCacheEncryption, err)
	}

	out := make([]byte, 0,
		len(envelopeMagic)+len(salt)+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, envelopeMagic...)
	out = append(out, salt...)
	out = append(out, nonce...)

	return aead.Seal(out, nonce, plaintext, nil), nil
}

func (e *envelope) open(raw []byte) ([]byte, error) {
	if len(raw) < len(envelopeMagic)+envelopeSaltLen ||
		string(raw[:len(envelopeMagic)]) != envelopeMagic {
		return nil, fmt.Errorf("%w: missing envelope header", ErrCacheEncryption)
	}

	raw = raw[len(envelopeMagic):]
	salt := raw[:envelopeSaltLen]
	raw = raw[envelopeSaltLen:]

	aead, err := e.aead(salt)
	if err != nil {
		return nil, err
	}

	if len(raw) < aead.NonceSize() {
		return nil, fmt.Errorf("%w: truncated envelope", ErrCacheEncryption)
	}

	plaintext, err := aead.Open(nil, raw[:aead.NonceSize()], raw[aead.NonceSize():], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheEncryption, err)
	}

	return plaintext, nil
}
