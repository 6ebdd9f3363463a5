package growthbook

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrCryptoInvalidEncryptedFormat = errors.New("crypto: encrypted data is in invalid format")
	ErrCryptoInvalidIVLength        = errors.New("crypto: invalid IV length")
	ErrCryptoInvalidPadding         = errors.New("crypto: invalid padding")
	ErrCryptoInvalidPlainText       = errors.New("crypto: plain text is not valid UTF-8")
)

// decrypt decodes an "<base64 iv>.<base64 ciphertext>" payload and
// decrypts it with AES-CBC using the base64-encoded key.
func decrypt(encrypted string, encKey string) (string, error) {
	key, err := base64.StdEncoding.DecodeString(encKey)
	if err != nil {
		return "", err
	}

	iv, cipherText, ok := strings.Cut(encrypted, ".")
	if !ok {
		return "", ErrCryptoInvalidEncryptedFormat
	}

	ivBytes, err := base64.StdEncoding.DecodeString(iv)
	if err != nil {
		return "", err
	}

	buf, err := base64.StdEncoding.DecodeString(cipherText)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	if len(ivBytes) != block.BlockSize() {
		return "", ErrCryptoInvalidIVLength
	}
	if len(buf)%block.BlockSize() != 0 {
		return "", ErrCryptoInvalidEncryptedFormat
	}

	mode := cipher.NewCBCDecrypter(block, ivBytes)
	mode.CryptBlocks(buf, buf)

	buf, err = unpad(buf)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(buf) {
		return "", ErrCryptoInvalidPlainText
	}

	return string(buf), nil
}

// Remove PKCS #7 padding.
func unpad(buf []byte) ([]byte, error) {
	bufLen := len(buf)
	if bufLen == 0 {
		return nil, ErrCryptoInvalidPadding
	}

	pad := buf[bufLen-1]
	if pad == 0 {
		return nil, ErrCryptoInvalidPadding
	}

	padLen := int(pad)
	if padLen > bufLen || padLen > aes.BlockSize {
		return nil, ErrCryptoInvalidPadding
	}

	for _, v := range buf[bufLen-padLen : bufLen-1] {
		if v != pad {
			return nil, ErrCryptoInvalidPadding
		}
	}

	return buf[:bufLen-padLen], nil
}
