package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// TokenCipher OAuth Token 的对称加解密
// 密文格式: base64url(nonce) + "." + base64url(ciphertext)，均不带填充符
//
// 历史包袱：早期版本密钥太短时会静默退化成明文存储。现在改为在构造时直接
// 拒绝弱密钥，宁可起不来也不要假装加密了。
type TokenCipher struct {
	aead cipher.AEAD
}

// MinSecretLength 密钥最小长度（字节）
const MinSecretLength = 16

var ErrWeakSecret = errors.New("encryption secret too short")

// NewTokenCipher 创建加解密器
// 密钥通过 SHA-256 归一化成 AES-256 所需的 32 字节
func NewTokenCipher(secret string) (*TokenCipher, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need at least %d bytes", ErrWeakSecret, MinSecretLength)
	}

	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &TokenCipher{aead: aead}, nil
}

// Encrypt 加密，返回 iv.ciphertext 形式的字符串
func (c *TokenCipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(nonce) + "." +
		base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt 解密
// wasEncrypted=false 表示历史明文数据，原样返回（兼容迁移期）
func (c *TokenCipher) Decrypt(value string, wasEncrypted bool) (string, error) {
	if !wasEncrypted {
		return value, nil
	}

	// 按第一个 "." 拆分 iv 和密文
	idx := strings.Index(value, ".")
	if idx <= 0 {
		return "", errors.New("malformed ciphertext: missing separator")
	}

	nonce, err := base64.RawURLEncoding.DecodeString(value[:idx])
	if err != nil {
		return "", fmt.Errorf("decode nonce: %w", err)
	}
	sealed, err := base64.RawURLEncoding.DecodeString(value[idx+1:])
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}
	if len(nonce) != c.aead.NonceSize() {
		return "", errors.New("malformed ciphertext: bad nonce size")
	}

	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt failed: %w", err)
	}
	return string(plain), nil
}
