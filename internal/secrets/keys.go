package secrets

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"time"

	kerrors "github.com/kauri-framework/kauri/internal/errors"

	"golang.org/x/crypto/ssh"
)

// RSAKeyPair holds a generated signing key pair in PEM form, plus the key id
// services publish alongside the public key (e.g. in a JWKS endpoint).
type RSAKeyPair struct {
	PrivateKeyPEM string
	PublicKeyPEM  string
	KeyID         string
}

// GenerateRSAKeyPair creates a 2048-bit RSA signing key pair. The private
// key is PKCS8/PEM, the public key SPKI/PEM, and the key id is the
// generation date with a constant "-key-1" suffix.
func GenerateRSAKeyPair() (*RSAKeyPair, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA key pair: %w", err)
	}

	return encodeKeyPair(privateKey, time.Now())
}

// ParseSigningKey parses an RSA private key from PEM data. PKCS8, PKCS1, and
// OpenSSH private key formats are accepted, so operators can bring keys
// minted by openssl or ssh-keygen.
func ParseSigningKey(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block: %w", kerrors.ErrInvalidSigningKey)
	}

	switch block.Type {
	case "PRIVATE KEY":
		parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PKCS8 private key: %w", kerrors.ErrInvalidSigningKey)
		}
		rsaKey, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("not an RSA private key: %w", kerrors.ErrInvalidSigningKey)
		}
		return rsaKey, nil

	case "RSA PRIVATE KEY":
		rsaKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PKCS1 private key: %w", kerrors.ErrInvalidSigningKey)
		}
		return rsaKey, nil

	case "OPENSSH PRIVATE KEY":
		parsed, err := ssh.ParseRawPrivateKey(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse OpenSSH private key: %w", kerrors.ErrInvalidSigningKey)
		}
		rsaKey, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("not an RSA private key: %w", kerrors.ErrInvalidSigningKey)
		}
		return rsaKey, nil

	default:
		return nil, fmt.Errorf("unsupported PEM block type %q: %w", block.Type, kerrors.ErrInvalidSigningKey)
	}
}

// ImportSigningKey re-encodes an externally-supplied private key into the
// canonical PKCS8/SPKI PEM pair used by the framework file, minting a key id
// for today. The imported key is preserve-marked from then on.
func ImportSigningKey(data []byte) (*RSAKeyPair, error) {
	privateKey, err := ParseSigningKey(data)
	if err != nil {
		return nil, err
	}

	return encodeKeyPair(privateKey, time.Now())
}

func encodeKeyPair(privateKey *rsa.PrivateKey, now time.Time) (*RSAKeyPair, error) {
	privateBytes, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encode private key: %w", err)
	}

	publicBytes, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encode public key: %w", err)
	}

	privatePEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privateBytes})
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicBytes})

	return &RSAKeyPair{
		PrivateKeyPEM: string(privatePEM),
		PublicKeyPEM:  string(publicPEM),
		KeyID:         keyIDForDate(now),
	}, nil
}
