package util

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

var (
	ErrPasswordMismatch = errors.New("invalid password")
	ErrMalformedHash    = errors.New("malformed argon2id hash")
)

// Params são os parâmetros do Argon2id.
type Params struct {
	SaltLength  uint32
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	KeyLength   uint32
}

// DefaultParams: salt de 128 bits, 64 MB de memória, 3 iterações, 2 threads e chave de 256 bits.
var DefaultParams = Params{
	SaltLength:  16,
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 2,
	KeyLength:   32,
}

// Password define o contrato para hash e comparação de senhas.
type Password interface {
	Hash(password string) (string, error)
	Compare(encodedHash, password string) error
}

// argon2Password é a implementação concreta da interface Password.
type argon2Password struct {
	params Params
}

// Variáveis para o padrão Singleton
var (
	passwordInstance Password
	once             sync.Once
)

func NewArgon2Password(p Params) Password {
	return &argon2Password{params: p}
}

// UsePassword retorna a instância única (Singleton) com DefaultParams.
func UsePassword() Password {
	once.Do(func() {
		passwordInstance = NewArgon2Password(DefaultParams)
	})
	return passwordInstance
}

// Hash gera um hash Argon2id no formato PHC a partir da senha.
func (p *argon2Password) Hash(password string) (string, error) {
	salt := make([]byte, p.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, p.params.Iterations, p.params.Memory, p.params.Parallelism, p.params.KeyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.params.Memory, p.params.Iterations, p.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))

	return encoded, nil
}

// Compare verifica se a senha corresponde ao hash Argon2id fornecido. Os
// parâmetros são lidos do próprio hash, então hashes antigos continuam válidos.
func (p *argon2Password) Compare(encodedHash, password string) error {
	h, err := decodeHash(encodedHash)
	if err != nil {
		return err
	}

	computed := argon2.IDKey([]byte(password), h.salt, h.params.Iterations, h.params.Memory, h.params.Parallelism, uint32(len(h.key)))
	if subtle.ConstantTimeCompare(h.key, computed) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

// maxMemory limita o custo de um hash adulterado no banco (1 GB).
const maxMemory = 1024 * 1024

type decodedHash struct {
	params Params
	salt   []byte
	key    []byte
}

// decodeHash lê o formato $argon2id$v=19$m=..,t=..,p=..$salt$key.
func decodeHash(encoded string) (decodedHash, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return decodedHash{}, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return decodedHash{}, fmt.Errorf("%w: unsupported version %q", ErrMalformedHash, parts[2])
	}

	var h decodedHash
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &h.params.Memory, &h.params.Iterations, &h.params.Parallelism); err != nil {
		return decodedHash{}, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	if h.params.Memory == 0 || h.params.Memory > maxMemory || h.params.Iterations == 0 || h.params.Parallelism == 0 {
		return decodedHash{}, fmt.Errorf("%w: parameters out of range", ErrMalformedHash)
	}

	var err error
	if h.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return decodedHash{}, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	if h.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(h.key) == 0 {
		return decodedHash{}, fmt.Errorf("%w: key", ErrMalformedHash)
	}
	h.params.SaltLength = uint32(len(h.salt))
	h.params.KeyLength = uint32(len(h.key))
	return h, nil
}
