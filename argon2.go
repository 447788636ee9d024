// Package argon2 provides a pure-Go implementation of the Argon2
// password-hashing and key-derivation function, covering all three
// variants (Argon2d, Argon2i, Argon2id) and both format versions
// (1.0 and 1.3).
//
// Argon2 is memory-hard: deriving a key requires filling a large memory
// region with blocks that depend on each other through a
// multiplication-hardened Blake2b compression function, which makes
// large-scale hardware attacks expensive.
//
// Example usage:
//
//	params := argon2.Params{
//	    Time:    3,
//	    Memory:  64 * 1024, // 64 MiB
//	    Threads: 4,
//	    Mode:    argon2.Argon2id,
//	}
//	key, err := argon2.Key(password, salt, params, 32)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Reference: RFC 9106
package argon2

import (
	"errors"
	"fmt"

	"github.com/opd-ai/go-argon2/internal/core"
)

// Mode represents the Argon2 variant.
type Mode int

const (
	// Argon2d uses data-dependent memory addressing throughout. It gives
	// the strongest resistance to time-memory tradeoff attacks but is
	// vulnerable to memory-access side channels; suitable for
	// proof-of-work and server-side hashing on trusted hardware.
	Argon2d Mode = iota

	// Argon2i uses data-independent memory addressing throughout,
	// resisting side-channel attacks at the cost of weaker tradeoff
	// resistance.
	Argon2i

	// Argon2id is the hybrid recommended for password hashing: the first
	// half of the first pass is data-independent, everything after is
	// data-dependent.
	Argon2id
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case Argon2d:
		return "Argon2d"
	case Argon2i:
		return "Argon2i"
	case Argon2id:
		return "Argon2id"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Argon2 format versions.
const (
	// Version10 is format version 1.0 (0x10): later passes overwrite
	// blocks instead of XORing over them.
	Version10 = 0x10

	// Version13 is format version 1.3 (0x13), the current version.
	Version13 = 0x13

	// Version is the latest supported version, used when Params.Version
	// is left zero.
	Version = Version13
)

// Params specifies the cost and variant configuration for Key.
type Params struct {
	// Time is the number of passes over the memory region. Must be at
	// least 1; higher values slow down the computation proportionally.
	Time uint32

	// Memory is the memory cost in KiB. Must be at least 8*Threads. The
	// effective value is rounded down to a multiple of 4*Threads.
	Memory uint32

	// Threads is the lane count (parallelism). Lanes are filled by
	// concurrent goroutines, synchronized at slice boundaries.
	Threads uint8

	// Mode selects the Argon2 variant. The zero value is Argon2d,
	// matching the variant's wire-format type code.
	Mode Mode

	// Version selects the format version. Zero means Version (latest).
	Version uint32

	// Secret is an optional key (pepper) mixed into the initial hash.
	Secret []byte

	// Data is optional associated data mixed into the initial hash.
	Data []byte
}

// Validate checks if the parameters are usable.
func (p *Params) Validate() error {
	if p.Time < 1 {
		return errors.New("argon2: time cost must be at least 1")
	}

	if p.Threads < 1 {
		return errors.New("argon2: parallelism must be at least 1")
	}

	if p.Memory < 8*uint32(p.Threads) {
		return fmt.Errorf("argon2: memory cost must be at least 8*threads KiB (got %d, need %d)",
			p.Memory, 8*uint32(p.Threads))
	}

	if p.Mode != Argon2d && p.Mode != Argon2i && p.Mode != Argon2id {
		return fmt.Errorf("argon2: invalid mode: %v", p.Mode)
	}

	if v := p.version(); v != Version10 && v != Version13 {
		return fmt.Errorf("argon2: unsupported version: %#x", p.Version)
	}

	return nil
}

func (p *Params) version() uint32 {
	if p.Version == 0 {
		return Version
	}
	return p.Version
}

// Key derives a keyLen-byte key from the password and salt using the given
// parameters. The salt should be unique for each password and at least 8
// bytes long; keyLen must be at least 4.
func Key(password, salt []byte, params Params, keyLen uint32) ([]byte, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if len(salt) < 8 {
		return nil, errors.New("argon2: salt must be at least 8 bytes")
	}

	if keyLen < 4 {
		return nil, errors.New("argon2: key length must be at least 4 bytes")
	}

	return core.Hash(core.Params{
		Password:  password,
		Salt:      salt,
		Secret:    params.Secret,
		Data:      params.Data,
		Passes:    params.Time,
		Memory:    params.Memory,
		Lanes:     uint32(params.Threads),
		TagLength: keyLen,
		Version:   params.version(),
		Mode:      core.Mode(params.Mode),
	}), nil
}

// DKey derives an Argon2d key with the latest format version. It panics if
// the parameters are invalid; use Key for error returns.
func DKey(password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
	return mustKey(password, salt, Params{Time: time, Memory: memory, Threads: threads, Mode: Argon2d}, keyLen)
}

// IKey derives an Argon2i key with the latest format version. It panics if
// the parameters are invalid; use Key for error returns.
func IKey(password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
	return mustKey(password, salt, Params{Time: time, Memory: memory, Threads: threads, Mode: Argon2i}, keyLen)
}

// IDKey derives an Argon2id key with the latest format version. It panics
// if the parameters are invalid; use Key for error returns.
func IDKey(password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
	return mustKey(password, salt, Params{Time: time, Memory: memory, Threads: threads, Mode: Argon2id}, keyLen)
}

func mustKey(password, salt []byte, params Params, keyLen uint32) []byte {
	key, err := Key(password, salt, params, keyLen)
	if err != nil {
		panic(err)
	}
	return key
}
