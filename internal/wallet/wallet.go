// Package wallet derives signing identities from BIP-39 seed phrases.
package wallet

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/tyler-smith/go-bip39"

	"driprun/internal/domain"
)

// hardenedOffset marks a child index as hardened per SLIP-0010.
const hardenedOffset = 0x80000000

// derivationPath is the conventional path for the first account of a
// Solana-style wallet: m/44'/501'/0'/0'.
var derivationPath = []uint32{44, 501, 0, 0}

// FromSeedPhrase derives the signing identity for one seed phrase.
// The same phrase always yields the same identity.
func FromSeedPhrase(phrase string) (domain.Identity, error) {
	phrase = strings.TrimSpace(phrase)
	if !bip39.IsMnemonicValid(phrase) {
		return domain.Identity{}, fmt.Errorf("%w: %q", domain.ErrBadSeedPhrase, abbreviate(phrase))
	}

	seed := bip39.NewSeed(phrase, "")
	key := deriveKey(seed, derivationPath)
	priv := ed25519.NewKeyFromSeed(key)
	pub := priv.Public().(ed25519.PublicKey)

	return domain.Identity{
		ID:         base58.Encode(pub),
		Seed:       phrase,
		PrivateKey: priv,
	}, nil
}

// deriveKey walks the SLIP-0010 ed25519 hardened derivation chain from
// the master seed. All path segments are hardened; ed25519 does not
// support non-hardened derivation.
func deriveKey(seed []byte, path []uint32) []byte {
	mac := hmac.New(sha512.New, []byte("ed25519 seed"))
	mac.Write(seed)
	sum := mac.Sum(nil)
	key, chain := sum[:32], sum[32:]

	for _, segment := range path {
		data := make([]byte, 0, 37)
		data = append(data, 0x00)
		data = append(data, key...)
		data = binary.BigEndian.AppendUint32(data, segment+hardenedOffset)

		mac := hmac.New(sha512.New, chain)
		mac.Write(data)
		sum := mac.Sum(nil)
		key, chain = sum[:32], sum[32:]
	}
	return key
}

// abbreviate keeps error messages from echoing a whole seed phrase.
func abbreviate(phrase string) string {
	words := strings.Fields(phrase)
	if len(words) <= 2 {
		return phrase
	}
	return words[0] + " ... " + words[len(words)-1]
}
