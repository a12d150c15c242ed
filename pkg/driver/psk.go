package driver

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// IEEE 802.11i passphrase-to-PSK mapping.
const (
	pskIterations = 4096
	pskLen        = 32
)

// DerivePSK returns the 256-bit pre-shared key for a WPA2-PSK network.
//
// A passphrase is 8 to 63 printable ASCII characters and is run through
// PBKDF2-SHA1 with the SSID as salt. A 64-digit hex string is taken as the
// raw key.
func DerivePSK(passphrase, ssid string) ([]byte, error) {
	if len(passphrase) == 2*pskLen {
		if raw, err := hex.DecodeString(passphrase); err == nil {
			return raw, nil
		}
	}

	if len(passphrase) < 8 || len(passphrase) > 63 {
		return nil, fmt.Errorf("%w: length %d not in 8..63", ErrInvalidPassword, len(passphrase))
	}
	for i := 0; i < len(passphrase); i++ {
		if c := passphrase[i]; c < 0x20 || c > 0x7e {
			return nil, fmt.Errorf("%w: non-printable character at %d", ErrInvalidPassword, i)
		}
	}
	if len(ssid) == 0 || len(ssid) > 32 {
		return nil, fmt.Errorf("invalid ssid length %d", len(ssid))
	}

	return pbkdf2.Key([]byte(passphrase), []byte(ssid), pskIterations, pskLen, sha1.New), nil
}
