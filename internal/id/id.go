// Package id generates prefixed NanoID identifiers such as "tsk-V1StGXR8_Z5jdHi6B-myT".
// The prefix makes an ID self-describing in logs and API payloads.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate returns a new ID of the form "<prefix>-<nanoid>". The random
// part is a default NanoID: 21 URL-safe characters.
func Generate(prefix string) (string, error) {
	nid, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + nid, nil
}

// MustGenerate is Generate but panics on failure. Generation only fails
// when the system entropy source is unavailable.
func MustGenerate(prefix string) string {
	nid, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return nid
}
