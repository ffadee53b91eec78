package dictionary

import (
	"encoding/json"
	"fmt"
)

// cacheFormatVersion is bumped whenever the payload layout changes.
// Entries written with another version are treated as cache misses.
const cacheFormatVersion = 1

type cachePayload struct {
	Version     int     `json:"version"`
	Fingerprint string  `json:"fingerprint"`
	Entries     []Entry `json:"entries"`
}

func encodeMapping(fingerprint string, mapping *Mapping) ([]byte, error) {
	entries := mapping.Entries()
	if entries == nil {
		entries = []Entry{}
	}
	contents, err := json.Marshal(cachePayload{
		Version:     cacheFormatVersion,
		Fingerprint: fingerprint,
		Entries:     entries,
	})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal > %w", err)
	}
	return contents, nil
}

func decodeMapping(fingerprint string, contents []byte) (*Mapping, error) {
	if len(contents) == 0 {
		return nil, fmt.Errorf("empty cache payload")
	}
	var payload cachePayload
	if err := json.Unmarshal(contents, &payload); err != nil {
		return nil, fmt.Errorf("json.Unmarshal > %w", err)
	}
	if payload.Version != cacheFormatVersion {
		return nil, fmt.Errorf("unsupported cache format version %d, want %d", payload.Version, cacheFormatVersion)
	}
	if payload.Fingerprint != fingerprint {
		return nil, fmt.Errorf("cache payload fingerprint %q does not match %q", payload.Fingerprint, fingerprint)
	}
	return NewMapping(payload.Entries...), nil
}
