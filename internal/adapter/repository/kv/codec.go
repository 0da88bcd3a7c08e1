package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
)

// Keys names the store keys each repository persists under.
type Keys struct {
	Accounts        string
	Snapshot        string
	SnapshotHistory string
	Journals        string
	Audit           string
}

// DefaultKeys returns the stock key names.
func DefaultKeys() Keys {
	return Keys{
		Accounts:        "coa",
		Snapshot:        "saldo_awal",
		SnapshotHistory: "saldo_awal_history",
		Journals:        "jurnal_umum",
		Audit:           "saldo_awal_audit",
	}
}

type getter interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

// readJSON decodes key into dst. found is false when the key is absent.
func readJSON(ctx context.Context, g getter, key string, dst any) (bool, error) {
	raw, found, err := g.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !found || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// readOrDefault is readJSON for display reads: failures are logged and
// reported as absent.
func readOrDefault(ctx context.Context, g getter, logger zerolog.Logger, key string, dst any) bool {
	found, err := readJSON(ctx, g, key, dst)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("store read failed, using empty value")
		return false
	}
	return found
}

func writeJSON(tx *Tx, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	tx.Set(key, string(data))
	return nil
}
