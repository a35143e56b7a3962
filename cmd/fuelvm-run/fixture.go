package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fuellabs/fuelvm/fueltypes"
)

// CoinFixture is one coin input the fixture's transaction spends.
type CoinFixture struct {
	AssetID string `json:"asset_id"` // hex, 32 bytes
	Amount  uint64 `json:"amount"`
}

// Fixture is the JSON shape fuelvm-run loads: a script plus the
// consensus parameters and coins needed to initialize a transaction
// around it. This is the "outer collaborator" stub SPEC_FULL.md Section D
// describes -- enough to drive the engine end to end, not a real
// transactor.
type Fixture struct {
	Script     string        `json:"script"`      // hex-encoded instruction words
	ScriptData string        `json:"script_data"` // hex-encoded, optional
	GasLimit   uint64        `json:"gas_limit"`
	GasPrice   uint64        `json:"gas_price"`
	Maturity   uint64        `json:"maturity"`
	ChainID    uint64        `json:"chain_id"`
	Coins      []CoinFixture `json:"coins"`
}

// LoadFixture reads and decodes a Fixture from a JSON file at path.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &f, nil
}

func (f *Fixture) script() ([]byte, error) {
	return hex.DecodeString(f.Script)
}

func (f *Fixture) scriptData() ([]byte, error) {
	if f.ScriptData == "" {
		return nil, nil
	}
	return hex.DecodeString(f.ScriptData)
}

func (f *Fixture) assetCoins() ([]fueltypes.AssetId, []uint64, error) {
	assets := make([]fueltypes.AssetId, len(f.Coins))
	amounts := make([]uint64, len(f.Coins))
	for i, c := range f.Coins {
		raw, err := hex.DecodeString(c.AssetID)
		if err != nil {
			return nil, nil, fmt.Errorf("coin %d: asset_id: %w", i, err)
		}
		assets[i] = fueltypes.BytesToAssetId(raw)
		amounts[i] = c.Amount
	}
	return assets, amounts, nil
}
