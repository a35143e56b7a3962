// Command fuelvm-run loads a script transaction from a JSON fixture,
// executes it against an in-memory store, and prints the resulting
// receipts and program state. It is a small harness for exercising the
// engine end to end, not a transaction validator or node.
//
// Usage:
//
//	fuelvm-run -fixture path/to/tx.json
//
// Flags:
//
//	-fixture   Path to the JSON transaction fixture (required)
//	-ram       Total addressable VM memory in bytes (default: 1 MiB)
//	-version   Print version and exit
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fuellabs/fuelvm/fuelvm"
	"github.com/fuellabs/fuelvm/fueltypes"
)

var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

// run is the actual entry point, returning an exit code.
func run() int {
	fixturePath := flag.String("fixture", "", "path to the JSON transaction fixture")
	ram := flag.Uint64("ram", uint64(fuelvm.VMMaxRAM), "total addressable VM memory in bytes")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("fuelvm-run %s (commit %s)\n", version, commit)
		return 0
	}

	if *fixturePath == "" {
		log.Print("missing required -fixture flag")
		return 1
	}

	fixture, err := LoadFixture(*fixturePath)
	if err != nil {
		log.Printf("load fixture: %v", err)
		return 1
	}

	state, receipts, err := executeFixture(fixture, fuelvm.Word(*ram))
	if err != nil {
		log.Printf("execute: %v", err)
		return 1
	}

	fmt.Printf("program state: kind=%d value=%d\n", state.Kind, state.Value)
	for i, r := range receipts {
		fmt.Printf("receipt[%d]: %s id=%s pc=0x%x\n", i, r.Kind, r.ID.Hex(), r.PC)
	}
	return 0
}

func executeFixture(f *Fixture, ram fuelvm.Word) (fuelvm.ProgramState, []fuelvm.Receipt, error) {
	script, err := f.script()
	if err != nil {
		return fuelvm.ProgramState{}, nil, fmt.Errorf("script: %w", err)
	}
	scriptData, err := f.scriptData()
	if err != nil {
		return fuelvm.ProgramState{}, nil, fmt.Errorf("script_data: %w", err)
	}
	assets, amounts, err := f.assetCoins()
	if err != nil {
		return fuelvm.ProgramState{}, nil, err
	}

	txBytes := fuelvm.EncodeScriptTransaction(
		fuelvm.Word(f.GasPrice), fuelvm.Word(f.Maturity),
		fuelvm.Word(len(assets)), 0, 0,
		script, scriptData,
	)

	cfg := fuelvm.NewConfig()
	cfg.ChainID = f.ChainID

	storage := fuelvm.NewMemStorage(0, fueltypes.ContractId{}, 0)
	vm := fuelvm.NewInterpreter(cfg, storage, ram)

	coins := make([]fuelvm.CoinInput, len(assets))
	for i, a := range assets {
		coins[i] = fuelvm.CoinInput{AssetID: a, Amount: fuelvm.Word(amounts[i])}
	}

	vm.Init(fuelvm.InitParams{
		TxID:     fuelvm.TxIDFromBytes(txBytes),
		TxBytes:  txBytes,
		Coins:    coins,
		Context:  fuelvm.Context{Kind: fuelvm.ContextScript, BlockHeight: storage.BlockHeight()},
		GasLimit: fuelvm.Word(f.GasLimit),
	})

	state := vm.Run()
	return state, vm.Receipts.All(), nil
}
