package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/hyperledger/fabric-chaincode-go/shim"

	"github.com/AntonStoeckl/commodity-ledger-go/trading/chaincode"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := shim.Start(chaincode.New(chaincode.WithLogger(logger))); err != nil {
		log.Fatalf("Failed to start trade chaincode: %v", err)
	}
}
