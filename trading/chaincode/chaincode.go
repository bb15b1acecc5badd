// Package chaincode exposes the trade contract as Hyperledger Fabric chaincode.
// The function name of a transaction proposal selects the contract operation; the remaining
// proposal arguments are its positional arguments.
package chaincode

import (
	"context"
	"errors"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-protos-go/peer"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/ledger/fabricengine"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/contract"
)

const (
	logMsgInvokeFailed = "chaincode invocation failed"
	logAttrFunction    = "function"
	logAttrTxID        = "tx_id"
	logAttrError       = "error"
)

// Chaincode is a shim.Chaincode running the trade contract on the peer's world state.
type Chaincode struct {
	logger       ledger.Logger
	contractOpts []contract.Option
}

// Option configures a Chaincode.
type Option func(*Chaincode)

// WithLogger sets the logger for the chaincode, the fabric engine and the contract handlers.
func WithLogger(logger ledger.Logger) Option {
	return func(cc *Chaincode) {
		cc.logger = logger
	}
}

// WithContractOptions passes additional options to every contract built per transaction.
func WithContractOptions(opts ...contract.Option) Option {
	return func(cc *Chaincode) {
		cc.contractOpts = append(cc.contractOpts, opts...)
	}
}

func New(opts ...Option) *Chaincode {
	cc := &Chaincode{}

	for _, opt := range opts {
		opt(cc)
	}

	return cc
}

// Init handles chaincode instantiation and upgrade.
func (cc *Chaincode) Init(stub shim.ChaincodeStubInterface) peer.Response {
	return cc.run(stub, contract.OpInit, nil)
}

// Invoke handles one transaction proposal.
func (cc *Chaincode) Invoke(stub shim.ChaincodeStubInterface) peer.Response {
	function, args := stub.GetFunctionAndParameters()

	return cc.run(stub, function, args)
}

func (cc *Chaincode) run(stub shim.ChaincodeStubInterface, function string, args []string) peer.Response {
	var engineOpts []fabricengine.Option
	contractOpts := cc.contractOpts

	if cc.logger != nil {
		engineOpts = append(engineOpts, fabricengine.WithLogger(cc.logger))
		contractOpts = append([]contract.Option{contract.WithLogger(cc.logger)}, contractOpts...)
	}

	l, err := fabricengine.NewLedger(stub, engineOpts...)
	if err != nil {
		return cc.fail(stub, function, err)
	}

	// the shim does not hand out a context per transaction
	result, err := contract.Invoke(context.Background(), l, function, args, contractOpts...)
	if err != nil {
		return cc.fail(stub, function, err)
	}

	return shim.Success(result)
}

func (cc *Chaincode) fail(stub shim.ChaincodeStubInterface, function string, err error) peer.Response {
	if cc.logger != nil {
		cc.logger.Error(logMsgInvokeFailed,
			logAttrFunction, function,
			logAttrTxID, stub.GetTxID(),
			logAttrError, err.Error(),
		)
	}

	if errors.Is(err, contract.ErrUnknownOperation) {
		return shim.Error("Received unknown function " + function + " invocation")
	}

	return shim.Error(err.Error())
}

var _ shim.Chaincode = (*Chaincode)(nil)
