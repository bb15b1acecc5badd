// Package contract composes the feature handlers into the trade contract: the ten named
// transactions plus init, addressable by name with positional string arguments.
//
// A Contract is built per invocation over the ledger handed to it; it keeps no state of its own.
// The same surface backs the Fabric chaincode (trading/chaincode) and the tradeledger CLI.
//
//	result, err := contract.Invoke(ctx, l, "plusTen", []string{"CORN"})
//	// result == []byte("New Quantity:  210")
//
// Text results keep the exact wording the contract always answered with. List results are
// JSON arrays of the decoded records.
package contract
