package contract

import (
	"context"
	"fmt"
	"io"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
)

const responsePrefix = "Transaction Response:"

// Step is one transaction of the demo scenario.
// Note is printed before the call when set.
type Step struct {
	Note      string
	Operation string
	Args      []string
}

// DemoScenario returns the fixed walkthrough of every transaction.
// Deleting GOLD twice shows that a second delete is a no-op.
func DemoScenario() []Step {
	return []Step{
		{Operation: OpCreateCommodity, Args: []string{
			"CORN",
			`{"docType":"commodity","description":"Organic Early Harvest Corn","mainExchange":"London","quantity":200,"owner":"Trader3"}`,
		}},
		{Operation: OpCreateTrader, Args: []string{
			"TRADER3",
			`{"docType":"trader","firstName":"Rainer","lastName":"Valens"}`,
		}},
		{Operation: OpCheckQuantity, Args: []string{"CORN"}},
		{Operation: OpPlusTen, Args: []string{"CORN"}},
		{Operation: OpCheckQuantity, Args: []string{"CORN"}},
		{Operation: OpTrade, Args: []string{"CORN", "Trader1"}},
		{Note: "check Quantity KORNE - expected failure", Operation: OpCheckQuantity, Args: []string{"KORNE"}},
		{Operation: OpCheckQuantity, Args: []string{"CORN"}},
		{Note: "history of CORN", Operation: OpHistoryForCommodity, Args: []string{"CORN"}},
		{Note: "setup demo data", Operation: OpSetupDemo},
		{Note: "commodities owned by Trader1", Operation: OpQCommodityByOwner, Args: []string{"Trader1"}},
		{Note: "commodities traded in London", Operation: OpQCommodityByExchange, Args: []string{"London"}},
		{Note: "commodities traded in Cardiff", Operation: OpQCommodityByExchange, Args: []string{"Cardiff"}},
		{Note: "commodities traded in Newport", Operation: OpQCommodityByExchange, Args: []string{"Newport"}},
		{Operation: OpDeleteCommodity, Args: []string{"CORN"}},
		{Operation: OpDeleteCommodity, Args: []string{"TRADER3"}},
		{Operation: OpDeleteCommodity, Args: []string{"GOLD"}},
		{Operation: OpDeleteCommodity, Args: []string{"GOLD"}},
	}
}

// RunDemo invokes every step of DemoScenario on l and writes each response to out.
// It stops at the first failing step. Reads use strong consistency unless ctx carries a level,
// since every query follows the writes before it.
func RunDemo(ctx context.Context, l ledger.Ledger, out io.Writer, opts ...Option) error {
	if !ledger.HasConsistencyLevel(ctx) {
		ctx = ledger.WithStrongConsistency(ctx)
	}

	for i, step := range DemoScenario() {
		if step.Note != "" {
			if _, err := fmt.Fprintln(out, step.Note); err != nil {
				return err
			}
		}

		result, err := Invoke(ctx, l, step.Operation, step.Args, opts...)
		if err != nil {
			return fmt.Errorf("demo step %d (%s): %w", i+1, step.Operation, err)
		}

		if _, err := fmt.Fprintln(out, responsePrefix, string(result)); err != nil {
			return err
		}
	}

	return nil
}
