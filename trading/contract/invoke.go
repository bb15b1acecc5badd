package contract

import (
	"context"
	"errors"
	"fmt"
	"sort"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/shell"
)

// Operation names as clients address them.
const (
	OpInit                 = "init"
	OpCreateCommodity      = "createCommodity"
	OpCreateTrader         = "createTrader"
	OpCheckQuantity        = "checkQuantity"
	OpPlusTen              = "plusTen"
	OpTrade                = "trade"
	OpDeleteCommodity      = "deleteCommodity"
	OpSetupDemo            = "setupDemo"
	OpHistoryForCommodity  = "historyForCommodity"
	OpQCommodityByOwner    = "qCommodityByOwner"
	OpQCommodityByExchange = "qCommodityByExchange"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrUnknownOperation   = errors.New("unknown operation")
	ErrWrongArgumentCount = errors.New("wrong number of arguments")
)

type operation struct {
	params []string
	run    func(ctx context.Context, c *Contract, args []string) ([]byte, error)
}

var operations = map[string]operation{
	OpInit: {
		run: func(ctx context.Context, c *Contract, _ []string) ([]byte, error) {
			c.Init(ctx)
			return []byte{}, nil
		},
	},
	OpCreateCommodity: {
		params: []string{"key", "commodity"},
		run: func(ctx context.Context, c *Contract, args []string) ([]byte, error) {
			return message(c.CreateCommodity(ctx, args[0], []byte(args[1])))
		},
	},
	OpCreateTrader: {
		params: []string{"key", "trader"},
		run: func(ctx context.Context, c *Contract, args []string) ([]byte, error) {
			return message(c.CreateTrader(ctx, args[0], []byte(args[1])))
		},
	},
	OpCheckQuantity: {
		params: []string{"key"},
		run: func(ctx context.Context, c *Contract, args []string) ([]byte, error) {
			return message(c.CheckQuantity(ctx, args[0]))
		},
	},
	OpPlusTen: {
		params: []string{"key"},
		run: func(ctx context.Context, c *Contract, args []string) ([]byte, error) {
			return message(c.PlusTen(ctx, args[0]))
		},
	},
	OpTrade: {
		params: []string{"key", "newOwner"},
		run: func(ctx context.Context, c *Contract, args []string) ([]byte, error) {
			return message(c.Trade(ctx, args[0], args[1]))
		},
	},
	OpDeleteCommodity: {
		params: []string{"key"},
		run: func(ctx context.Context, c *Contract, args []string) ([]byte, error) {
			return message(c.DeleteCommodity(ctx, args[0]))
		},
	},
	OpSetupDemo: {
		run: func(ctx context.Context, c *Contract, _ []string) ([]byte, error) {
			return message(c.SetupDemo(ctx))
		},
	},
	OpHistoryForCommodity: {
		params: []string{"key"},
		run: func(ctx context.Context, c *Contract, args []string) ([]byte, error) {
			return list(c.HistoryForCommodity(ctx, args[0]))
		},
	},
	OpQCommodityByOwner: {
		params: []string{"owner"},
		run: func(ctx context.Context, c *Contract, args []string) ([]byte, error) {
			return list(c.CommoditiesByOwner(ctx, args[0]))
		},
	},
	OpQCommodityByExchange: {
		params: []string{"mainExchange"},
		run: func(ctx context.Context, c *Contract, args []string) ([]byte, error) {
			return list(c.CommoditiesByExchange(ctx, args[0]))
		},
	},
}

// Invoke runs the named operation on a Contract freshly built over l.
// Text outcomes are returned as their message; list outcomes as a JSON array.
func Invoke(ctx context.Context, l ledger.Ledger, name string, args []string, opts ...Option) ([]byte, error) {
	op, ok := operations[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}

	if len(args) != len(op.params) {
		return nil, fmt.Errorf("%w: %s expects %d %v, got %d", ErrWrongArgumentCount, name, len(op.params), op.params, len(args))
	}

	c, err := New(l, opts...)
	if err != nil {
		return nil, err
	}

	return op.run(ctx, c, args)
}

// Operations returns the supported operation names in lexical order.
func Operations() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Params returns the positional parameter names of an operation.
func Params(name string) ([]string, bool) {
	op, ok := operations[name]
	if !ok {
		return nil, false
	}

	return append([]string(nil), op.params...), true
}

func message(result shell.HandlerResult, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}

	return []byte(result.Message), nil
}

func list[T any](records []T, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}

	return json.Marshal(records)
}
