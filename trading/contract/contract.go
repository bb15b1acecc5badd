package contract

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/core"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/features/command/createcommodity"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/features/command/createtrader"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/features/command/deletecommodity"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/features/command/plusten"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/features/command/setupdemo"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/features/command/tradecommodity"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/features/query/checkquantity"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/features/query/commoditiesbyexchange"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/features/query/commoditiesbyowner"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/features/query/commodityhistory"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/shell"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/shell/observable"
)

const (
	logMsgInit = "trade contract instantiated"
)

// ErrNilLedger is returned when a Contract is built without a ledger.
var ErrNilLedger = errors.New("ledger must not be nil")

// Contract is the set of trade transactions over one ledger.
type Contract struct {
	createCommodity shell.CoreCommandHandler[createcommodity.Command]
	createTrader    shell.CoreCommandHandler[createtrader.Command]
	plusTen         shell.CoreCommandHandler[plusten.Command]
	trade           shell.CoreCommandHandler[tradecommodity.Command]
	deleteCommodity shell.CoreCommandHandler[deletecommodity.Command]
	setupDemo       shell.CoreCommandHandler[setupdemo.Command]

	checkQuantity         shell.CoreQueryHandler[checkquantity.Query, shell.HandlerResult]
	historyForCommodity   shell.CoreQueryHandler[commodityhistory.Query, []core.Record]
	commoditiesByOwner    shell.CoreQueryHandler[commoditiesbyowner.Query, []core.Commodity]
	commoditiesByExchange shell.CoreQueryHandler[commoditiesbyexchange.Query, []core.Commodity]

	logger           shell.Logger
	contextualLogger shell.ContextualLogger
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
}

// New builds a Contract whose handlers all work on l.
// Every handler is wrapped with the observability configured by opts.
func New(l ledger.Ledger, opts ...Option) (*Contract, error) {
	if l == nil {
		return nil, ErrNilLedger
	}

	c := &Contract{}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	drainLogging := func() (commodityhistory.Option, commoditiesbyowner.Option, commoditiesbyexchange.Option) {
		if c.contextualLogger != nil {
			return commodityhistory.WithContextualLogger(c.contextualLogger),
				commoditiesbyowner.WithContextualLogger(c.contextualLogger),
				commoditiesbyexchange.WithContextualLogger(c.contextualLogger)
		}

		return commodityhistory.WithLogger(c.logger),
			commoditiesbyowner.WithLogger(c.logger),
			commoditiesbyexchange.WithLogger(c.logger)
	}
	historyLogging, ownerLogging, exchangeLogging := drainLogging()

	var err error

	if c.createCommodity, err = wrapCommand[createcommodity.Command](c, createcommodity.NewCommandHandler(l)); err != nil {
		return nil, err
	}
	if c.createTrader, err = wrapCommand[createtrader.Command](c, createtrader.NewCommandHandler(l)); err != nil {
		return nil, err
	}
	if c.plusTen, err = wrapCommand[plusten.Command](c, plusten.NewCommandHandler(l)); err != nil {
		return nil, err
	}
	if c.trade, err = wrapCommand[tradecommodity.Command](c, tradecommodity.NewCommandHandler(l)); err != nil {
		return nil, err
	}
	if c.deleteCommodity, err = wrapCommand[deletecommodity.Command](c, deletecommodity.NewCommandHandler(l)); err != nil {
		return nil, err
	}
	if c.setupDemo, err = wrapCommand[setupdemo.Command](c, setupdemo.NewCommandHandler(l)); err != nil {
		return nil, err
	}

	if c.checkQuantity, err = wrapQuery[checkquantity.Query, shell.HandlerResult](
		c, checkquantity.NewQueryHandler(l),
	); err != nil {
		return nil, err
	}
	if c.historyForCommodity, err = wrapQuery[commodityhistory.Query, []core.Record](
		c, commodityhistory.NewQueryHandler(l, historyLogging),
	); err != nil {
		return nil, err
	}
	if c.commoditiesByOwner, err = wrapQuery[commoditiesbyowner.Query, []core.Commodity](
		c, commoditiesbyowner.NewQueryHandler(l, ownerLogging),
	); err != nil {
		return nil, err
	}
	if c.commoditiesByExchange, err = wrapQuery[commoditiesbyexchange.Query, []core.Commodity](
		c, commoditiesbyexchange.NewQueryHandler(l, exchangeLogging),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func wrapCommand[C shell.Command](c *Contract, handler shell.CoreCommandHandler[C]) (shell.CoreCommandHandler[C], error) {
	return observable.NewCommandWrapper[C](
		handler,
		observable.WithCommandMetrics[C](c.metricsCollector),
		observable.WithCommandTracing[C](c.tracingCollector),
		observable.WithCommandContextualLogging[C](c.contextualLogger),
		observable.WithCommandLogging[C](c.logger),
	)
}

func wrapQuery[Q shell.Query, R any](c *Contract, handler shell.CoreQueryHandler[Q, R]) (shell.CoreQueryHandler[Q, R], error) {
	return observable.NewQueryWrapper[Q, R](
		handler,
		observable.WithQueryMetrics[Q, R](c.metricsCollector),
		observable.WithQueryTracing[Q, R](c.tracingCollector),
		observable.WithQueryContextualLogging[Q, R](c.contextualLogger),
		observable.WithQueryLogging[Q, R](c.logger),
	)
}

// Init only logs. It exists so that platform instantiation calls succeed.
func (c *Contract) Init(ctx context.Context) {
	if c.contextualLogger != nil {
		c.contextualLogger.InfoContext(ctx, logMsgInit)
	} else if c.logger != nil {
		c.logger.Info(logMsgInit)
	}
}

// CreateCommodity stores the commodity document payload under key.
// The payload may omit docType; any other kind fails with core.ErrMalformedRecord.
func (c *Contract) CreateCommodity(ctx context.Context, key string, payload []byte) (shell.HandlerResult, error) {
	commodity, err := core.DecodeCommodity(payload)
	if err != nil {
		return shell.HandlerResult{}, err
	}

	return c.createCommodity.Handle(ctx, createcommodity.BuildCommand(key, commodity))
}

// CreateTrader stores the trader document payload under key.
func (c *Contract) CreateTrader(ctx context.Context, key string, payload []byte) (shell.HandlerResult, error) {
	trader, err := core.DecodeTrader(payload)
	if err != nil {
		return shell.HandlerResult{}, err
	}

	return c.createTrader.Handle(ctx, createtrader.BuildCommand(key, trader))
}

func (c *Contract) CheckQuantity(ctx context.Context, key string) (shell.HandlerResult, error) {
	return c.checkQuantity.Handle(ctx, checkquantity.BuildQuery(key))
}

func (c *Contract) PlusTen(ctx context.Context, key string) (shell.HandlerResult, error) {
	return c.plusTen.Handle(ctx, plusten.BuildCommand(key))
}

func (c *Contract) Trade(ctx context.Context, key string, newOwner string) (shell.HandlerResult, error) {
	return c.trade.Handle(ctx, tradecommodity.BuildCommand(key, newOwner))
}

func (c *Contract) DeleteCommodity(ctx context.Context, key string) (shell.HandlerResult, error) {
	return c.deleteCommodity.Handle(ctx, deletecommodity.BuildCommand(key))
}

func (c *Contract) SetupDemo(ctx context.Context) (shell.HandlerResult, error) {
	return c.setupDemo.Handle(ctx, setupdemo.BuildCommand())
}

// HistoryForCommodity returns every record the key held, oldest first.
func (c *Contract) HistoryForCommodity(ctx context.Context, key string) ([]core.Record, error) {
	return c.historyForCommodity.Handle(ctx, commodityhistory.BuildQuery(key))
}

func (c *Contract) CommoditiesByOwner(ctx context.Context, owner string) ([]core.Commodity, error) {
	return c.commoditiesByOwner.Handle(ctx, commoditiesbyowner.BuildQuery(owner))
}

func (c *Contract) CommoditiesByExchange(ctx context.Context, exchange string) ([]core.Commodity, error) {
	return c.commoditiesByExchange.Handle(ctx, commoditiesbyexchange.BuildQuery(exchange))
}
