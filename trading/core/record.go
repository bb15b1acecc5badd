package core

import (
	"errors"
	"fmt"
	"math"

	jsoniter "github.com/json-iterator/go"
)

const (
	// DocTypeCommodity discriminates Commodity documents.
	DocTypeCommodity = "commodity"

	// DocTypeTrader discriminates Trader documents.
	DocTypeTrader = "trader"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const plusTenStep = 10

// ErrQuantityOverflow is returned when raising a quantity would exceed the int64 range.
var ErrQuantityOverflow = errors.New("quantity overflow")

// Record is a Commodity or a Trader.
type Record interface {
	DocType() string
	isRecord()
}

// Commodity is a tradable good held by one trader.
// Quantity is trusted as given; it may be zero or negative.
type Commodity struct {
	Description  string
	MainExchange string
	Quantity     int64
	Owner        string
}

// Trader owns commodities.
type Trader struct {
	FirstName string
	LastName  string
}

func (Commodity) DocType() string { return DocTypeCommodity }
func (Trader) DocType() string    { return DocTypeTrader }

func (Commodity) isRecord() {}
func (Trader) isRecord()    {}

// commodityDocument is the stored form of a Commodity.
type commodityDocument struct {
	DocType      string `json:"docType"`
	Description  string `json:"description"`
	MainExchange string `json:"mainExchange"`
	Quantity     int64  `json:"quantity"`
	Owner        string `json:"owner"`
}

// traderDocument is the stored form of a Trader.
type traderDocument struct {
	DocType   string `json:"docType"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// MarshalJSON always emits the docType discriminant.
func (c Commodity) MarshalJSON() ([]byte, error) {
	return json.Marshal(commodityDocument{
		DocType:      DocTypeCommodity,
		Description:  c.Description,
		MainExchange: c.MainExchange,
		Quantity:     c.Quantity,
		Owner:        c.Owner,
	})
}

// MarshalJSON always emits the docType discriminant.
func (t Trader) MarshalJSON() ([]byte, error) {
	return json.Marshal(traderDocument{
		DocType:   DocTypeTrader,
		FirstName: t.FirstName,
		LastName:  t.LastName,
	})
}

// PlusTen returns the commodity with ten more units.
// It fails with ErrQuantityOverflow instead of wrapping around.
func (c Commodity) PlusTen() (Commodity, error) {
	if c.Quantity > math.MaxInt64-plusTenStep {
		return c, errors.Join(ErrQuantityOverflow, fmt.Errorf("quantity %d", c.Quantity))
	}

	c.Quantity += plusTenStep

	return c, nil
}

// TradedTo returns the commodity owned by newOwner.
func (c Commodity) TradedTo(newOwner string) Commodity {
	c.Owner = newOwner
	return c
}
