package model

import (
	"fmt"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/treasury"
)

type OrderType string

const (
	OrderTypeFOK    OrderType = "FOK"
	OrderTypeIOC    OrderType = "IOC"
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"
	OrderTypeStop   OrderType = "STOP"
)

type Market string

const (
	MarketBrokerTec Market = "BROKERTEC"
	MarketESpeed    Market = "ESPEED"
	MarketCME       Market = "CME"
)

// ExecutionOrder is an order placed on an exchange. OrderID is unique
// process-wide.
type ExecutionOrder struct {
	Product       treasury.Bond
	Side          PricingSide
	OrderID       string
	OrderType     OrderType
	Price         float64
	VisibleQty    int64
	HiddenQty     int64
	ParentOrderID string
	IsChildOrder  bool
}

func (o ExecutionOrder) String() string {
	return fmt.Sprintf("%s,%s,%s,%s,%s,%d,%d,%s,%t",
		o.Product.CUSIP, o.OrderID, o.Side, o.OrderType,
		treasury.FormatPrice(o.Price), o.VisibleQty, o.HiddenQty,
		o.ParentOrderID, o.IsChildOrder)
}

// AlgoExecution is an execution order tagged with the market the algo sends
// it to.
type AlgoExecution struct {
	Order  ExecutionOrder
	Market Market
}
