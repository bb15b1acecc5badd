package core

import "strconv"

// Result messages returned to callers. Their wording is relied upon by existing clients.
const (
	msgCommodityCreated = "Commodity Created: "
	msgTraderCreated    = "Trader Created: "
	msgCheckedQuantity  = "Checked Quantity: "
	msgNewQuantity      = "New Quantity:  "
	msgNewOwner         = "New Owner: "
	msgNoCommodity      = "No Commodity with that Key: "
	msgCommodityDeleted = "Commodity deleted: "
	msgNotDeleted       = "Key exists, but Not a Commodity - NOT deleted: "
	msgNotACommodity    = "Key exists, but Not a Commodity: "
)

func CommodityCreated(key string) string { return msgCommodityCreated + key }
func TraderCreated(key string) string    { return msgTraderCreated + key }

func CheckedQuantity(quantity int64) string { return msgCheckedQuantity + strconv.FormatInt(quantity, 10) }

// NewQuantity keeps the two spaces after the colon.
func NewQuantity(quantity int64) string { return msgNewQuantity + strconv.FormatInt(quantity, 10) }

func NewOwner(owner string) string { return msgNewOwner + owner }

func NoCommodity(key string) string { return msgNoCommodity + key }

func CommodityDeleted(key string) string { return msgCommodityDeleted + key }

func NotACommodityNotDeleted(key string) string { return msgNotDeleted + key }

func NotACommodity(key string) string { return msgNotACommodity + key }
