package core

// Seed is one record written by the demo setup.
type Seed struct {
	Key    string
	Record Record
}

// DemoSeed returns the two commodities and two traders of the demo data set, in write order.
func DemoSeed() []Seed {
	return []Seed{
		{Key: "GOLD", Record: Commodity{Description: "Yellow Bars", MainExchange: "London", Quantity: 100, Owner: "Trader1"}},
		{Key: "COAL", Record: Commodity{Description: "Black Gold", MainExchange: "Cardiff", Quantity: 300, Owner: "Trader2"}},
		{Key: "Trader1", Record: Trader{FirstName: "Jenny", LastName: "Jones"}},
		{Key: "Trader2", Record: Trader{FirstName: "Jack", LastName: "Sock"}},
	}
}
