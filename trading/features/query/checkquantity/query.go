package checkquantity

const (
	queryType = "CheckQuantity"
)

// Query represents the intent to read the quantity of a commodity.
type Query struct {
	Key string
}

// BuildQuery creates a new Query for key.
func BuildQuery(key string) Query {
	return Query{Key: key}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
