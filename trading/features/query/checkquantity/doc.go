// Package checkquantity implements the Check Quantity query use case.
//
// It is a read-only Read-Decode-Project operation answering with the current quantity
// of a commodity, or with an informational message if the key holds no commodity.
package checkquantity
