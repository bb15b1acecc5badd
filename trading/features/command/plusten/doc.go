// Package plusten implements the Plus Ten use case.
//
// It follows the Read-Decode-Decide-Write pattern: the current value of the key is read with
// strong consistency, classified by core.LookupCommodity, and the pure Decide function returns
// the commodity to write back with its quantity raised by ten.
//
// A key without a record, or one holding a trader, is answered with an informational message
// and nothing is written.
package plusten
