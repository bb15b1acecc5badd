// Package deletecommodity implements the Delete Commodity use case.
//
// Only a key that currently holds a commodity is deleted. Deletion is logical: the ledger keeps
// the earlier versions in the key's history. Deleting an absent or already deleted key is a no-op
// answered with "No Commodity with that Key".
package deletecommodity
