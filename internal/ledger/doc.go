// Package ledger holds the double-entry rules behind koperasi opening balances.
//
// Everything here is a pure function over plain data: chart of accounts
// slices, snapshots and journal entries. Storage, identity and the general
// journal live behind the use case layer.
package ledger
