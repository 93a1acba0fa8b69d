/*
Package token is a minimal token ledger.

Every token type is registered as a Mint with a ticker and a decimal
precision. Balances are held in accounts, one per (owner, ticker) pair,
stored under an address derived from both. Opening an account costs a
storage deposit paid in the native reserve balance of the payer, closing an
empty account refunds that deposit.

Transfers are always checked: the caller declares the decimal precision it
expects and the transfer fails if the mint disagrees.
*/
package token
