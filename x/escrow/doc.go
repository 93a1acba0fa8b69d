/*
Package escrow implements a two party token for token escrow.

A maker locks an amount of one token in a vault and declares how much of
another token it wants in return. Any taker that pays exactly the wanted
amount atomically receives the locked tokens. Settlement closes the vault
and deletes the offer, refunding both storage deposits to the maker.

There is at most one open offer per (maker, offered token) pair. The record
is stored under the address of the condition

	escrow/offer/<maker, offered ticker>

and its vault is the token account owned by that address. No key exists for
it: only this package can place the condition into the context, and only
while it moves the vault content to the taker.
*/
package escrow
