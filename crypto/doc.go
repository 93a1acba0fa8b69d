/*
Package crypto holds the ed25519 keys used to sign transactions.

A public key maps to the condition sigs/ed25519/<pubkey>, and the hash of
that condition is the address of the key holder.
*/
package crypto
