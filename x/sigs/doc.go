/*
Package sigs provides basic authentication
middleware to verify the signatures on the transaction,
and maintain nonces for replay protection.

A valid signature authenticates the condition sigs/ed25519/<pubkey> for the
rest of the transaction. This is the only condition a key holder can ever
fulfill.
*/
package sigs
