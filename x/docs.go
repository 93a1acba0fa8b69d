/*
Package x contains the extensions of the token escrow ledger.

Extensions implement common functionality (Handler, Decorator,
Authenticator) and are combined together to construct the application
in cmd/escrowd.

Note that protobuf types in exported code will be prefixed by
the package, so follow standard go naming conventions and avoid
stutter. Use eg. `escrow.CreateMsg` in place of `escrow.CreateEscrowMsg`.
*/
package x
