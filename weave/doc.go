/*
Package weave defines the interfaces shared by the extensions of the token
escrow ledger: stores, handlers, decorators, messages and transactions, as
well as addresses and the conditions they are derived from.

Block information (height, time, chain id) and the logger travel down the
Decorator/Handler stack in a context.Context. There is a pair of functions
for every value kept there:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set, so that lower-level modules
cannot overwrite what the application declared.
*/
package weave
