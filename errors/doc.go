/*
Package errors implements the error registry shared by all extensions.

Every error returned by a handler should wrap one of the root errors declared
with Register, so that the client receives a stable ABCI code and the caller
can test the kind of failure with ErrXyz.Is(err).

Create instances with ErrXyz.New("...") or errors.Wrap(err, "...") at the
point of failure so a stacktrace is attached at the innermost frame. Further
wraps only add context to the message.
*/
package errors
