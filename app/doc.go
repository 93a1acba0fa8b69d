/*
Package app contains the ABCI application glue: the message Router, the
decorator chain builder, the CommitStore keeping the check and deliver
caches, and StoreApp/BaseApp implementing abci.Application on top of them.

Applications build a handler stack with ChainDecorators(...).WithHandler(r)
and pass it, together with their TxDecoder, to NewBaseApp.
*/
package app
