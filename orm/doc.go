/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object, a protobuf message.
* It has a primary key, chosen by the extension.
* It may possess one or more secondary indexes (1:N).
* Easy queries for one and iteration.
*/
package orm
