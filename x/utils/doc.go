/*
Package utils provides the decorators every transaction of the application
passes through: panic recovery, logging and a per transaction savepoint.
*/
package utils
