// Package migrations holds the bookstore schema shipped with schemer. Each
// file registers one migration with the default registry from init, so a
// blank import of this package is all the command line needs.
package migrations
