// Package models contains the GORM persistence models. Domain entities carry
// no ORM tags; each model here maps one table and converts to and from its
// domain type with ToDomain / FromDomain.
//
// PII columns use the "encrypted" serializer registered by the crypto
// package. Columns that need equality lookups on encrypted data keep a
// keyed blind index next to them (…_hash), filled in by the repositories.
package models
