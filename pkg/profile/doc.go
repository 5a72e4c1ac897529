// Package profile serializes access to stored user profiles.
//
// The Manager wraps a ports.ProfileStore so that read-modify-write cycles on
// the same user never interleave, within one process through reference-counted
// mutexes and across replicas through an optional ports.DistributedLocker.
package profile
