// Package uniuri generates cryptographically secure random strings used for
// batch username suffixes and generated account passwords.
package uniuri
