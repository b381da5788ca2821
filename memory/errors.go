// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"fmt"
)

// ErrNoSuchDocument is returned when a document URI does not exist in
// the requested scope.
type ErrNoSuchDocument struct {
	URI string
}

func (err ErrNoSuchDocument) Error() string {
	return fmt.Sprintf("No such document %v", err.URI)
}

// ErrNoSuchTransaction is returned when a transaction id is unknown,
// has expired, has already ended, or belongs to another database.
type ErrNoSuchTransaction struct {
	ID string
}

func (err ErrNoSuchTransaction) Error() string {
	return fmt.Sprintf("No such transaction %v", err.ID)
}

// ErrNoSuchGraph is returned when a named graph does not exist.
type ErrNoSuchGraph struct {
	Name string
}

func (err ErrNoSuchGraph) Error() string {
	if err.Name == "" {
		return "No default graph"
	}
	return fmt.Sprintf("No such graph %v", err.Name)
}

// ErrNoSuchOptions is returned when a set of query options does not
// exist.
type ErrNoSuchOptions struct {
	Name string
}

func (err ErrNoSuchOptions) Error() string {
	return fmt.Sprintf("No such query options %v", err.Name)
}
