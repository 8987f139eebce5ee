package errors

import (
	"fmt"
)

// EmptyCollectionError occurs when an action is triggered against a Collection which produced zero results to reduce
type EmptyCollectionError struct{}

// Error returns a textual representation of this EmptyCollectionError
func (e EmptyCollectionError) Error() string {
	return "Collection produced no results to reduce"
}

// NoColumnsError occurs when column statistics are requested for an empty set of columns
type NoColumnsError struct{}

// Error returns a textual representation of this NoColumnsError
func (e NoColumnsError) Error() string {
	return "No columns were specified"
}

// NotTabularError occurs when an element of a Collection is not a tabular block
type NotTabularError struct{ Element interface{} }

// Error returns a textual representation of this NotTabularError
func (e NotTabularError) Error() string {
	return fmt.Sprintf("Element of type %T is not a tabular block", e.Element)
}

// IncompatibleSchemasError occurs when two tabular blocks with differing column sets are appended
type IncompatibleSchemasError struct{ Left, Right []string }

// Error returns a textual representation of this IncompatibleSchemasError
func (e IncompatibleSchemasError) Error() string {
	return fmt.Sprintf("Block columns %v are not compatible with block columns %v", e.Left, e.Right)
}

// NotNumericError occurs when a statistics accumulator encounters a value it cannot treat as a number
type NotNumericError struct {
	Column string
	Value  interface{}
}

// Error returns a textual representation of this NotNumericError
func (e NotNumericError) Error() string {
	return fmt.Sprintf("Value %#v in column %s is not numeric", e.Value, e.Column)
}

// NoSuchPartitionError occurs when a partition cannot be located in a partition cache
type NoSuchPartitionError struct{ Key string }

// Error returns a textual representation of this NoSuchPartitionError
func (e NoSuchPartitionError) Error() string {
	return fmt.Sprintf("Partition %s does not exist in the cache", e.Key)
}

// RaggedRowError occurs when a row's width does not match the number of column labels supplied for a block
type RaggedRowError struct {
	Row      int
	Expected int
	Actual   int
}

// Error returns a textual representation of this RaggedRowError
func (e RaggedRowError) Error() string {
	return fmt.Sprintf("Row %d has %d values but %d columns were supplied", e.Row, e.Actual, e.Expected)
}
