package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound reports that no record exists for the requested id.
var ErrNotFound = errors.New("record not found")

// ValidationError lists every violated field together with the rule it broke.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AssetWriteError wraps a failure to persist uploaded bytes.
type AssetWriteError struct {
	Err error
}

func (e *AssetWriteError) Error() string {
	return fmt.Sprintf("failed to save asset: %v", e.Err)
}

func (e *AssetWriteError) Unwrap() error {
	return e.Err
}

// StorageError wraps a failed row operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
