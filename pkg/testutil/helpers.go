// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/save-smarter/internal/projection"
)

// FindProjection finds a goal by name in the results slice.
// Returns a pointer to the projection if found, nil otherwise.
func FindProjection(results []projection.Projection, name string) *projection.Projection {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}
