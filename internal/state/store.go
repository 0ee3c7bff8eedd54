package state

import "github.com/leapstack-labs/planportal/pkg/core"

// Compile-time check that SQLiteStore satisfies the core store contracts.
var (
	_ core.Store          = (*SQLiteStore)(nil)
	_ core.QueryableStore = (*SQLiteStore)(nil)
)
