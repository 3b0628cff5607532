// Package ir provides the shared vocabulary for craftkit.
//
// This package contains type definitions and canonical encoding only. All
// other internal packages import ir; ir imports nothing internal. This keeps
// ir the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Resource types compare by canonical key ("gas" is an alias of "fluid")
//   - CraftCheck outcomes are values, never errors
//   - Canonical JSON forbids floats; callers format them as strings
//   - All JSON tags use snake_case
package ir
