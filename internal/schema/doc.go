// Package schema derives the property schema of a declared type from its
// accessor methods and ancestry.
//
// A property is implied by accessor naming: `getX()` and `isX()` read
// property `x`, `setX(v)` writes it. Extraction walks the ancestry most
// derived first, so an accessor redeclared in a subtype with the same name
// and parameter list replaces the inherited one, while accessors that differ
// in their parameter lists accumulate under the same property.
//
// Extract is a pure function. Store memoizes it per type name for the
// lifetime of the Store.
package schema
