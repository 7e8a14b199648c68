// Package handler declares the capabilities a redraw event consumer can
// implement, one interface per event family.
//
// The reducer holds its consumer as `any` and detects each capability
// with a type assertion, so a consumer only implements the events it
// cares about. Events without an implementing consumer are logged and
// dropped.
//
// Every method returns the RedrawMode the event requires. The reducer
// merges those across a batch and hands the result out at flush.
package handler
