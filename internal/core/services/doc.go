// Package services implements the driving port interfaces.
//
// The document and chat coordinators own their view state and share two
// pieces of infrastructure: a BusyTracker recording in-flight operations
// and a single-slot ToastQueue for transient notifications. Delete-all is
// guarded by a two-step ConfirmationGate.
package services
