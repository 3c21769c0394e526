// Package notify provides in-process implementations of the monitor's
// Dispatcher contract. Real delivery (push, SMS, email) lives in the
// surrounding product behind the same interface.
package notify
