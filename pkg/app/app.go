// Package app defines the runtime contract shared by the cmd/* entrypoints.
//
// A binary builds a Runner from its configuration and calls Run, without
// depending on how the component is assembled.
package app

// Runner represents a runnable application component.
type Runner interface {
	Run() error
}
