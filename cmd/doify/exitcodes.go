package main

// Exit codes for doify commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (runtime failure, no result found)
	ExitConfigError = 2 // Configuration error (unreadable config file)
	ExitAPIError    = 3 // CrossRef API error
)
