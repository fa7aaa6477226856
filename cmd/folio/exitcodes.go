package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (no site, invalid folio.yml, missing content dir)
	ExitDataError   = 3 // Data error (check found issues, export could not be written)
	ExitNotFound    = 4 // Requested publication or page does not exist
)
