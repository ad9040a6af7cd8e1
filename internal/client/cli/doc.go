// Package cli is the interactive terminal front end of tripcal.
//
// Every mobile screen is a route; the prompt shows the current one and each
// command acts like a button on it. Protected screens pass the auth gate
// before they render, so a stale or unverified session is redirected the
// same way the app does it.
//
// The REPL is started with App.Run, which blocks until the user exits or
// stdin closes. Process suspend and resume (SIGTSTP/SIGCONT on unix) are
// reported to the session as background and foreground transitions.
package cli
