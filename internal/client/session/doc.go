// Package session owns the signed-in state of the client.
//
// Manager runs the start-up check (Bootstrap), records when the app leaves
// the foreground and forces a sign-out when it comes back after the
// inactivity timeout. Gate decides whether a protected screen may render.
//
// Every transition runs under one mutex, so an expiry check and a bootstrap
// never interleave.
package session
