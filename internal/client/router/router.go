// Package router tracks which screen is showing. Screens are addressed by the
// same route paths the mobile app uses.
package router

import (
	"maps"
	"sync"
)

type Route string

const (
	Login       Route = "/LoginView"
	Signup      Route = "/SignupView"
	EmailVerify Route = "/EmailVerify"
	Home        Route = "/(tabs)"
	Timeline    Route = "/(tabs)/TimelineView"
	Calendar    Route = "/(tabs)/CalendarView"
	Profile     Route = "/(tabs)/ProfileView"
	AddEvent    Route = "/AddEventView"
	AddAddress  Route = "/AddAddressView"
	EventDetail Route = "/EventDetailView"
)

// Protected reports whether the route sits behind the auth gate. The sign-in
// screens and the verification screen are reachable without a verified
// profile.
func (r Route) Protected() bool {
	switch r {
	case Login, Signup, EmailVerify:
		return false
	}
	return true
}

// Location is a route plus its parameters.
type Location struct {
	Route  Route
	Params map[string]string
}

func (l Location) Param(name string) string {
	return l.Params[name]
}

type Navigator interface {
	// Replace swaps the current screen without keeping history.
	Replace(route Route, params map[string]string)
	// Push opens a screen on top of the current one.
	Push(route Route, params map[string]string)
	// Back pops one screen; it reports false at the root.
	Back() bool
	Current() Location
}

// Router is a Navigator with a history stack. Listeners run synchronously
// after every change, outside the lock.
type Router struct {
	mu        sync.Mutex
	stack     []Location
	listeners []func(Location)
}

func New(start Route) *Router {
	return &Router{stack: []Location{{Route: start}}}
}

// OnChange registers fn to run after each navigation.
func (r *Router) OnChange(fn func(Location)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

func (r *Router) Replace(route Route, params map[string]string) {
	r.change(func() {
		r.stack = []Location{{Route: route, Params: maps.Clone(params)}}
	})
}

func (r *Router) Push(route Route, params map[string]string) {
	r.change(func() {
		r.stack = append(r.stack, Location{Route: route, Params: maps.Clone(params)})
	})
}

func (r *Router) Back() bool {
	r.mu.Lock()
	if len(r.stack) < 2 {
		r.mu.Unlock()
		return false
	}
	r.mu.Unlock()

	r.change(func() {
		if len(r.stack) > 1 {
			r.stack = r.stack[:len(r.stack)-1]
		}
	})
	return true
}

func (r *Router) Current() Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current()
}

func (r *Router) current() Location {
	top := r.stack[len(r.stack)-1]
	return Location{Route: top.Route, Params: maps.Clone(top.Params)}
}

// Depth is the number of screens on the stack.
func (r *Router) Depth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stack)
}

func (r *Router) change(fn func()) {
	r.mu.Lock()
	fn()
	loc := r.current()
	listeners := append([]func(Location){}, r.listeners...)
	r.mu.Unlock()

	for _, l := range listeners {
		l(loc)
	}
}
