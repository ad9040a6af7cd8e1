package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isSignedIn() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Verify(ctx context.Context) error
	Resend(ctx context.Context) error
	Logout(ctx context.Context) error
	Timeline(ctx context.Context) error
	Calendar(ctx context.Context, args []string) error
	Open(ctx context.Context, args []string) error
	Back(ctx context.Context) error
	Add(ctx context.Context) error
	Delete(ctx context.Context) error
	Refresh(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Password(ctx context.Context) error
	Export(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the tripcal CLI.
//
// It reads a line from in, parses the first token as the command, and
// dispatches to methods on a. A failing command prints the user-facing
// message for its error and the loop carries on. The loop exits on EOF or
// when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Signed out:
//	  - help            show available commands
//	  - login           sign in
//	  - signup          create an account
//	  - verify          enter the emailed verification code
//	  - resend          send a new verification code
//	  - exit | quit      leave the program
//
//	Signed in:
//	  - timeline (t)    all events by date
//	  - calendar (c)    calendar window: [day|week|month] [next|prev|today]
//	  - open <id>       event details
//	  - back            close the current screen
//	  - add             create an event
//	  - delete          delete the open event
//	  - refresh         reload events from the server
//	  - profile         show the profile
//	  - edit            edit the profile
//	  - password        change the password
//	  - export [file]   write events as iCalendar
//	  - logout          sign out
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tripcal %s > ", statusFn()))
		line, err := readLine(in)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				printlnFn("read error:", err)
			}
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isSignedIn() {
				printlnFn("Available commands: (t)imeline, (c)alendar, open, back, add, delete, refresh, profile, edit, password, export, logout, exit")
			} else {
				printlnFn("Available commands: login, signup, verify, resend, exit")
			}

		case "login":
			err = a.Login(ctx)
		case "signup", "register":
			err = a.Signup(ctx)
		case "verify":
			err = a.Verify(ctx)
		case "resend":
			err = a.Resend(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "t", "timeline", "home":
			err = a.Timeline(ctx)
		case "c", "calendar":
			err = a.Calendar(ctx, args)
		case "open", "show":
			err = a.Open(ctx, args)
		case "back", "close":
			err = a.Back(ctx)
		case "add":
			err = a.Add(ctx)
		case "delete":
			err = a.Delete(ctx)
		case "refresh", "sync":
			err = a.Refresh(ctx)
		case "profile":
			err = a.Profile(ctx)
		case "edit":
			err = a.EditProfile(ctx)
		case "password":
			err = a.Password(ctx)
		case "export":
			err = a.Export(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn(message(err))
		}
	}
}
