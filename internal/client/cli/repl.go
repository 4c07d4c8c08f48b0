package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/plantguard/internal/client/router"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	view() router.View
	SignUp(ctx context.Context) error
	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
	Species(ctx context.Context) error
	Upload(ctx context.Context, path string) error
	Analyze(ctx context.Context, speciesID string) error
	SwitchPage(ctx context.Context, page router.Page) error
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	CloseDetail(ctx context.Context) error
	Delete(ctx context.Context, id string) error
}

const (
	helpAuth      = "Available commands: signup, signin, exit"
	helpDashboard = "Available commands: species, upload <path>, analyze [species-id], page <analysis|history>, (l)ist, show <id>, close, delete <id>, signout, exit"
)

// runREPL reads commands from reader and dispatches them to a until input
// ends or the user types "exit" or "quit".
//
// The commands accepted depend on the current view:
//
//	Auth:
//	  - signup         create an account
//	  - signin         authenticate
//
//	Dashboard:
//	  - species                 list plant species
//	  - upload <path>           select an image file
//	  - analyze [species-id]    diagnose the selected image
//	  - page <name>             switch to the analysis or history page
//	  - list | l                list stored analyses
//	  - show <id>               show one analysis in detail
//	  - close                   close the detail view
//	  - delete <id>             delete an analysis
//	  - signout                 end the session
//
// Errors returned by handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("pg %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "help":
			printHelp(a.view())
			continue
		}

		var cmdErr error
		switch a.view() {
		case router.ViewLoading:
			printlnFn("Loading session, please wait")
			continue
		case router.ViewAuth:
			cmdErr = dispatchAuth(ctx, a, cmd)
		default:
			cmdErr = dispatchDashboard(ctx, a, cmd, args)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}

func printHelp(v router.View) {
	switch v {
	case router.ViewLoading:
		printlnFn("Loading session, please wait")
	case router.ViewAuth:
		printlnFn(helpAuth)
	default:
		printlnFn(helpDashboard)
	}
}

func dispatchAuth(ctx context.Context, a execIface, cmd string) error {
	switch cmd {
	case "signup":
		return a.SignUp(ctx)
	case "signin":
		return a.SignIn(ctx)
	case "signout", "species", "upload", "analyze", "page", "l", "list", "show", "close", "delete":
		printlnFn("Please sign in first")
	default:
		printlnFn("Unknown command:", cmd)
	}
	return nil
}

func dispatchDashboard(ctx context.Context, a execIface, cmd string, args []string) error {
	arg := func(usage string) (string, bool) {
		if len(args) == 0 {
			printlnFn("Usage:", usage)
			return "", false
		}
		return args[0], true
	}

	switch cmd {
	case "signup", "signin":
		printlnFn("Already signed in")
	case "signout":
		return a.SignOut(ctx)
	case "species":
		return a.Species(ctx)
	case "upload":
		if _, ok := arg("upload <path>"); ok {
			return a.Upload(ctx, strings.Join(args, " "))
		}
	case "analyze":
		var id string
		if len(args) > 0 {
			id = args[0]
		}
		return a.Analyze(ctx, id)
	case "page":
		name, ok := arg("page <analysis|history>")
		if !ok {
			return nil
		}
		page, ok := router.ParsePage(name)
		if !ok {
			printlnFn("Unknown page:", name)
			return nil
		}
		return a.SwitchPage(ctx, page)
	case "l", "list":
		return a.List(ctx)
	case "show":
		if id, ok := arg("show <id>"); ok {
			return a.Show(ctx, id)
		}
	case "close":
		return a.CloseDetail(ctx)
	case "delete":
		if id, ok := arg("delete <id>"); ok {
			return a.Delete(ctx, id)
		}
	default:
		printlnFn("Unknown command:", cmd)
	}
	return nil
}
