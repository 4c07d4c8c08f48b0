// Package cli provides the interactive PlantGuard command-line client.
//
// It wires configuration, the backend client, the session store and the
// analysis and history components behind a small REPL. Signed out, the REPL
// offers sign-up and sign-in. Signed in, it shows the dashboard with two
// pages: analysis (pick an image, choose a species, diagnose) and history
// (list, show and delete stored analyses).
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
