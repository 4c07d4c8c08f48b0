package cli

import (
	"context"

	"github.com/dmitrijs2005/plantguard/internal/client/session"
	"github.com/dmitrijs2005/plantguard/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// SignUp prompts for an email and a password entered twice, validates them
// locally and registers the account. It never signs in.
func (a *App) SignUp(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.out, "Confirm password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if err := session.ValidateSignUp(email, string(password), string(confirm)); err != nil {
		return err
	}

	pending, err := a.session.SignUp(ctx, email, string(password))
	if err != nil {
		return err
	}

	if pending {
		a.println("Account created. Confirm your email, then sign in.")
	} else {
		a.println("Account created. You can sign in now.")
	}
	return nil
}

func (a *App) SignIn(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.SignIn(ctx, email, string(password)); err != nil {
		return err
	}

	a.println("Signed in as", email)
	return nil
}

// SignOut ends the session. Client state of the previous user is dropped by
// the view watcher.
func (a *App) SignOut(ctx context.Context) error {
	if err := a.session.SignOut(ctx); err != nil {
		return err
	}
	a.intake.Clear()
	a.println("Signed out")
	return nil
}
