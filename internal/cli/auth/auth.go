package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/estudai/estudai/internal/cli"
	"github.com/estudai/estudai/internal/keyring"
	"github.com/estudai/estudai/internal/storage"
	"github.com/estudai/estudai/internal/validation"
)

type AuthCmd struct {
	Signup        SignupCmd        `cmd:"" help:"Create an account."`
	Login         LoginCmd         `cmd:"" help:"Sign in and keep the session in the OS keyring."`
	Logout        LogoutCmd        `cmd:"" help:"Sign out."`
	Whoami        WhoamiCmd        `cmd:"" help:"Show the signed-in account."`
	ResetPassword ResetPasswordCmd `cmd:"" name:"reset-password" help:"Request or confirm a password reset."`
}

// promptPassword asks for a password when none was passed as a flag.
func promptPassword(title string, password *string) error {
	if *password != "" {
		return nil
	}
	return huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Validate(validation.Password).
		Value(password).
		Run()
}

type SignupCmd struct {
	Email    string `arg:"" help:"Account email."`
	Name     string `short:"n" help:"Display name." required:""`
	Password string `short:"p" help:"Password (prompted when omitted)."`
}

func (c *SignupCmd) Run(ctx *cli.Context) error {
	if err := promptPassword("Password", &c.Password); err != nil {
		return err
	}
	user, err := ctx.Store.SignUp(context.Background(), storage.SignUpRequest{
		Email:    c.Email,
		Password: c.Password,
		Name:     c.Name,
	})
	if err != nil {
		return err
	}
	fmt.Printf("✓ Account created for %s\n", user.Email)
	fmt.Println("  Sign in with: estudai auth login " + user.Email)
	return nil
}

type LoginCmd struct {
	Email    string `arg:"" help:"Account email."`
	Password string `short:"p" help:"Password (prompted when omitted)."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	if err := promptPassword("Password", &c.Password); err != nil {
		return err
	}
	session, err := ctx.Store.SignIn(context.Background(), c.Email, c.Password)
	if err != nil {
		return err
	}
	if err := keyring.SetSessionToken(session.Token); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	fmt.Printf("✓ Signed in as %s (session valid until %s)\n", c.Email, session.ExpiresAt.In(ctx.Clock().Location()).Format("02/01/2006 15:04"))
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	token, err := keyring.GetSessionToken()
	if errors.Is(err, keyring.ErrNotFound) {
		fmt.Println("Not signed in.")
		return nil
	}
	if err != nil {
		return err
	}
	if err := ctx.Store.SignOut(context.Background(), token); err != nil {
		return err
	}
	if err := keyring.DeleteSessionToken(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	fmt.Println("✓ Signed out")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	user, err := ctx.RequireUser(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	fmt.Printf("  ID: %s\n", user.ID)
	return nil
}

// ResetPasswordCmd issues a reset token for Email, or with --token sets a
// new password.
type ResetPasswordCmd struct {
	Email    string `arg:"" optional:"" help:"Account email to send a reset token for."`
	Token    string `help:"Reset token to confirm."`
	Password string `short:"p" help:"New password (prompted when omitted)."`
}

func (c *ResetPasswordCmd) Validate() error {
	if c.Email == "" && c.Token == "" {
		return errors.New("provide an email to request a reset or --token to confirm one")
	}
	return nil
}

func (c *ResetPasswordCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if c.Token == "" {
		token, err := ctx.Store.ResetPassword(bg, c.Email)
		if err != nil {
			return err
		}
		fmt.Println("If the account exists, a reset token was issued.")
		if token != "" {
			fmt.Printf("  Token: %s\n", token)
			fmt.Println("  Confirm with: estudai auth reset-password --token <token>")
		}
		return nil
	}

	if err := promptPassword("New password", &c.Password); err != nil {
		return err
	}
	if err := ctx.Store.ConfirmPasswordReset(bg, c.Token, c.Password); err != nil {
		return err
	}
	fmt.Println("✓ Password updated. Sign in again with the new password.")
	return nil
}
