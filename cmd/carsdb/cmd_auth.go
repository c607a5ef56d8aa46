package main

import (
	"context"
	"fmt"

	"github.com/lealre/carsdb-backend/internal/auth"
	"github.com/lealre/carsdb-backend/internal/client"
	"github.com/spf13/cobra"
)

var authFlags struct {
	email    string
	password string
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runLogin(cmd, (*client.Client).SignUp)
	},
}

var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in and store the session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runLogin(cmd, (*client.Client).SignIn)
	},
}

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Revoke the stored session",
	RunE:  runSignout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed in user",
	RunE:  runWhoami,
}

func init() {
	for _, cmd := range []*cobra.Command{signupCmd, signinCmd} {
		f := cmd.Flags()
		f.StringVar(&authFlags.email, "email", "", "Account email (required)")
		f.StringVar(&authFlags.password, "password", "", "Account password (required)")
		_ = cmd.MarkFlagRequired("email")
		_ = cmd.MarkFlagRequired("password")
	}
}

type loginFunc func(c *client.Client, ctx context.Context, email, password string) (auth.LoginResponse, error)

func runLogin(cmd *cobra.Command, login loginFunc) error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	c, err := newClient(rootFlags.server)
	if err != nil {
		return err
	}

	res, err := login(c, cmd.Context(), authFlags.email, authFlags.password)
	if err != nil {
		return err
	}

	if err := saveSession(path, sessionFile{Server: rootFlags.server, Email: res.Session.Email, Token: res.AccessToken}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%d cars in the catalog)\n", res.Session.Email, len(c.App.Items))
	return nil
}

func runSignout(cmd *cobra.Command, _ []string) error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	c, err := resumeClient(cmd.Context())
	if err != nil {
		return err
	}
	if err := c.SignOut(cmd.Context()); err != nil {
		return err
	}
	if err := removeSession(path); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	c, err := resumeClient(cmd.Context())
	if err != nil {
		return err
	}

	s := c.App.Session
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Uid:      %s\n", s.Uid)
	fmt.Fprintf(out, "Email:    %s\n", s.Email)
	fmt.Fprintf(out, "Admin:    %t\n", s.IsAdmin)
	fmt.Fprintf(out, "Rated:    %d\n", len(s.Ratings))
	fmt.Fprintf(out, "Owned:    %d\n", len(s.OwnedCars))
	fmt.Fprintf(out, "Wishlist: %d\n", len(s.Wishlist))
	return nil
}
