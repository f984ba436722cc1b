package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/career-guide/internal/auth"
	"github.com/jonathan/career-guide/internal/types"
	"github.com/spf13/cobra"
)

func newSignupCmd(o *rootOptions) *cobra.Command {
	var req types.SignupRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: withApp(o, func(cmd *cobra.Command, app *application, _ []string) error {
			if err := req.Validate(); err != nil {
				return err
			}
			session, err := app.users.Register(cmd.Context(), types.User{
				Name:     req.Name,
				Email:    req.Email,
				Password: req.Password,
			})
			var exists *auth.ErrEmailAlreadyExists
			if errors.As(err, &exists) {
				return fmt.Errorf("%s", app.label("auth.alreadyExists"))
			}
			if err != nil {
				return err
			}
			printSession(cmd, app, session)
			return nil
		}),
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Full name (required)")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSigninCmd(o *rootOptions) *cobra.Command {
	var req types.SigninRequest

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in to an existing account",
		Args:  cobra.NoArgs,
		RunE: withApp(o, func(cmd *cobra.Command, app *application, _ []string) error {
			if err := req.Validate(); err != nil {
				return err
			}
			session, err := app.users.Authenticate(cmd.Context(), req.Email, req.Password)
			var invalid *auth.ErrInvalidCredentials
			if errors.As(err, &invalid) {
				return fmt.Errorf("%s", app.label("auth.invalidCredentials"))
			}
			if err != nil {
				return err
			}
			printSession(cmd, app, session)
			return nil
		}),
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSignoutCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Sign out the current user",
		Args:  cobra.NoArgs,
		RunE: withApp(o, func(cmd *cobra.Command, app *application, _ []string) error {
			if err := app.users.EndSession(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.label("auth.signedOut"))
			return nil
		}),
	}
}

func newWhoamiCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: withApp(o, func(cmd *cobra.Command, app *application, _ []string) error {
			session, err := app.users.CurrentSession(cmd.Context())
			if err != nil {
				return err
			}
			if session == nil {
				fmt.Fprintln(cmd.OutOrStdout(), app.label("auth.notSignedIn"))
				return nil
			}
			printSession(cmd, app, session)
			return nil
		}),
	}
}

func printSession(cmd *cobra.Command, app *application, s *types.Session) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s <%s>\n", app.label("auth.signedInAs"), s.Name, s.Email)
}
