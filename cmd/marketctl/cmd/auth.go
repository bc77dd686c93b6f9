package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func authCmd() *cobra.Command {
	authRoot := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication",
		Long: "Sign up, log in and out of the marketplace, and inspect the\n" +
			"currently authenticated account.",
	}

	authRoot.AddCommand(
		authSignupCmd(),
		authLoginCmd(),
		authLogoutCmd(),
		authWhoamiCmd(),
	)

	return authRoot
}

func authSignupCmd() *cobra.Command {
	var (
		email    string
		nickname string
		password string
	)

	cmd := &cobra.Command{
		Use:     "signup",
		Short:   "Register a new account",
		Example: `  marketctl auth signup --email me@example.com --nickname me --password secret`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if email == "" || nickname == "" || password == "" {
				return fmt.Errorf("--email, --nickname and --password are required")
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.Signup(context.Background(), email, nickname, password); err != nil {
				return err
			}
			fmt.Println("Account created. Log in with: marketctl auth login")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&nickname, "nickname", "", "display nickname")
	cmd.Flags().StringVar(&password, "password", "", "account password")

	return cmd
}

func authLoginCmd() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Log in and store tokens",
		Example: `  marketctl auth login --email me@example.com --password secret`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.Login(context.Background(), email, password); err != nil {
				return err
			}
			fmt.Printf("Logged in as %s.\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")

	return cmd
}

func authLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard stored tokens",
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.Logout(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func authWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated account",
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			me, err := c.Me(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(me)
			}
			fmt.Printf("%s <%s> (%s)\n", me.Nickname, me.Email, me.Role)
			return nil
		},
	}
}
