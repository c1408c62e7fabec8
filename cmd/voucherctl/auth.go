package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var authFlags struct {
	token    string
	username string
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored credential",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the bearer token and username sent with every request",
	RunE:  cmdAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored token",
	RunE:  cmdAuthLogout,
}

func init() {
	authLoginCmd.Flags().StringVar(&authFlags.token, "token", "", "bearer token")
	authLoginCmd.Flags().StringVar(&authFlags.username, "username", "", "username for the X-Username header")

	authCmd.AddCommand(authLoginCmd, authLogoutCmd)
}

func cmdAuthLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if authFlags.token != "" {
		if err := a.creds.SetToken(authFlags.token); err != nil {
			return err
		}
	}
	if authFlags.username != "" {
		if err := a.creds.SetUsername(authFlags.username); err != nil {
			return err
		}
	}

	fmt.Fprintln(os.Stdout, "credentials stored")
	return nil
}

func cmdAuthLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if err := a.creds.ClearToken(); err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "token cleared")
	return nil
}
