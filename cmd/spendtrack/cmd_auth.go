package main

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"spendtrack/internal/api"
)

var loginEmail string

// loginCmd authenticates against the backend and stores the session locally.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login and store a session",
	RunE:  runLogin,
}

var registerName, registerEmail string

// registerCmd creates a new account.
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  runRegister,
}

// logoutCmd clears the stored session.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE:  runLogout,
}

// whoamiCmd shows the current session.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user and token expiry",
	RunE:  runWhoami,
}

var profileName string
var profileChangePassword bool

// profileCmd updates the account profile.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update the account name or password",
	RunE:  runProfile,
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
	_ = loginCmd.MarkFlagRequired("email")

	registerCmd.Flags().StringVarP(&registerName, "name", "n", "", "Full name")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Account email")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")

	profileCmd.Flags().StringVarP(&profileName, "name", "n", "", "New display name")
	profileCmd.Flags().BoolVar(&profileChangePassword, "change-password", false, "Prompt for a new password")
	_ = profileCmd.MarkFlagRequired("name")
}

// readPassword prompts for a password without echoing.
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	sess, err := a.auth.Login(cmd.Context(), api.Credentials{Email: loginEmail, Password: password})
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s <%s>\n", sess.User.Name, sess.User.Email)
	if exp, ok := sess.TokenExpiry(); ok {
		fmt.Printf("Session valid until %s\n", exp.Local().Format(time.RFC1123))
	}
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	sess, err := a.auth.Register(cmd.Context(), api.Registration{
		Name:     registerName,
		Email:    registerEmail,
		Password: password,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Account created for %s <%s>\n", sess.User.Name, sess.User.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.auth.Logout(cmd.Context()); err != nil {
		// The local session is already gone; backend failures only get noted.
		fmt.Fprintf(os.Stderr, "Warning: backend logout failed: %v\n", err)
	}
	fmt.Println("Logged out.")
	return nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	update := api.ProfileUpdate{Name: profileName}
	if profileChangePassword {
		current, err := readPassword("Current password: ")
		if err != nil {
			return err
		}
		next, err := readPassword("New password: ")
		if err != nil {
			return err
		}
		update.CurrentPassword = current
		update.NewPassword = next
	}

	user, err := a.auth.UpdateProfile(cmd.Context(), update)
	if err != nil {
		return err
	}
	fmt.Printf("Profile updated: %s <%s>\n", user.Name, user.Email)
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sess, err := a.sessions.Current()
	if err != nil {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Printf("%s <%s>\n", sess.User.Name, sess.User.Email)
	if exp, ok := sess.TokenExpiry(); ok {
		if time.Now().After(exp) {
			fmt.Printf("Session expired at %s (will refresh on next request)\n", exp.Local().Format(time.RFC1123))
		} else {
			fmt.Printf("Session valid until %s\n", exp.Local().Format(time.RFC1123))
		}
	}
	return nil
}
