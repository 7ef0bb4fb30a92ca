package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erazemk/unifind/internal/model"
)

// readSecret prompts for a value on stdin when the flag was left empty.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", nil
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLoginCmd(a *app) *cobra.Command {
	var in model.LoginInput

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.Password == "" {
				pw, err := readSecret(cmd, "Password: ")
				if err != nil {
					return err
				}
				in.Password = pw
			}

			user, err := a.forms.SubmitLogin(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s). Welcome back!\n", user.Name, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Email, "email", "e", "", "College email")
	cmd.Flags().StringVarP(&in.Password, "password", "p", "", "Password (prompted when omitted)")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var in model.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account with a college (.edu) email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.Password == "" {
				pw, err := readSecret(cmd, "Password (min 8 characters): ")
				if err != nil {
					return err
				}
				in.Password = pw
			}

			if err := a.forms.SubmitRegister(cmd.Context(), in); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account created. Please log in with your new account.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Name, "name", "n", "", "Full name")
	cmd.Flags().StringVarP(&in.Email, "email", "e", "", "College email (.edu)")
	cmd.Flags().StringVarP(&in.Password, "password", "p", "", "Password (prompted when omitted)")
	cmd.Flags().StringVarP(&in.Role, "role", "r", model.RoleStudent, "Role: student or admin")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.forms.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.sessions.Load(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case !sess.Authenticated():
				fmt.Fprintln(out, "Not signed in.")
			case sess.User == nil:
				fmt.Fprintln(out, "Signed in.")
			default:
				fmt.Fprintf(out, "%s <%s> (%s)\n", sess.User.Name, sess.User.Email, sess.User.Role)
			}
			return nil
		},
	}
}
