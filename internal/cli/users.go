package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/Yossy4131/LT/internal/core/validation"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var usersAddDisplayName string

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
	Long:  "Manage user accounts",
}

var usersAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Add a new user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		displayName := usersAddDisplayName
		if displayName == "" {
			displayName = username
		}

		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		prompt := newPasswordPrompt(cmd)

		password, err := prompt.read("Enter password: ")
		if err != nil {
			return err
		}
		confirmPassword, err := prompt.read("Confirm password: ")
		if err != nil {
			return err
		}

		if err := validation.PasswordConfirmation(password, confirmPassword); err != nil {
			return err
		}

		id, err := services.AuthService.Register(cmd.Context(), username, password, displayName)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "User '%s' created successfully (id %d)\n", username, id)
		return nil
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		users, err := services.AuthService.ListUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(users) == 0 {
			fmt.Fprintln(out, "No users found")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tDISPLAY NAME\tPOSTS\tCREATED AT")
		for _, user := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
				user.ID,
				user.Username,
				user.DisplayName,
				services.PostService.CountByAuthor(cmd.Context(), user.ID),
				user.CreatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		w.Flush()

		return nil
	},
}

// passwordPrompt reads passwords without echo from a terminal, or one per
// line when input is piped.
type passwordPrompt struct {
	cmd    *cobra.Command
	reader *bufio.Reader
}

func newPasswordPrompt(cmd *cobra.Command) *passwordPrompt {
	return &passwordPrompt{cmd: cmd}
}

func (p *passwordPrompt) read(label string) (string, error) {
	fmt.Fprint(p.cmd.OutOrStdout(), label)

	in := p.cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(password), nil
	}

	if p.reader == nil {
		p.reader = bufio.NewReader(in)
	}
	line, err := p.reader.ReadString('\n')
	fmt.Fprintln(p.cmd.OutOrStdout())
	if err != nil && !(err == io.EOF && line != "") {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersListCmd)

	usersAddCmd.Flags().StringVar(&usersAddDisplayName, "display-name", "", "Display name (defaults to the username)")
}
