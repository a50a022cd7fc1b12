package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/klabast/wb-services/feriados/internal/app"
)

type hashPasswordOptions struct {
	overwrite      bool
	insecureUnmask bool
}

func newHashPasswordCmd(g *globals) *cobra.Command {
	o := &hashPasswordOptions{}

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Create the auth file protecting the API",
		Long: "Creates an auth.secret file with hashed password (Argon2id).\n\n" +
			"Environment Variables:\n" +
			"  AUTH_FILE    Path to auth file (default: auth.secret next to the binary)",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHashPassword(cmd, g, o)
		},
	}

	cmd.Flags().BoolVar(&o.overwrite, "overwrite", false, "Overwrite existing auth file without asking")
	cmd.Flags().BoolVar(&o.insecureUnmask, "insecure-unmask-password", false, "Show password as plain text (INSECURE!)")
	return cmd
}

func runHashPassword(cmd *cobra.Command, g *globals, o *hashPasswordOptions) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	fmt.Fprint(out, "Enter username: ")
	username, err := readLine(in)
	if err != nil {
		return errors.Wrap(err, "reading username")
	}
	if username == "" {
		return errors.New("username cannot be empty")
	}

	var password, passwordConfirm string
	if o.insecureUnmask || !isTerminal(cmd.InOrStdin()) {
		if o.insecureUnmask {
			fmt.Fprintln(cmd.ErrOrStderr(), "⚠️  WARNING: Password will be visible on screen!")
		}
		fmt.Fprint(out, "Enter password:   ")
		if password, err = readLine(in); err != nil {
			return errors.Wrap(err, "reading password")
		}
		fmt.Fprint(out, "Confirm password: ")
		if passwordConfirm, err = readLine(in); err != nil {
			return errors.Wrap(err, "reading password confirmation")
		}
	} else {
		// Masked mode with asterisks (default, secure)
		stdin := cmd.InOrStdin().(*os.File)
		if password, err = readPasswordWithMask(stdin, out, "Enter password:   "); err != nil {
			return err
		}
		if passwordConfirm, err = readPasswordWithMask(stdin, out, "Confirm password: "); err != nil {
			return err
		}
	}

	if password == "" {
		return errors.New("password cannot be empty")
	}
	if password != passwordConfirm {
		return errors.New("passwords do not match")
	}

	return app.CreateAuthFile(g.cfg.AuthFile, username, password, o.overwrite, in, out)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var errInterrupted = errors.New("interrupted")

// readPasswordWithMask reads password input and displays asterisks
func readPasswordWithMask(stdin *os.File, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)

	fd := int(stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		// Fallback to hidden input
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		return string(password), errors.Wrap(err, "reading password")
	}
	defer term.Restore(fd, oldState)

	var password []byte
	reader := bufio.NewReader(stdin)

	for {
		char, _, err := reader.ReadRune()
		if err != nil {
			break
		}

		switch char {
		case '\n', '\r': // Enter
			fmt.Fprint(out, "\r\n")
			return string(password), nil
		case 127, 8: // Backspace or Delete
			if len(password) > 0 {
				password = password[:len(password)-1]
				// Clear the asterisk: backspace, space, backspace
				fmt.Fprint(out, "\b \b")
			}
		case 3: // Ctrl+C
			fmt.Fprint(out, "\r\n")
			return "", errInterrupted
		default:
			// Only accept printable characters
			if char >= 32 && char <= 126 {
				password = append(password, byte(char))
				fmt.Fprint(out, "*")
			}
		}
	}

	fmt.Fprint(out, "\r\n")
	return string(password), nil
}
