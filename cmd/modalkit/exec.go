package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/modalkit/internal/app"
)

type execFlags struct {
	file       string
	write      bool
	showCursor bool
}

func newExecCmd(flags *globalFlags) *cobra.Command {
	ef := &execFlags{}
	cmd := &cobra.Command{
		Use:   "exec KEYS",
		Short: "Apply keys to a file or stdin and print the result",
		Long: `Apply a key sequence in vim notation to a document and print the
resulting text.

Examples:
  # Delete the first word of every line piped in
  printf 'hello world\n' | modalkit exec 'dw'

  # Change the word under the cursor in a file, in place
  modalkit exec --file notes.txt --write 'wciwmodal<Esc>'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.newApp(cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer a.Close()
			return runExec(cmd, a, ef, args[0])
		},
	}
	cmd.Flags().StringVarP(&ef.file, "file", "f", "", "file to edit (default: stdin)")
	cmd.Flags().BoolVarP(&ef.write, "write", "w", false, "write the result back to --file")
	cmd.Flags().BoolVar(&ef.showCursor, "cursor", false, "print the final cursor position to stderr")
	return cmd
}

func runExec(cmd *cobra.Command, a *app.App, ef *execFlags, keys string) error {
	if ef.write && ef.file == "" {
		return fmt.Errorf("--write needs --file")
	}

	if ef.file != "" {
		if err := a.Open(ef.file); err != nil {
			return err
		}
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		a.SetContent(trimNewline(string(data)))
	}

	if err := a.Feed(keys); err != nil {
		return fmt.Errorf("parsing keys: %w", err)
	}
	if pending := a.Input().Pending(); pending != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "incomplete command discarded: %s\n", pending)
	}
	if ef.showCursor {
		cur := a.Document().Cursor()
		fmt.Fprintf(cmd.ErrOrStderr(), "cursor %d:%d\n", cur.Line+1, cur.Column+1)
	}

	if ef.write {
		return a.Save()
	}
	_, err := a.Document().WriteTo(cmd.OutOrStdout())
	return err
}

func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
		if n := len(s); n > 0 && s[n-1] == '\r' {
			s = s[:n-1]
		}
	}
	return s
}
