package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/dshills/modalkit/internal/app"
)

func newExplainCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "explain KEYS",
		Short: "Show how a key sequence parses into commands",
		Long: `Show how a key sequence splits into commands and what each one
normalizes to, without running anything.

Example:
  modalkit explain '"a2d3wx'
  modalkit explain --json 'd2w'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.newApp(cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			ex, err := a.Explain(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				doc, err := explainJSON(args[0], ex)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), doc)
				return err
			}
			return explainTable(cmd.OutOrStdout(), ex)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func explainTable(out io.Writer, ex []app.Explanation) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, e := range ex {
		switch {
		case e.Command != nil:
			fmt.Fprintf(w, "%s\t%s\n", e.Keys, e.Command)
		case e.Invalid:
			fmt.Fprintf(w, "%s\tinvalid\n", e.Keys)
		default:
			fmt.Fprintf(w, "%s\tincomplete, awaiting %s\n", e.Keys, e.Awaiting)
		}
	}
	return w.Flush()
}

// explainJSON renders ex as
//
//	{"keys":"...","commands":[{"keys":"d2w","status":"complete",...}]}
func explainJSON(keys string, ex []app.Explanation) (string, error) {
	doc, err := sjson.Set("", "keys", keys)
	if err != nil {
		return "", err
	}
	doc, err = sjson.SetRaw(doc, "commands", "[]")
	if err != nil {
		return "", err
	}

	for i, e := range ex {
		entry := map[string]any{"keys": e.Keys}
		switch {
		case e.Command != nil:
			entry["status"] = "complete"
			entry["kind"] = e.Command.Command.Kind().String()
			entry["command"] = e.Command.Command.String()
			entry["count"] = e.Command.Count
			entry["register"] = string(e.Command.Register)
			entry["repeatable"] = e.Command.Repeatable
		case e.Invalid:
			entry["status"] = "invalid"
		default:
			entry["status"] = "incomplete"
			entry["awaiting"] = e.Awaiting.String()
		}
		doc, err = sjson.Set(doc, "commands."+strconv.Itoa(i), entry)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}
