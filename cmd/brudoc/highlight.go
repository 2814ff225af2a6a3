package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"pkt.systems/brudoc"
)

func newHighlightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "highlight [file|-]",
		Short: "Pretty-print a JSON body that may contain {{variables}}",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asHTML, _ := cmd.Flags().GetBool("html")
			var (
				data []byte
				err  error
			)
			if len(args) == 0 || args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			mode := brudoc.ModeText
			if asHTML {
				mode = brudoc.ModeHTML
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), brudoc.FormatJSON(cmd.Context(), string(data), mode))
			return err
		},
	}
	cmd.Flags().Bool("html", false, "Emit HTML markup instead of plain text")
	return cmd
}
