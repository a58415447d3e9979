package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dvcrn/dropbox-token/internal/dropbox"
	"github.com/spf13/cobra"
)

func newLsCmd(opts *rootOptions) *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "List a Dropbox folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			a, err := opts.newApp()
			if err != nil {
				return err
			}
			entries, err := a.List(cmd.Context(), path, recursive)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(opts.out, 0, 4, 2, ' ', 0)
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Tag, entrySize(e), e.PathDisplay)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Include the contents of subfolders")
	return cmd
}

func entrySize(e dropbox.Entry) string {
	if e.Tag != dropbox.TagFile {
		return "-"
	}
	return strconv.FormatUint(e.Size, 10)
}
