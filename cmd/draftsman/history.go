package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"draftsman/internal/db"
)

func historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent generations",
		RunE: func(cmd *cobra.Command, args []string) error {
			storeDB, _, closeFn, err := openDB()
			if err != nil {
				return err
			}
			defer closeFn()

			store := db.NewStore(storeDB)
			records, err := store.ListGenerations(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no generations recorded")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CREATED\tDIRECTIVE\tLAYER\tSTATUS\tTEMPLATE")
			for _, rec := range records {
				detail := rec.TemplatePath
				if rec.Status != "ok" {
					detail = rec.ErrorKind
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", rec.CreatedAt, rec.Directive, rec.Layer, rec.Status, detail)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum records to list")
	return cmd
}
