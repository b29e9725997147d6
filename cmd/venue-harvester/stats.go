package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/venue-harvester/internal/archive"
	"github.com/pdiddy/venue-harvester/internal/dataset"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the written dataset and the last archived run",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonPath := viper.GetString("output_json")
		ds, err := dataset.ReadJSON(jsonPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		} else {
			pubs := 0
			for _, a := range ds.Authors {
				pubs += len(a.Publications)
			}
			fmt.Printf("Dataset %s: %d venues, %d institutions, %d authors, %d publication records\n",
				jsonPath, len(ds.Venues), len(ds.Institutions), len(ds.Authors), pubs)
		}

		archivePath := viper.GetString("archive_path")
		if archivePath == "" {
			return nil
		}
		store, err := archive.Open(archivePath)
		if err != nil {
			return err
		}
		defer store.Close()

		run, err := store.LastRun(cmd.Context())
		if errors.Is(err, archive.ErrNoRuns) {
			fmt.Println("No archived runs.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("Last run %s (%s, years %d-%d): %d works, %d institutions, %d authors\n",
			run.ID, run.FinishedAt.Format("2006-01-02 15:04"), run.MinYear, run.MaxYear,
			run.Works, run.Institutions, run.Authors)

		counts, err := store.VenueCounts(cmd.Context(), run.ID)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "VENUE\tWORKS")
		for _, c := range counts {
			fmt.Fprintf(w, "%s\t%d\n", c.Venue, c.Works)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
