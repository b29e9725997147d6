package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/venue-harvester/internal/venues"
	"github.com/pdiddy/venue-harvester/pkg/types"
)

var venuesCmd = &cobra.Command{
	Use:   "venues",
	Short: "List configured venues and how each is resolved",
	RunE: func(cmd *cobra.Command, args []string) error {
		vf, err := venues.Load(viper.GetString("venues_file"))
		if err != nil {
			return err
		}
		list, problems := venues.Split(vf.Venues)
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "warning: %v\n", p)
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		}
		return printVenues(list)
	},
}

func init() {
	venuesCmd.Flags().Bool("json", false, "output venues as JSON")
	rootCmd.AddCommand(venuesCmd)
}

func printVenues(list []types.VenueDescriptor) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tPATH\tTARGET\tKEYWORDS\tNAME")
	for _, v := range list {
		var target string
		switch v.Path() {
		case types.PathSourceIDs:
			target = strings.Join(v.SourceIDs, ",")
		case types.PathSearch:
			target = v.SearchTerm
		case types.PathSecondaryIndex:
			target = v.SecondaryIndexKey
		}
		kw := "no"
		if v.RequireKeywordMatch {
			kw = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", v.Code, v.Path(), target, kw, v.DisplayName)
	}
	return w.Flush()
}
