package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/venue-harvester/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Report resolution cache sizes",
	Run: func(cmd *cobra.Command, args []string) {
		c := cache.Load(viper.GetString("cache_path"), os.Stderr)
		doi, title := c.Sizes()
		fmt.Printf("%s: %d DOI entries, %d title entries\n", c.Path(), doi, title)
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
}
