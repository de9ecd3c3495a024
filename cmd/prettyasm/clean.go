package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove cached formatting results",
		Args:  cobra.NoArgs,
		RunE:  runClean,
	}
	cmd.Flags().String("cache-dir", "", "cache directory (default $XDG_CACHE_HOME/prettyasm)")
	return cmd
}

func runClean(cmd *cobra.Command, _ []string) error {
	cache, err := openCache(cmd)
	if err != nil {
		return err
	}
	if err := cache.DropAll(); err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "removed cached results in %s\n", cache.Dir())
	}
	return nil
}
