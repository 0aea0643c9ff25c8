package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/filedialog/internal/shared"
	"github.com/urfave/cli/v3"
)

// RecentList prints every remembered dialog location, most recent first.
func (r *Runner) RecentList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	store, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	locations, err := store.List()
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(locations, pretty)
	}

	if len(locations) == 0 {
		return r.writePlain("no recent locations\n")
	}

	r.writePlainHeader("Recent dialog locations")
	for _, loc := range locations {
		if err := r.writePlain("%-14s %-12s %s (used %d, last %s)\n",
			loc.Family, loc.Kind, loc.Directory, loc.Uses,
			loc.UpdatedAt.Format("2006-01-02 15:04")); err != nil {
			return err
		}
	}
	return nil
}

// RecentForget drops one channel's remembered location.
func (r *Runner) RecentForget(ctx context.Context, cmd *cli.Command) error {
	family := cmd.String("family")
	kind := cmd.String("kind")

	switch family {
	case "save", "load", "pick_file", "pick_directory":
	default:
		return fmt.Errorf("%w: unknown family '%s' (must be save, load, pick_file, or pick_directory)", shared.ErrInvalidArgument, family)
	}

	store, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Forget(family, kind); err != nil {
		return err
	}
	return r.writePlain("forgot %s/%s\n", family, kind)
}

// RecentClear drops every remembered location.
func (r *Runner) RecentClear(ctx context.Context, cmd *cli.Command) error {
	store, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Clear(); err != nil {
		return err
	}
	return r.writePlain("recent locations cleared\n")
}
