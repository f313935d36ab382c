package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// createArtistsCommand создает команду artists
func (app *Application) createArtistsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "artists",
		Short: "List related artists",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.listArtists(cmd.OutOrStdout())
		},
	}
}

func (app *Application) listArtists(out io.Writer) {
	fmt.Fprintf(out, "🎤 Похожие исполнители: %d\n\n", len(app.Catalog.Artists))
	for _, artist := range app.Catalog.Artists {
		fmt.Fprintf(out, "   %-25s %s\n", artist.Name, artist.ImagePath)
	}
}
