package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethanknights/shap/pkg/palette"
)

// newPalettesCmd creates the palettes command listing available color maps.
func newPalettesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palettes",
		Short: "List the available diverging color palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range palette.Names() {
				if name == palette.Default {
					fmt.Println(StyleHighlight.Render(name) + StyleDim.Render(" (default)"))
					continue
				}
				fmt.Println(name)
			}
			return nil
		},
	}
}
