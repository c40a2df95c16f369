package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/locality/internal/container"
	"github.com/roach88/locality/internal/kernel"
)

// KindInfo describes one container kind.
type KindInfo struct {
	Name       string `json:"name" yaml:"name"`
	Contiguous bool   `json:"contiguous" yaml:"contiguous"`
	Ordered    bool   `json:"ordered" yaml:"ordered"`
	Coalesces  bool   `json:"coalesces" yaml:"coalesces"`
}

// ModeInfo describes one ownership mode.
type ModeInfo struct {
	Name string `json:"name" yaml:"name"`
	Flag string `json:"flag" yaml:"flag"`
}

// CatalogResult lists what a sweep can measure.
type CatalogResult struct {
	Kinds []KindInfo `json:"kinds" yaml:"kinds"`
	Modes []ModeInfo `json:"modes" yaml:"modes"`
}

func (r CatalogResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-10s %-10s %-8s %s\n", "KIND", "CONTIGUOUS", "ORDERED", "COALESCES")
	for _, k := range r.Kinds {
		fmt.Fprintf(&b, "%-10s %-10s %-8s %s\n", k.Name, yesNo(k.Contiguous), yesNo(k.Ordered), yesNo(k.Coalesces))
	}
	b.WriteString("\nMODES\n")
	for _, m := range r.Modes {
		fmt.Fprintf(&b, "%-6s %s\n", m.Flag, m.Name)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "catalog",
		Short:         "List container kinds and ownership modes",
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootOpts.Format == "prometheus" {
				return WrapExitError(ExitCommandError, "format prometheus is only supported by sweep", ErrUnsupportedFormat)
			}
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(catalog())
		},
	}
}

func catalog() CatalogResult {
	var r CatalogResult
	for _, k := range container.Kinds() {
		r.Kinds = append(r.Kinds, KindInfo{
			Name:       k.String(),
			Contiguous: k.Contiguous(),
			Ordered:    k.Ordered(),
			Coalesces:  k.Coalesces(),
		})
	}
	for _, m := range kernel.Modes() {
		r.Modes = append(r.Modes, ModeInfo{Name: m.String(), Flag: m.Short()})
	}
	return r
}
