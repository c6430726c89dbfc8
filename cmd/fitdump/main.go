// Command fitdump decodes a FIT file and prints its records, styled after
// lucasjlepore-fit-analyzer/cmd/fit_analyze's "open, decode, print" shape
// and mabhi256-jdiag's cobra command layout.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ridgeway-telemetry/fitdecode"
)

var (
	onlyKind string
	version  = "dev"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4682B4"))
	kindStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#228B22"))
	fieldStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	unitsStyle  = lipgloss.NewStyle().Faint(true)
)

var rootCmd = &cobra.Command{
	Use:   "fitdump",
	Short: "Decode a FIT file and print its records",
}

var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Decode a FIT file and print every record",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("fitdump version", version)
	},
}

func init() {
	decodeCmd.Flags().StringVar(&onlyKind, "kind", "", "only print records of this message kind (e.g. record, session)")
	rootCmd.AddCommand(decodeCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runDecode(cmd *cobra.Command, args []string) error {
	path := args[0]
	records, err := fit.DecodeFile(path)
	if err != nil {
		return fmt.Errorf("fitdump: failed to decode %s: %w", path, err)
	}

	fmt.Println(headerStyle.Render(path + " — " + strconv.Itoa(len(records)) + " records"))

	for _, rec := range records {
		kindName := rec.Kind.String()
		if onlyKind != "" && kindName != onlyKind {
			continue
		}
		fmt.Println(kindStyle.Render(kindName))
		for _, f := range rec.Fields {
			line := fieldStyle.Render(f.Name) + ": " + valueStyle.Render(f.Value.String())
			if f.Units != "" {
				line += " " + unitsStyle.Render(f.Units)
			}
			fmt.Println("  " + line)
		}
	}
	return nil
}
