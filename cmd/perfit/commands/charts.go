package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/DrugisCodes/PerFit-sub000/internal/domain"
	"github.com/DrugisCodes/PerFit-sub000/internal/infrastructure/chartfetch"
	"github.com/DrugisCodes/PerFit-sub000/internal/logging"
	"github.com/DrugisCodes/PerFit-sub000/internal/usecase"
)

var chartCategory string

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Inspect and manage stored retailer size charts",
}

var chartsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List retailers with a stored chart",
	RunE:  runChartsList,
}

var chartsShowCmd = &cobra.Command{
	Use:   "show <retailer>",
	Short: "Show a retailer's stored chart",
	Args:  cobra.ExactArgs(1),
	RunE:  runChartsShow,
}

var chartsImportCmd = &cobra.Command{
	Use:   "import <retailer> <file.yaml|url>",
	Short: "Import a chart for a retailer from a YAML file or URL",
	Args:  cobra.ExactArgs(2),
	RunE:  runChartsImport,
}

func init() {
	chartsShowCmd.Flags().StringVar(&chartCategory, "category", "bottom", "chart category: top, bottom or shoes")

	chartsCmd.AddCommand(chartsListCmd)
	chartsCmd.AddCommand(chartsShowCmd)
	chartsCmd.AddCommand(chartsImportCmd)
	rootCmd.AddCommand(chartsCmd)
}

func runChartsList(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	retailers, err := store.Retailers(ctx)
	if err != nil {
		return fmt.Errorf("list retailers: %w", err)
	}
	if len(retailers) == 0 {
		info("No charts stored yet.")
		return nil
	}

	for _, r := range retailers {
		fmt.Printf("  • %s\n", r)
	}
	return nil
}

func runChartsShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	retailer := args[0]
	rows, offered, err := store.GetChart(ctx, retailer, domain.Category(chartCategory))
	if err != nil {
		return fmt.Errorf("load chart for %s/%s: %w", retailer, chartCategory, err)
	}

	info("Chart for %s (%s)", retailer, chartCategory)
	display := make([][]string, 0, len(rows))
	for _, row := range rows {
		display = append(display, []string{
			row.Label,
			cm(row.ChestCM), cm(row.WaistCM), cm(row.HipCM),
			cm(row.FootLengthCM), cm(row.InseamCM),
		})
	}
	table([]string{"LABEL", "CHEST", "WAIST", "HIP", "FOOT", "INSEAM"}, display)

	if len(offered) > 0 {
		fmt.Println()
		info("Offered sizes: %v", offered)
	}
	return nil
}

func runChartsImport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	retailer, source := args[0], args[1]

	remote, err := loadChartSource(ctx, source)
	if err != nil {
		return err
	}
	category, rows, offered, err := chartfetch.MapToChart(remote)
	if err != nil {
		return fmt.Errorf("chart in %s: %w", source, err)
	}

	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	charts := usecase.NewChartService(store, zerolog.Nop())
	if err := charts.SaveChart(ctx, retailer, category, rows, offered); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}

	success("Imported %d rows for %s (%s)", len(rows), retailer, category)
	return nil
}

// loadChartSource reads a chart file from a local path or, for http(s)
// sources, downloads it.
func loadChartSource(ctx context.Context, source string) (*chartfetch.RemoteChart, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		logger := zerolog.Nop()
		if verbose {
			logger = logging.New("debug", "console")
		}
		client := chartfetch.NewClient(logger)
		client.SetDebug(verbose)
		remote, err := client.FetchChart(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("fetch chart: %w", err)
		}
		return remote, nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read chart file: %w", err)
	}
	var remote chartfetch.RemoteChart
	if err := yaml.Unmarshal(data, &remote); err != nil {
		return nil, fmt.Errorf("parse chart file: %w", err)
	}
	return &remote, nil
}
