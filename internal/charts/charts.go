// Package charts renders deck composition metrics as interactive HTML charts.
package charts

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/twinsuns/league-hq/internal/analysis"
)

// ChartConfig holds configuration for rendered charts.
type ChartConfig struct {
	Title      string
	Subtitle   string
	Width      string // e.g. "900px"
	Height     string // e.g. "500px"
	Theme      string
	ShowLegend bool
	Colors     []string
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:      "900px",
		Height:     "500px",
		Theme:      "light",
		ShowLegend: true,
		Colors:     []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666", "#73C0DE", "#3BA272", "#FC8452", "#9A60B4", "#EA7CCC"},
	}
}

func newBar(buckets []analysis.Bucket, seriesName string, config ChartConfig) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
		charts.WithColorsOpts(opts.Colors{
			config.Colors[0],
		}),
	)

	xLabels := make([]string, len(buckets))
	yData := make([]opts.BarData, len(buckets))
	for i, b := range buckets {
		xLabels[i] = b.Label
		yData[i] = opts.BarData{Value: b.Value}
	}

	bar.SetXAxis(xLabels).
		AddSeries(seriesName, yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(true),
			}),
		)
	return bar
}

func newPie(buckets []analysis.Bucket, seriesName string, config ChartConfig) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "item",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
		charts.WithColorsOpts(opts.Colors(config.Colors)),
	)

	items := make([]opts.PieData, len(buckets))
	for i, b := range buckets {
		items[i] = opts.PieData{Name: b.Label, Value: b.Value}
	}

	pie.AddSeries(seriesName, items).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}: {c}",
			}),
		)
	return pie
}

// RenderBarChart writes an interactive bar chart HTML file from buckets.
func RenderBarChart(buckets []analysis.Bucket, seriesName string, config ChartConfig, outputPath string) error {
	return renderTo(newBar(buckets, seriesName, config), outputPath)
}

// RenderPieChart writes an interactive pie chart HTML file from buckets.
func RenderPieChart(buckets []analysis.Bucket, seriesName string, config ChartConfig, outputPath string) error {
	return renderTo(newPie(buckets, seriesName, config), outputPath)
}

func renderTo(chart interface{ Render(w io.Writer) error }, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := chart.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// WriteDashboard renders the composition dashboard for a deck or pool to w:
// cost curve, aspects, card types, rarities, arenas, aspect fit, and the top
// synergy tags.
func WriteDashboard(metrics *analysis.Metrics, title string, w io.Writer) error {
	if metrics == nil {
		return fmt.Errorf("no metrics provided")
	}

	config := DefaultChartConfig()

	costCfg := config
	costCfg.Title = title
	costCfg.Subtitle = "Cost curve"

	aspectCfg := config
	aspectCfg.Subtitle = "Aspects"

	typeCfg := config
	typeCfg.Subtitle = "Card types"

	rarityCfg := config
	rarityCfg.Subtitle = "Rarities"

	arenaCfg := config
	arenaCfg.Subtitle = "Arenas"

	fitCfg := config
	fitCfg.Subtitle = "Aspect fit"

	synergyCfg := config
	synergyCfg.Subtitle = "Top synergies"

	fit := []analysis.Bucket{
		{Label: "In aspect", Value: metrics.InAspect},
		{Label: "Out of aspect", Value: metrics.OutOfAspect},
	}

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(
		newBar(metrics.ByCost, "Cards", costCfg),
		newPie(metrics.ByAspect, "Cards", aspectCfg),
		newBar(metrics.ByType, "Cards", typeCfg),
		newPie(metrics.ByRarity, "Cards", rarityCfg),
		newPie(metrics.ByArena, "Cards", arenaCfg),
		newPie(fit, "Cards", fitCfg),
		newBar(metrics.TopSynergies(analysis.SynergyDisplayLimit), "Cards", synergyCfg),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	return nil
}

// RenderDashboard writes the composition dashboard to an HTML file.
func RenderDashboard(metrics *analysis.Metrics, title, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create dashboard file: %w", err)
	}
	defer f.Close()

	return WriteDashboard(metrics, title, f)
}

// OpenInBrowser opens the given file path in the default web browser.
func OpenInBrowser(filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", absPath)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", absPath)
	case "linux":
		cmd = exec.Command("xdg-open", absPath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
