// Package dpr parses the dpr CLI flags and prints comparisons.
package dpr

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/builds"
	"github.com/KirkDiggler/dnd-dpr/internal/calculator"
	"github.com/KirkDiggler/dnd-dpr/internal/clients/dnd5e"
	"github.com/KirkDiggler/dnd-dpr/internal/difficulty"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
	"github.com/KirkDiggler/dnd-dpr/internal/repositories/reports"
	"github.com/KirkDiggler/dnd-dpr/internal/services/dpr"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Config holds dpr command configuration
type Config struct {
	File        string
	Band        string        `env:"DPR_ACCURACY_MODE"`
	APITimeout  time.Duration `env:"DND5E_API_TIMEOUT" envDefault:"10s"`
	AllBands    bool
	Format      string
	Presets     []string
	ListPresets bool
	SRD         bool
}

// ParseConfig parses environment and flags into Config
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, dnderr.WrapWithCode(err, dnderr.CodeValidation, "failed to parse environment")
	}

	fs.StringVar(&cfg.File, "f", "", "YAML input file")
	fs.StringVar(&cfg.Band, "band", cfg.Band, "difficulty band: equal, half, boss or ignore")
	fs.BoolVar(&cfg.AllBands, "all-bands", false, "compare under every band")
	fs.StringVar(&cfg.Format, "format", FormatTable, "output format: table or json")
	fs.Func("preset", "preset name to compare, repeatable", func(name string) error {
		cfg.Presets = append(cfg.Presets, name)
		return nil
	})
	fs.BoolVar(&cfg.ListPresets, "list-presets", false, "list preset names and exit")
	fs.BoolVar(&cfg.SRD, "srd", false, "look weapons up in the online SRD before the built-in catalog")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Format != FormatTable && cfg.Format != FormatJSON {
		return Config{}, dnderr.InvalidParameterf("unknown format %q", cfg.Format)
	}
	if cfg.Band != "" {
		if _, err := difficulty.ParseBand(cfg.Band); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// Run computes the requested comparison and writes it to out. Series that
// fail are still printed, and the failures are returned as the error.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	env := accuracy.DefaultEnv()
	if cfg.ListPresets {
		return listPresets(env, out)
	}

	inputs, fileBand, err := loadInputs(env, cfg)
	if err != nil {
		return err
	}

	band := fileBand
	if cfg.Band != "" {
		if band, err = difficulty.ParseBand(cfg.Band); err != nil {
			return err
		}
	}

	service, err := dpr.NewService(&dpr.ServiceConfig{Repository: reports.NewInMemory(nil)})
	if err != nil {
		return err
	}

	input := &dpr.CompareInput{Band: band, Inputs: inputs}
	var results []*reports.Report
	var computeErr error
	if cfg.AllBands {
		results, computeErr = service.CompareAllBands(ctx, input)
	} else {
		var report *reports.Report
		report, computeErr = service.Compare(ctx, input)
		if report != nil {
			results = []*reports.Report{report}
		}
	}
	if len(results) == 0 {
		return computeErr
	}

	switch cfg.Format {
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to encode reports: %w", err)
		}
	default:
		if err := writeTables(out, results); err != nil {
			return err
		}
	}
	return computeErr
}

func loadInputs(env accuracy.Env, cfg Config) ([]calculator.Calculable, difficulty.Band, error) {
	var inputs []calculator.Calculable
	var band difficulty.Band

	if cfg.File != "" {
		f, err := os.Open(cfg.File)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()

		file, err := dpr.DecodeInputs(f)
		if err != nil {
			return nil, "", err
		}
		if band, err = file.ParsedBand(); err != nil {
			return nil, "", err
		}
		fromFile, err := file.Calculables(env, weaponClient(cfg))
		if err != nil {
			return nil, "", err
		}
		inputs = append(inputs, fromFile...)
	}

	for _, name := range cfg.Presets {
		p, err := builds.FindPreset(env, name)
		if err != nil {
			return nil, "", err
		}
		inputs = append(inputs, calculator.Calculable{
			ID:      p.Name,
			Label:   p.Name,
			Build:   p.Build,
			Variant: p.Variant,
		})
	}

	if len(inputs) == 0 {
		return nil, "", dnderr.InvalidParameterf("nothing to compare, pass -f or -preset")
	}
	return inputs, band, nil
}

func weaponClient(cfg Config) dnd5e.Client {
	catalog := dnd5e.NewCatalog()
	if !cfg.SRD {
		return catalog
	}
	api, err := dnd5e.New(&dnd5e.Config{HttpClient: &http.Client{Timeout: cfg.APITimeout}})
	if err != nil {
		return catalog
	}
	return dnd5e.WithFallback(api, catalog)
}

func listPresets(env accuracy.Env, out io.Writer) error {
	all, err := builds.AllPresets(env)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tARCHETYPE\tVARIANT")
	for _, p := range all {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Build.Archetype(), p.Variant)
	}
	return w.Flush()
}

// writeTables prints one level-by-level table per report, each cell "raw (red)"
func writeTables(out io.Writer, results []*reports.Report) error {
	var failures []string
	for n, report := range results {
		if n > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "Band: %s\n", report.Band)

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
		header := []string{"LEVEL"}
		for _, s := range report.Series {
			header = append(header, s.Label)
		}
		fmt.Fprintln(w, strings.Join(header, "\t")+"\t")

		for i := 0; i < difficulty.Levels; i++ {
			row := []string{fmt.Sprint(i + 1)}
			for _, s := range report.Series {
				row = append(row, cell(s, i))
			}
			fmt.Fprintln(w, strings.Join(row, "\t")+"\t")
		}
		if err := w.Flush(); err != nil {
			return err
		}

		for _, s := range report.Series {
			for _, f := range s.Failures {
				failures = append(failures, fmt.Sprintf("%s: %s level %d: %s", report.Band, s.Label, f.Level, f.Message))
			}
		}
	}

	if len(failures) > 0 {
		fmt.Fprintln(out, "\nFailures:")
		for _, f := range failures {
			fmt.Fprintln(out, "  "+f)
		}
	}
	return nil
}

func cell(s calculator.Series, i int) string {
	if i >= len(s.Raw) || s.Raw[i] == nil {
		return "-"
	}
	if i >= len(s.Red) || s.Red[i] == nil {
		return fmt.Sprintf("%.2f", *s.Raw[i])
	}
	return fmt.Sprintf("%.2f (%.2f)", *s.Raw[i], *s.Red[i])
}

// ExitCode maps a Run error to a process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case dnderr.IsInvalidParameter(err), dnderr.IsValidation(err), dnderr.IsNotFound(err):
		return 2
	default:
		return 1
	}
}
