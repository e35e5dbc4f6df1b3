package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ctf_calc/ctf"
)

type options struct {
	configPath        string
	materialsPath     string
	constructionsPath string
	inputPath         string
	reportPath        string
	exportPath        string
	showReport        bool
	workers           int
	logLevel          string
}

var opts options

var rootCmd = &cobra.Command{
	Use:   "ctf_calc",
	Short: "Calculate conduction transfer functions of building constructions",
	Long: `ctf_calc derives the conduction transfer function coefficients of every
construction with the state-space method and writes the constructions report.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ctf.SetLogLevel(opts.logLevel); err != nil {
			return err
		}

		cfg := ctf.DefaultConfig()
		if opts.configPath != "" {
			var err error
			if cfg, err = ctf.LoadConfig(opts.configPath); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("show-report") {
			cfg.ShowReport = opts.showReport
		}
		if cmd.Flags().Changed("workers") {
			cfg.Workers = opts.workers
		}

		start := time.Now()
		err := run(cfg, opts)
		log.Printf("elapsed_time: %v", time.Since(start))

		if errors.Is(err, ctf.ErrInitFailed) {
			log.Fatal(err)
		}
		return err
	},
}

/*
Load the constructions, calculate their CTFs, write the report and the export.

The report is written before a failed run is turned into a fatal exit.
*/
func run(cfg ctf.Config, o options) error {
	cs, err := loadConstructions(o)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"constructions": len(cs),
		"time_step":     cfg.TimeStep,
	}).Info("CTF calculation start")

	var report io.Writer = os.Stdout
	if o.reportPath != "" && o.reportPath != "-" {
		f, err := os.Create(o.reportPath)
		if err != nil {
			return err
		}
		defer f.Close()
		report = f
	}

	_, runErr := ctf.Run(cs, cfg, ctf.NewReportWriter(report, cfg.ShowReport))

	if o.exportPath != "" {
		log.Printf("Save CTF coefficients to `%s`", o.exportPath)
		f, err := os.Create(o.exportPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := ctf.ExportCSV(f, cs); err != nil {
			return err
		}
	}

	return runErr
}

func loadConstructions(o options) ([]*ctf.Construction, error) {
	if o.inputPath != "" {
		switch filepath.Ext(o.inputPath) {
		case ".yaml", ".yml":
			return ctf.LoadYAML(o.inputPath)
		default:
			return nil, fmt.Errorf("unsupported input %s", o.inputPath)
		}
	}
	if o.materialsPath == "" || o.constructionsPath == "" {
		return nil, errors.New("either --input or both --materials and --constructions are required")
	}
	return ctf.LoadCSV(o.materialsPath, o.constructionsPath)
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "ini file with the solver settings")
	f.StringVar(&opts.materialsPath, "materials", "", "materials CSV")
	f.StringVar(&opts.constructionsPath, "constructions", "", "construction layers CSV")
	f.StringVarP(&opts.inputPath, "input", "i", "", "YAML model with materials and constructions")
	f.StringVarP(&opts.reportPath, "report", "o", "-", "constructions report, - for stdout")
	f.StringVar(&opts.exportPath, "export", "", "CSV file for the CTF coefficients")
	f.BoolVar(&opts.showReport, "show-report", false, "write the constructions report even without errors")
	f.IntVar(&opts.workers, "workers", 0, "parallel solves, 0 for the number of CPUs")
	f.StringVar(&opts.logLevel, "log", "info", "log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
