package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/finiquito/internal/calculation"
	"github.com/rgehrsitz/finiquito/internal/config"
	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// The sugared logger already has the engine's Debugf/Infof/Warnf/Errorf shape
var _ calculation.Logger = (*zap.SugaredLogger)(nil)

// rootOptions holds the persistent flags and the logger built from them
type rootOptions struct {
	debug     bool
	rulesFile string
	logger    *zap.SugaredLogger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logger: zap.NewNop().Sugar()}

	cmd := &cobra.Command{
		Use:   "finiquito",
		Short: "Calculadora de finiquito e indemnización (LFT)",
		Long: `Calcula finiquito, liquidación e indemnización conforme a la Ley Federal
del Trabajo para uno o varios colaboradores.

Los tres escenarios reportados:
  1. Renuncia voluntaria: partes proporcionales y prima de antigüedad
  2. Despido injustificado: más 3 meses de indemnización y 20 días por año
  3. Juicio laboral: más salarios caídos estimados`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.debug)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.rulesFile, "rules", "", "LFT rules YAML file (overrides the built-in rules)")

	cmd.AddCommand(
		calculateCmd(opts),
		validateCmd(opts),
		vacationTableCmd(opts),
		estimateCmd(opts),
		compareCmd(opts),
		breakEvenCmd(opts),
		rosterCmd(opts),
		serveCmd(opts),
		versionCmd(),
	)
	return cmd
}

// newLogger builds a production logger, or a development one in debug mode
func newLogger(debugMode bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if debugMode {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// rules returns the --rules file contents, or fallback when the flag is unset
func (o *rootOptions) rules(fallback domain.LFTRules) (domain.LFTRules, error) {
	if o.rulesFile == "" {
		return fallback, nil
	}
	rules, err := config.NewInputParser().LoadRules(o.rulesFile)
	if err != nil {
		return domain.LFTRules{}, err
	}
	o.logger.Debugf("loaded LFT rules from %s", o.rulesFile)
	return *rules, nil
}

// engine builds a calculation engine logging through the root logger
func (o *rootOptions) engine(fallback domain.LFTRules) (*calculation.CalculationEngine, error) {
	rules, err := o.rules(fallback)
	if err != nil {
		return nil, err
	}
	engine := calculation.NewCalculationEngineWithRules(rules)
	engine.SetLogger(o.logger)
	return engine, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "finiquito %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}
