package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/rgehrsitz/ulipbi/internal/api"
	"github.com/rgehrsitz/ulipbi/internal/breakeven"
	"github.com/rgehrsitz/ulipbi/internal/calculation"
	"github.com/rgehrsitz/ulipbi/internal/compare"
	"github.com/rgehrsitz/ulipbi/internal/config"
	"github.com/rgehrsitz/ulipbi/internal/domain"
	"github.com/rgehrsitz/ulipbi/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const defaultProductFile = "product.yaml"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ulipbi %s (commit %s, built %s)\n", version, commit, date)
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

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// loadProductRules returns the rules from --product-config, product.yaml in
// the working directory if present, or the compiled-in defaults.
func loadProductRules(cmd *cobra.Command) (domain.ProductRules, error) {
	productFile, _ := cmd.Flags().GetString("product-config")
	if productFile == "" {
		if !fileExists(defaultProductFile) {
			return domain.DefaultProductRules(), nil
		}
		productFile = defaultProductFile
	}
	rules, err := config.NewInputParser().LoadProductRules(productFile)
	if err != nil {
		return domain.ProductRules{}, err
	}
	return *rules, nil
}

// newEngine builds a calculation engine honouring the --debug flag.
func newEngine(cmd *cobra.Command) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	debugMode, _ := cmd.Flags().GetBool("debug")
	if debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	engine.Debug = debugMode
	return engine
}

// commandContext applies --timeout, if set, to a background context.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

// loadRequest parses the input file and applies the --resolution override.
func loadRequest(cmd *cobra.Command, inputFile string) (*domain.IllustrationRequest, error) {
	req, err := config.NewInputParser().LoadFromFile(inputFile)
	if err != nil {
		return nil, err
	}
	if res, _ := cmd.Flags().GetString("resolution"); res != "" {
		req.Assumptions.Resolution = res
	}
	return req, nil
}

var rootCmd = &cobra.Command{
	Use:   "ulipbi",
	Short: "ULIP Benefit Illustration CLI",
	Long:  "Projects unit linked insurance plan fund values, charges and additions year by year under assumed returns",
}

var illustrateCmd = &cobra.Command{
	Use:   "illustrate [input-file]",
	Short: "Generate a benefit illustration",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rules, err := loadProductRules(cmd)
		if err != nil {
			log.Fatal(err)
		}
		req, err := loadRequest(cmd, args[0])
		if err != nil {
			log.Fatal(err)
		}
		params, err := config.NewNormalizer(rules).Normalize(req)
		if err != nil {
			log.Fatal(err)
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		il, err := newEngine(cmd).RunIllustration(ctx, params)
		if err != nil {
			log.Fatal(err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(outputFormat)
		if f == nil {
			log.Fatalf("unsupported format: %s (available: %s)", outputFormat, strings.Join(output.AvailableFormatterNames(), ", "))
		}

		toFile, _ := cmd.Flags().GetBool("output")
		if toFile {
			filename, err := output.WriteFormatted(f, il, output.FileExtension(f.Name()))
			if err != nil {
				log.Fatal(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Illustration written to %s\n", filename)
			return
		}
		if err := output.GenerateReport(il, f.Name(), cmd.OutOrStdout()); err != nil {
			log.Fatal(err)
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate an illustration input file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]

		rules, err := loadProductRules(cmd)
		if err != nil {
			log.Fatal(err)
		}
		req, err := config.NewInputParser().LoadFromFile(inputFile)
		if err != nil {
			log.Fatal(err)
		}
		params, err := config.NewNormalizer(rules).Normalize(req)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Input file %s is valid\n", inputFile)
		fmt.Fprintln(cmd.OutOrStdout(), params.String())
	},
}

var fundsCmd = &cobra.Command{
	Use:   "funds",
	Short: "List the configured funds and their management charges",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		rules, err := loadProductRules(cmd)
		if err != nil {
			log.Fatal(err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-20s %-28s %10s\n", "ID", "Name", "FMC p.a.")
		fmt.Fprintln(out, strings.Repeat("-", 60))
		for _, f := range rules.Funds {
			fmt.Fprintf(out, "%-20s %-28s %10s\n", f.ID, f.Name, output.FormatPercentage(f.FMCRate))
		}
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare the same illustration across funds",
	Long: `Illustrate one input against several funds and compare maturity values and charges.

Examples:
  ulipbi compare input.yaml
  ulipbi compare input.yaml --base large_cap_equity --with bond,balanced
  ulipbi compare input.yaml --format csv
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]

		rules, err := loadProductRules(cmd)
		if err != nil {
			log.Fatal(err)
		}
		req, err := loadRequest(cmd, inputFile)
		if err != nil {
			log.Fatal(err)
		}

		baseFund, _ := cmd.Flags().GetString("base")
		withStr, _ := cmd.Flags().GetString("with")
		outputFormat, _ := cmd.Flags().GetString("format")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		compareEngine := compare.NewCompareEngine(newEngine(cmd), rules)
		compSet, err := compareEngine.Compare(ctx, req, compare.CompareOptions{
			BaseFund: domain.FundID(baseFund),
			Funds:    parseFundList(withStr),
		})
		if err != nil {
			log.Fatal(err)
		}
		compSet.InputPath = inputFile

		var result string
		switch strings.ToLower(outputFormat) {
		case "table", "console":
			result = (&compare.TableFormatter{}).Format(compSet)
		case "csv":
			result, err = (&compare.CSVFormatter{}).Format(compSet)
		case "json":
			result, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
		default:
			log.Fatalf("unsupported format: %s (available: table, csv, json)", outputFormat)
		}
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprint(cmd.OutOrStdout(), result)
	},
}

// parseFundList splits a comma separated fund list, dropping blanks.
func parseFundList(s string) []domain.FundID {
	var funds []domain.FundID
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			funds = append(funds, domain.FundID(part))
		}
	}
	return funds
}

var solveCmd = &cobra.Command{
	Use:   "solve [input-file]",
	Short: "Find the annual premium needed to reach a target maturity value",
	Long: `Search for the smallest annual premium whose projected maturity value
reaches --target under the chosen scenario. Every other input is kept.

Examples:
  ulipbi solve input.yaml --target 2500000
  ulipbi solve input.yaml --target 4000000 --scenario high --format json
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rules, err := loadProductRules(cmd)
		if err != nil {
			log.Fatal(err)
		}
		req, err := loadRequest(cmd, args[0])
		if err != nil {
			log.Fatal(err)
		}

		targetStr, _ := cmd.Flags().GetString("target")
		target, err := decimal.NewFromString(targetStr)
		if err != nil {
			log.Fatalf("invalid --target %q: %v", targetStr, err)
		}
		scenario, _ := cmd.Flags().GetString("scenario")
		outputFormat, _ := cmd.Flags().GetString("format")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		solver := breakeven.NewDefaultSolver(newEngine(cmd), rules)
		result, err := solver.SolvePremium(ctx, breakeven.SolveRequest{
			Request:        req,
			TargetMaturity: target,
			Scenario:       scenario,
		})
		if err != nil {
			log.Fatal(err)
		}

		switch strings.ToLower(outputFormat) {
		case "table", "console":
			fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
		case "json":
			out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
		default:
			log.Fatalf("unsupported format: %s (available: table, json)", outputFormat)
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the illustration HTTP API",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		rules, err := loadProductRules(cmd)
		if err != nil {
			log.Fatal(err)
		}

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			addr = ":" + port
		}
		fast, _ := cmd.Flags().GetBool("fast")

		handler := api.NewHandler(newEngine(cmd), rules)
		handler.Version = version
		if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
			handler.Timeout = timeout
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Printf("Starting server on %s (fasthttp: %t)", addr, fast)
		if err := api.Serve(ctx, addr, api.NewRouter(handler), fast); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example [output-file]",
	Short: "Write an example illustration input file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		returnLow := decimal.NewFromFloat(0.04)
		returnHigh := decimal.NewFromFloat(0.08)
		req := &domain.IllustrationRequest{
			Age:               35,
			Gender:            string(domain.GenderMale),
			AnnualPremium:     decimal.NewFromInt(100000),
			SumAssured:        decimal.NewFromInt(1000000),
			PolicyTerm:        20,
			PremiumPayingTerm: 10,
			Fund:              string(domain.FundLargeCapEquity),
			IncludeTopUp:      false,
			TopUpPremium:      decimal.Zero,
			Assumptions: domain.Assumptions{
				ReturnLow:  &returnLow,
				ReturnHigh: &returnHigh,
				Resolution: string(domain.ResolutionMonthly),
			},
		}
		if err := output.SaveRequest(req, args[0]); err != nil {
			log.Fatal(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Example input written to %s\n", args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().String("product-config", "", "Path to product rules file (default: product.yaml if it exists)")

	illustrateCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, detailed-csv, html, json)")
	illustrateCmd.Flags().Bool("output", false, "Write to a timestamped file instead of stdout")
	illustrateCmd.Flags().String("resolution", "", "Override the input's resolution (annual, monthly)")
	illustrateCmd.Flags().Duration("timeout", 0, "Abort the projection after this long (0 disables)")
	illustrateCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	compareCmd.Flags().String("base", "", "Base fund to compare against (default: the input's fund)")
	compareCmd.Flags().String("with", "", "Comma-separated funds to compare (default: all other funds)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	compareCmd.Flags().String("resolution", "", "Override the input's resolution (annual, monthly)")
	compareCmd.Flags().Duration("timeout", 0, "Abort the comparison after this long (0 disables)")
	compareCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	solveCmd.Flags().String("target", "", "Target maturity value (required)")
	solveCmd.Flags().String("scenario", domain.ScenarioLow, "Scenario the target applies to (low, high, stress)")
	solveCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	solveCmd.Flags().String("resolution", "", "Override the input's resolution (annual, monthly)")
	solveCmd.Flags().Duration("timeout", 0, "Abort the search after this long (0 disables)")
	solveCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	_ = solveCmd.MarkFlagRequired("target")

	serveCmd.Flags().String("addr", "", "Listen address (default: :$PORT or :8080)")
	serveCmd.Flags().Bool("fast", false, "Serve through fasthttp instead of net/http")
	serveCmd.Flags().Duration("timeout", 30*time.Second, "Per-request projection timeout")
	serveCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	rootCmd.AddCommand(illustrateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(fundsCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
