// cmd/root.go
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Kuraiyume/Akari/internal/core"
	"github.com/Kuraiyume/Akari/internal/core/logger"
	"github.com/Kuraiyume/Akari/internal/modules/dnsenum"
	"github.com/Kuraiyume/Akari/internal/modules/geolocation"
	"github.com/Kuraiyume/Akari/internal/output"
	"github.com/Kuraiyume/Akari/internal/reporting"
)

var (
	verbose = false
	version = "1.0.0"

	flagDomains     []string
	flagTypes       []string
	flagTimeout     float64
	flagConfigPath  string
	flagOutput      string
	flagFormat      string
	flagNameserver  string
	flagIPInfoToken string
	flagQPS         int
)

// rootCmd represents the base command; akari is single-purpose, so the whole
// pipeline runs here.
var rootCmd = &cobra.Command{
	Use:   "akari",
	Short: "Akari: Advanced DNS Enumerator.",
	Long: `Akari performs DNS reconnaissance on one or more domains: it queries a
configurable set of record types with timeout and bounded retry, optionally
enriches resolved A-record addresses with geolocation data, and emits the
results as text, JSON, or CSV to stdout or a file.`,
	Example: `  akari -d example.com
  akari -d example.com -t A -t MX --timeout 2.5
  akari -c akari.ini -o results.json -f json
  akari -d example.com -n 1.1.1.1 --ipinfo-token $IPINFO_TOKEN`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetupLogger("debug")
		} else {
			logger.SetupLogger("info")
		}
	},
	Run: runEnumeration,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	printBanner()
	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func runEnumeration(cmd *cobra.Command, args []string) {
	log := logger.GetLogger()

	cfg, err := core.ResolveConfig(core.Flags{
		Domains:     flagDomains,
		Types:       flagTypes,
		Timeout:     flagTimeout,
		ConfigPath:  flagConfigPath,
		Output:      flagOutput,
		Format:      flagFormat,
		Nameserver:  flagNameserver,
		IPInfoToken: flagIPInfoToken,
		QPS:         flagQPS,
	}, cmd.Flags().Changed)
	if err != nil {
		color.Red("❌ %v", err)
		os.Exit(1)
	}

	types, err := dnsenum.ParseTypes(cfg.RecordTypes)
	if err != nil {
		color.Red("❌ %v", err)
		os.Exit(1)
	}

	color.Cyan("\n🔎 Enumerating DNS records for %s...", strings.Join(cfg.Domains, ", "))
	engine := dnsenum.NewEngine(cfg.Nameserver, cfg.TimeoutDuration(), cfg.QPS)
	log.Infof("Querying %d record types across %d domains via %s", len(types), len(cfg.Domains), engine.Server())

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Writer = os.Stderr
	s.Suffix = " Querying records..."
	s.Start()
	results := engine.Run(cfg.Domains, types)
	s.Stop()

	var geo map[string]*geolocation.GeoInfo
	if cfg.IPInfoToken != "" {
		if ips := reporting.CollectIPv4s(results); len(ips) > 0 {
			color.Yellow("🌐 Looking up geolocation for %d addresses...", len(ips))
			geo = geolocation.NewClient(cfg.IPInfoToken).Enrich(ips)
		}
	}

	entries := reporting.Build(cfg.Domains, results, geo)
	formatted, err := output.Format(entries, cfg.OutputFormat)
	if err != nil {
		color.Red("❌ Output formatting failed: %v", err)
		os.Exit(1)
	}

	if cfg.OutputPath != "" {
		if err := output.WriteOutput(cfg.OutputPath, formatted); err != nil {
			color.Red("❌ Failed to write output: %v", err)
			os.Exit(1)
		}
		reporting.PrintSummary(entries)
		color.Cyan("📄 Results saved to %s", cfg.OutputPath)
	} else {
		fmt.Println(formatted)
	}

	log.Infof("Enumeration of %d domains completed", len(cfg.Domains))
}

func printBanner() {
	banner := `
    _    _             _
   / \  | | ____ _ _ _(_)
  / _ \ | |/ / _` + "`" + ` | '_| |
 / ___ \|   < (_| | | | |
/_/   \_\_|\_\__,_|_| |_|
`
	color.Cyan(banner)
	color.Magenta("Akari v%s - Advanced DNS Enumerator", version)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging.")

	rootCmd.Flags().StringSliceVarP(&flagDomains, "domain", "d", nil, "Target domain to look up (repeatable or comma-separated).")
	rootCmd.Flags().StringSliceVarP(&flagTypes, "types", "t", dnsenum.DefaultTypeNames(), "DNS record types to look up.")
	rootCmd.Flags().Float64Var(&flagTimeout, "timeout", 5.0, "Timeout for DNS queries in seconds.")
	rootCmd.Flags().StringVarP(&flagConfigPath, "config", "c", "", "Path to configuration file (INI, YAML or JSON).")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file to save the results.")
	rootCmd.Flags().StringVarP(&flagFormat, "format", "f", "text", "Output format: text, json, csv.")
	rootCmd.Flags().StringVarP(&flagNameserver, "nameserver", "n", "", "Nameserver IP to query instead of the system resolver.")
	rootCmd.Flags().StringVar(&flagIPInfoToken, "ipinfo-token", os.Getenv("IPINFO_TOKEN"), "ipinfo.io token for geolocation enrichment (or set IPINFO_TOKEN env).")
	rootCmd.Flags().IntVar(&flagQPS, "qps", 0, "Limit queries per second (0 = no limit).")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("{{.Version}}\r\n")
}
