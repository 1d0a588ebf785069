package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dotcommander/gradecast/internal/config"
	"github.com/dotcommander/gradecast/internal/discovery"
	"github.com/dotcommander/gradecast/internal/git"
	"github.com/dotcommander/gradecast/internal/outputters"
)

// version is overridden at build time with -ldflags "-X".
var version = "dev"

var (
	rootPath     string
	quiet        bool
	verbose      bool
	outputFormat string
	outputFile   string
	failOn       string
	stagedMode   bool
	changedMode  bool
)

// errNoChanges reports that --staged or --changed found no gradebooks.
var errNoChanges = errors.New("no changed gradebooks")

// Seams for tests.
var (
	exitFunc           = os.Exit
	stdout   io.Writer = os.Stdout
	stderr   io.Writer = os.Stderr
)

var rootCmd = &cobra.Command{
	Use:   "gradecast",
	Short: "Grade prediction for weighted, hurdled course assessments",
	Long: `gradecast reads semester gradebooks and works out what you still need.

For every course it knows the weight already assessed, the marks earned and
the hurdles each assessment sets. From that it predicts the minimum score a
future assessment needs for the course to reach a target, or reports that a
missed hurdle has already failed the course.

Without a subcommand gradecast prints the summary of every gradebook found
under the root.`,
	Version: version,
	Args:    cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSummary(args); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitFunc(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&rootPath, "root", "r", "", "Directory searched for gradebooks (default \".\")")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Output format for reports (console|json|markdown)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Write the report or imported gradebook to a file")
	rootCmd.PersistentFlags().StringVarP(&failOn, "fail-on", "", "error", "Exit 1 from check on this level or worse (error|warning)")
	rootCmd.PersistentFlags().BoolVar(&stagedMode, "staged", false, "Only gradebooks staged in git (for pre-commit hooks)")
	rootCmd.PersistentFlags().BoolVar(&changedMode, "changed", false, "Only gradebooks changed in git since HEAD")

	_ = viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("failOn", rootCmd.PersistentFlags().Lookup("fail-on"))
}

func initConfig() {
	for _, path := range config.ConfigFiles {
		if _, err := os.Stat(path); err == nil {
			viper.SetConfigFile(path)
			if err := viper.ReadInConfig(); err != nil {
				fmt.Fprintf(stderr, "Error reading config file: %v\n", err)
				exitFunc(1)
			}
			break
		}
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	return cfg, nil
}

func newOutputter(cfg *config.Config) *outputters.Outputter {
	return outputters.NewOutputter(cfg, stdout, version)
}

// resolveGradebooks turns command arguments into gradebook paths. Files are
// used as given, directories are searched with the configured patterns, and
// no arguments means searching the configured root, or asking git when
// --staged or --changed is set.
func resolveGradebooks(args []string, cfg *config.Config) ([]string, error) {
	if len(args) == 0 && (stagedMode || changedMode) {
		return gitGradebooks(cfg)
	}
	if len(args) == 0 {
		args = []string{cfg.Root}
	}

	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if info.IsDir() {
			files, err := discovery.NewFileDiscovery(arg, cfg.Patterns, cfg.FollowSymlinks).DiscoverFiles()
			if err != nil {
				return nil, err
			}
			if cfg.Verbose {
				log.Printf("Discovered %d gradebooks under %s", len(files), arg)
			}
			paths = append(paths, discovery.Paths(files)...)
			continue
		}

		absPath, err := discovery.ValidateFilePath(arg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, absPath)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no gradebooks found (looked for %v)", cfg.Patterns)
	}
	return paths, nil
}

func gitGradebooks(cfg *config.Config) ([]string, error) {
	var paths []string
	var err error
	if stagedMode {
		paths, err = git.StagedGradebooks(cfg.Root, cfg.Patterns)
	} else {
		paths, err = git.ChangedGradebooks(cfg.Root, cfg.Patterns)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		log.Printf("git reports %d changed gradebooks under %s", len(paths), cfg.Root)
	}
	if len(paths) == 0 {
		return nil, errNoChanges
	}
	return paths, nil
}

// nothingChanged handles errNoChanges: it is a successful no-op.
func nothingChanged(err error, cfg *config.Config) bool {
	if !errors.Is(err, errNoChanges) {
		return false
	}
	if !cfg.Quiet {
		fmt.Fprintln(stdout, "No changed gradebooks to process")
	}
	return true
}
