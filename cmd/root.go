/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/papersdb/internal/iofs"
	"github.com/gnames/papersdb/internal/iologger"
	app "github.com/gnames/papersdb/pkg"
	"github.com/gnames/papersdb/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
// Extracted as a function to facilitate testing.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "papersdb",
		Short:   "PapersDB manages a catalog of scientific papers",
		Long: `PapersDB is a reference manager for scientific papers.

Every paper gets a short derived key built from its title, category code,
project code, year and position in the catalog. The key is also the name
of the PDF file of the paper, <key>.pdf.

Features:
  - Records: add, list, show, update and delete papers
  - Vocabularies: category and project codes
  - Keys: five naming schemes, checks of missing and duplicate keys
  - Rename: move a catalog to another naming scheme with its PDF files

The catalog is kept in SQLite (default) or PostgreSQL.
Configuration: ~/.config/papersdb/config.yaml`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "papersdb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for papersdb")

	rootCmd.PersistentFlags().StringP(
		"store", "s", "", "SQLite file of the catalog",
	)
	rootCmd.PersistentFlags().String(
		"pdf-root", "", "directory with PDF files of papers",
	)

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getAddCmd(),
		getListCmd(),
		getShowCmd(),
		getUpdateCmd(),
		getDeleteCmd(),
		getAttachCmd(),
		getVocabCmd(),
		getKeyCmd(),
		getCheckCmd(),
		getStatsCmd(),
		getExportCmd(),
		getRenameCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	opts = append(opts, flagOptions(cmd)...)
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"store", cfg.Store.Driver,
	)

	return nil
}

// flagOptions converts persistent flags into options. Flags take
// precedence over the configuration file and environment.
func flagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()
	if flags.Changed("store") {
		s, _ := flags.GetString("store")
		res = append(res, config.OptStorePath(s))
	}
	if flags.Changed("pdf-root") {
		s, _ := flags.GetString("pdf-root")
		res = append(res, config.OptArtifactsRoot(s))
	}
	return res
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log, true)
}

func runRoot(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("PAPERSDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Store configuration
	v.BindEnv("store.driver", "PAPERSDB_STORE_DRIVER")
	v.BindEnv("store.path", "PAPERSDB_STORE_PATH")
	v.BindEnv("store.host", "PAPERSDB_STORE_HOST")
	v.BindEnv("store.port", "PAPERSDB_STORE_PORT")
	v.BindEnv("store.user", "PAPERSDB_STORE_USER")
	v.BindEnv("store.password", "PAPERSDB_STORE_PASSWORD")
	v.BindEnv("store.database", "PAPERSDB_STORE_DATABASE")
	v.BindEnv("store.ssl_mode", "PAPERSDB_STORE_SSL_MODE")

	v.BindEnv("artifacts.root", "PAPERSDB_ARTIFACTS_ROOT")
	v.BindEnv("naming.scheme", "PAPERSDB_NAMING_SCHEME")
	v.BindEnv("search.limit", "PAPERSDB_SEARCH_LIMIT")

	// Log configuration
	v.BindEnv("log.level", "PAPERSDB_LOG_LEVEL")
	v.BindEnv("log.format", "PAPERSDB_LOG_FORMAT")
	v.BindEnv("log.destination", "PAPERSDB_LOG_DESTINATION")

	v.AutomaticEnv()
}
