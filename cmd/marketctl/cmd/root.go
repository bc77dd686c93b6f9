// Package cmd implements the marketctl CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/junseo/marketctl/internal/market"
	"github.com/junseo/marketctl/internal/token"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "marketctl",
		Short: "CLI client for the secondhand marketplace",
		Long: "marketctl is a command-line client for the secondhand marketplace API.\n" +
			"It lets you browse and sell products, manage your cart, check your\n" +
			"purchase history, and moderate listings from the terminal.",
	}
)

// Root returns the root command, for doc generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.marketctl.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8000", "marketplace API server URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().
		String("token-file", "", "token file (default $HOME/.marketctl/tokens.json)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("token_file", rootCmd.PersistentFlags().Lookup("token-file")))

	rootCmd.AddCommand(authCmd())
	rootCmd.AddCommand(productsCmd())
	rootCmd.AddCommand(cartCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(adminCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".marketctl")
	}

	viper.SetEnvPrefix("MARKETCTL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() (*market.Client, error) {
	path := viper.GetString("token_file")
	if path == "" {
		var err error
		path, err = token.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	return market.New(
		viper.GetString("server"),
		market.WithTokenStore(token.NewFile(path)),
	), nil
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
