package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/logfwd/logfwd/appender"
	"github.com/logfwd/logfwd/internal"
)

// release information, overridden at build time
var (
	ReleaseVersion = "dev"
	ReleaseCommit  = ""
)

var cfgFile string
var tmpConfig = &appender.Config{}

var RootCmd = &cobra.Command{
	Use:   "logfwd-cli",
	Short: "Forward log messages to a remote aggregation server",
	Long:  ``,
}

func init() {
	cobra.OnInitialize(initConfig)

	pflags := RootCmd.PersistentFlags()
	dconf := appender.DefaultConfig

	pflags.StringVarP(&cfgFile, "config", "c", "",
		"load configuration from `FILE`")
	pflags.BoolVarP(&tmpConfig.Verbose, "verbose", "v", dconf.Verbose,
		"print debug output")
	pflags.StringVar(&tmpConfig.Host, "host", dconf.Host,
		"remote `HOST` to connect to")
	pflags.IntVar(&tmpConfig.Port, "port", dconf.Port,
		"remote `PORT` to connect to")
	pflags.DurationVar(&tmpConfig.Timeout, "timeout", dconf.Timeout,
		"connect and per-call `TIMEOUT`")
	pflags.StringVar(&tmpConfig.Category, "category", dconf.Category,
		"a `CATEGORY` for submitted messages")
	pflags.StringVar(&tmpConfig.Encoding, "encoding", dconf.Encoding,
		"text `ENCODING` applied to message bodies")

	for _, name := range []string{"verbose", "host", "port", "timeout", "category", "encoding"} {
		internal.LogError(viper.BindPFlag(name, pflags.Lookup(name)))
	}

	RootCmd.AddCommand(WriteCmd)
	RootCmd.AddCommand(VersionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("logfwd")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("logfwd")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		internal.Debugf(viper.GetBool("verbose"), "using config file %s", viper.ConfigFileUsed())
	}

	tmpConfig.Verbose = viper.GetBool("verbose")
	tmpConfig.Host = viper.GetString("host")
	tmpConfig.Port = viper.GetInt("port")
	tmpConfig.Timeout = viper.GetDuration("timeout")
	tmpConfig.Category = viper.GetString("category")
	tmpConfig.Encoding = viper.GetString("encoding")
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
