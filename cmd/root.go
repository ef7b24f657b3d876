package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "microhire"
	envPrefix = "MICROHIRE"
)

type Config struct {
	APIURL       string      `mapstructure:"api-url" validate:"required,url"`
	UserAgent    string      `mapstructure:"user-agent"`
	StateFile    string      `mapstructure:"state-file" validate:"required"`
	Email        string      `mapstructure:"email"`
	Password     string      `mapstructure:"password"`
	PasswordFile string      `mapstructure:"password-file"`
	Jobs         *JobsConfig `mapstructure:"jobs"`
}

type JobsConfig struct {
	MinMatch       int    `mapstructure:"min-match" validate:"min=0,max=100"`
	IncludeApplied bool   `mapstructure:"include-applied"`
	Search         string `mapstructure:"search"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "microhire is a cli for browsing freelance jobs on a MicroHire backend",
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is microhire.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("api-url", "", "backend api url")
	rootCmd.PersistentFlags().String("state-file", "", "sqlite file holding the session and saved jobs")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("api-url", rootCmd.PersistentFlags().Lookup("api-url"))
	viper.BindPFlag("state-file", rootCmd.PersistentFlags().Lookup("state-file"))

	viper.SetDefault("api-url", "http://localhost:8080/api")
	viper.SetDefault("user-agent", app)
	viper.SetDefault("state-file", defaultStateFile())
	viper.SetDefault("email", "")
	viper.SetDefault("password", "")
	viper.SetDefault("password-file", "")
	viper.SetDefault("jobs.min-match", 0)
	viper.SetDefault("jobs.include-applied", false)
	viper.SetDefault("jobs.search", "")

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
}

// initConfig reads the config file when there is one. Without --config a missing
// microhire.yaml is fine since every key has a default.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		// We can't proceed if the config file parsed with error.
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.Jobs == nil {
		config.Jobs = &JobsConfig{}
	}

	if err := validator.New().Struct(config); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "." + app + ".db"
	}
	return filepath.Join(dir, app, "state.db")
}
