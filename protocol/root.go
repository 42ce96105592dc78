package protocol

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/datazip-inc/sieve/constants"
	"github.com/datazip-inc/sieve/utils"
	"github.com/datazip-inc/sieve/utils/logger"
)

var (
	configPath     string
	shapeName      string
	conditionsPath string
	recordsPath    string
	outputPath     string

	commands = []*cobra.Command{}
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "sieve",
	Short: "build typed predicates from filter conditions",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		viper.SetEnvPrefix(constants.EnvPrefix)
		viper.AutomaticEnv()
		viper.SetDefault(constants.LogLevel, constants.DefaultLogLevel)
		viper.SetDefault(constants.Concurrency, runtime.GOMAXPROCS(0)*16)

		if configPath != "" {
			viper.SetConfigFile(configPath)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read config file[%s]: %s", configPath, err)
			}
		}

		logger.Init()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}

		if ok := utils.IsValidSubcommand(commands, args[0]); !ok {
			return fmt.Errorf("'%s' is an invalid command. Use 'sieve --help' to display usage guide", args[0])
		}

		return nil
	},
}

func CreateRootCommand() *cobra.Command {
	if !RootCmd.HasSubCommands() {
		RootCmd.AddCommand(commands...)
	}
	return RootCmd
}

func init() {
	commands = append(commands, operatorsCmd, checkCmd, filterCmd)

	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "", "", "(Optional) Config file holding LOG_LEVEL, LOG_FILE and CONCURRENCY")
	RootCmd.PersistentFlags().String("log-level", constants.DefaultLogLevel, "(Optional) Log level: debug, info, warn, error")
	RootCmd.PersistentFlags().String("log-file", "", "(Optional) Also write logs to this rotated file")
	RootCmd.PersistentFlags().Int("concurrency", 0, "(Optional) Records evaluated in parallel, defaults to 16 per CPU")

	_ = viper.BindPFlag(constants.LogLevel, RootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(constants.LogFile, RootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag(constants.Concurrency, RootCmd.PersistentFlags().Lookup("concurrency"))

	// Disable Cobra CLI's built-in usage and error handling
	RootCmd.SilenceUsage = true
	RootCmd.SilenceErrors = true
}
