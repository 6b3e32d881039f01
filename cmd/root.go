package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/bgokden/skynet-tfrecords/data"
	"github.com/magneticio/go-common/logging"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes of the process
const (
	ExitOK          = 0
	ExitInterrupted = 1
	ExitFailure     = 1
	ExitUsage       = 2
)

// Version should be in format vd.d.d where d is a decimal number
const Version string = "v0.1.0"

func init() {
	logging.Init(os.Stdout, os.Stderr)
}

// newRootCmd builds the conversion command:
//   skynet-tfrecords -d path/to/skynet-data/output -m train.txt
func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "skynet-tfrecords",
		Short: "Convert skynet-data image/label pairs into a tfrecords file",
		Long: `Convert the image/label pairs listed in a skynet-data manifest into
<manifest>.tfrecords, one tf.Example per manifest line:
  skynet-tfrecords -d path/to/skynet-data/output -m train.txt
  `,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return data.UsageErrorf("Unrecognized flag %v", args[0])
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := data.Resolve(data.Args{
				DataDir:   v.GetString("dir"),
				Manifest:  v.GetString("manifest"),
				OutputDir: v.GetString("output"),
				Process:   v.GetBool("process"),
			})
			if err != nil {
				return err
			}
			n, err := data.Convert(cmd.Context(), job)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %v\n", n, job.OutputPath)
			return nil
		},
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return data.UsageErrorf("%v", err)
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.skynet-tfrecords/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&logging.Verbose, "verbose", "v", false, "Verbose output")

	rootCmd.Flags().StringP("dir", "d", "", "skynet-data output directory containing the images and the manifest")
	rootCmd.Flags().StringP("manifest", "m", "", "manifest file name inside the data directory, usually train.txt or val.txt")
	rootCmd.Flags().StringP("output", "o", "", "directory to write the tfrecords file to (default is the data directory)")
	rootCmd.Flags().BoolP("process", "p", false, "accepted for compatibility, has no effect")
	for _, name := range []string{"dir", "manifest", "output", "process"} {
		v.BindPFlag(name, rootCmd.Flags().Lookup(name))
	}
	v.SetEnvPrefix("skynet")
	v.AutomaticEnv()
	v.BindEnv("config", "SKYNETCONFIG")

	rootCmd.AddCommand(newInspectCmd(), newVersionCmd())
	return rootCmd
}

// initConfig reads in config file and ENV variables if set.
func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile == "" {
		cfgFile = v.GetString("config")
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return data.UsageErrorf("Config file %v can not be read: %v", cfgFile, err)
		}
		logging.Info("Using config file: %v\n", v.ConfigFileUsed())
		return nil
	}
	home, err := homedir.Dir()
	if err != nil {
		logging.Info("Can not find home Directory: %v\n", err)
		return nil
	}
	v.AddConfigPath(filepath.FromSlash(home + "/.skynet-tfrecords"))
	v.SetConfigName("config")
	if err := v.ReadInConfig(); err == nil {
		logging.Info("Using config file: %v\n", v.ConfigFileUsed())
	}
	return nil
}

// Run executes the command line args and returns the process exit code.
// Usage errors and results are printed to out.
func Run(ctx context.Context, args []string, out io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	if len(args) == 0 {
		rootCmd.Usage()
		return ExitOK
	}
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return ExitOK
	case data.IsUsageError(err):
		fmt.Fprintln(out, err)
		fmt.Fprintln(out, data.CodeInvalidArguments)
		return ExitUsage
	case errors.Cause(err) == data.ErrInterrupted:
		fmt.Fprintln(out, "Received Ctrl + C... Exiting")
		return ExitInterrupted
	default:
		fmt.Fprintf(out, "%+v\n", err)
		return ExitFailure
	}
}

// Execute runs the command line of the process and exits with its code.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := Run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}
