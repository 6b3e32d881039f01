package cmd

import (
	"github.com/bgokden/skynet-tfrecords/data"
	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.tfrecords>",
		Short: "Summarize the records of a tfrecords file",
		Long: `Print height, width, image size and label of every record as YAML:
  skynet-tfrecords inspect train.tfrecords
  `,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return data.UsageErrorf("inspect takes exactly one tfrecords file, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := data.Inspect(args[0])
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(summaries)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
