// Command docstyle runs the style-transfer pipeline from the command line.
// It is a thin debugging surface over the library: the host boundary proper
// is the docstyle.Pipeline API.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/TuckerHoneycutt/docstyle"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	flagConfig     string
	flagReference  string
	flagTranscript string
	flagOutput     string
	flagDebug      bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "optional YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "enable debug logging")

	formatCmd.Flags().StringVarP(&flagReference, "reference", "r", "", "reference document (.docx or .pdf)")
	formatCmd.Flags().StringVarP(&flagTranscript, "transcript", "t", "", "transcript JSON file ([{role, text}, ...])")
	formatCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output path (default: suggested filename)")
	formatCmd.MarkFlagRequired("reference")
	formatCmd.MarkFlagRequired("transcript")

	rootCmd.AddCommand(formatCmd, inspectCmd)
}

var rootCmd = &cobra.Command{
	Use:   "docstyle",
	Short: "Apply a reference document's styling to a chat transcript",
	Long: `docstyle extracts visual styling (fonts, spacing, margins, headers,
footers, tables) from a reference DOCX or PDF document and reapplies it to a
conversation transcript, producing a new styled DOCX.`,
	SilenceUsage: true,
}

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Format a transcript using a reference document's styling",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, err := newPipeline()
		if err != nil {
			return err
		}

		src, err := os.ReadFile(flagReference)
		if err != nil {
			return fmt.Errorf("read reference: %w", err)
		}
		format, err := docstyle.Detect(flagReference)
		if err != nil {
			return err
		}
		msgs, err := readTranscript(flagTranscript)
		if err != nil {
			return err
		}

		res, err := pipe.Process(src, format, msgs)
		if err != nil {
			return err
		}

		out := flagOutput
		if out == "" {
			out = res.Filename
		}
		if err := os.WriteFile(out, res.Bytes, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes, %s)\n", out, len(res.Bytes), res.MIMEType)
		return nil
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <reference>",
	Short: "Print the extracted style model as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, err := newPipeline()
		if err != nil {
			return err
		}

		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read reference: %w", err)
		}
		format, err := docstyle.Detect(args[0])
		if err != nil {
			return err
		}

		model, err := pipe.ExtractStyle(src, format)
		if err != nil {
			return err
		}
		data, err := model.Marshal()
		if err != nil {
			return err
		}
		cmd.OutOrStdout().Write(data)
		return nil
	},
}

func newPipeline() (*docstyle.Pipeline, error) {
	var cfg docstyle.Config
	if flagConfig != "" {
		data, err := os.ReadFile(flagConfig)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	level := slog.LevelInfo
	if flagDebug {
		level = slog.LevelDebug
	}
	cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return docstyle.New(cfg), nil
}

// readTranscript parses a JSON transcript.  Both {role, text} and the
// {role, content} message shape used by chat APIs are accepted.
func readTranscript(path string) ([]docstyle.Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	var raw []struct {
		Role    string `json:"role"`
		Text    string `json:"text"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse transcript: %w", err)
	}

	msgs := make([]docstyle.Message, 0, len(raw))
	for _, m := range raw {
		text := m.Text
		if text == "" {
			text = m.Content
		}
		msgs = append(msgs, docstyle.Message{Role: m.Role, Text: text})
	}
	return msgs, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
