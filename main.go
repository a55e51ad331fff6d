package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/MUHAMMAD-FARMAN/Trusai/capture"
	cfg "github.com/MUHAMMAD-FARMAN/Trusai/config"
	"github.com/MUHAMMAD-FARMAN/Trusai/orchestrator"
)

func newLogger(level string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level == "" {
		return log, nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(lvl)
	return log, nil
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "trusai",
		Short:         "Live facial and speech emotion capture with comparison charts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (default: config/$CONFIG_ENV/config.yaml)")

	root.AddCommand(newRunCmd(&configPath), newConfigCmd(&configPath))
	return root
}

func newRunCmd(configPath *string) *cobra.Command {
	var (
		frames      string
		transcripts string
		duration    time.Duration
		listen      string
		out         string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Capture frames, score them and chart both emotion streams until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := cfg.Load(*configPath)
			if err != nil {
				return err
			}
			log, err := newLogger(conf.Session.LogLvl)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			s := orchestrator.NewSession(conf, capture.StillCamera{Dir: frames}, log)
			sum, err := s.Run(ctx, orchestrator.RunOptions{
				Transcripts: transcripts,
				Listen:      listen,
				Outputs:     out,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "session %s: %d facial, %d speech readings (%d ticks, %d dropped)\n",
				sum.SessionID, sum.FacialReadings, sum.SpeechReadings, sum.Capture.Ticks, sum.Capture.Dropped)
			if sum.OutputDir != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "report: %s\n", sum.OutputDir)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&frames, "frames", "", "directory of still frames standing in for the camera")
	cmd.Flags().StringVar(&transcripts, "transcripts", "", "text file replayed line by line as speech")
	cmd.Flags().DurationVar(&duration, "duration", 0, "stop after this long (0 runs until interrupted)")
	cmd.Flags().StringVar(&listen, "listen", "", "serve live charts on this address")
	cmd.Flags().StringVar(&out, "out", "", "write the session report under this directory")
	_ = cmd.MarkFlagRequired("frames")
	return cmd
}

func newConfigCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := cfg.Load(*configPath)
			if err != nil {
				return err
			}
			b, err := conf.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "trusai:", err)
		os.Exit(1)
	}
}
