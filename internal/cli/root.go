// Package cli implements the play2html command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/roboco-io/play2html/internal/config"
	"github.com/roboco-io/play2html/internal/logging"
)

var version = "dev"

var (
	logLevel  string
	logFormat string
	logFile   string
	logCloser io.Closer

	// appConfig is the configuration loaded before each command runs.
	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "play2html [file]",
	Short: "희곡 XML 문서를 HTML로 변환",
	Long: `play2html은 PLAY/ACT/SCENE/SPEECH/LINE 구조의 희곡 XML 문서를
HTML, Markdown, PDF 등 읽기 좋은 형식으로 변환하는 도구입니다.

파일을 직접 지정하면 convert 명령과 동일하게 동작하며 같은 플래그를 사용합니다.

환경 변수:
  PLAY2HTML_HOME        상대 경로의 기준 디렉토리
  PLAY2HTML_LOG_LEVEL   로그 레벨 (trace, debug, info, warn, error)
  PLAY2HTML_LOG_FORMAT  로그 형식 (console, json)

예시:
  play2html hamlet.xml
  play2html hamlet.xml -o hamlet.md
  play2html convert hamlet.xml -o hamlet.html
  play2html build 'plays/*.xml' --out public`,
	Args:               cobra.MaximumNArgs(1),
	SilenceUsage:       true,
	PersistentPreRunE:  initialize,
	PersistentPostRunE: closeLogging,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runConvert(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 정보 표시",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "play2html %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "로그 레벨 (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "로그 형식 (console, json)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "로그 파일 경로 (자동 로테이션)")

	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context.
func Execute() error {
	ctx, cancel := setupContext()
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// loadConfig loads the user configuration with environment overrides applied.
func loadConfig() (*config.Config, error) {
	loader, err := config.NewLoader()
	if err != nil {
		return nil, fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("설정 로드 실패: %w", err)
	}
	return cfg, nil
}

// activeConfig returns the loaded configuration, or the defaults when no
// configuration has been loaded.
func activeConfig() *config.Config {
	if appConfig == nil {
		return config.DefaultConfig()
	}
	return appConfig
}

// initialize loads the configuration and configures log.Logger from it, the
// environment and the --log-* flags, in increasing precedence.
func initialize(cmd *cobra.Command, args []string) error {
	opts := logging.FromEnv()
	cfg, cfgErr := loadConfig()
	appConfig = cfg
	if cfgErr == nil {
		opts = logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			File:   cfg.Logging.File,
		}
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		opts.Level = logLevel
	}
	if flags.Changed("log-format") {
		opts.Format = logFormat
	}
	if flags.Changed("log-file") {
		opts.File = logFile
	}

	logger, closer, err := logging.New(opts, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("로거 초기화 실패: %w", err)
	}
	log.Logger = logger
	logCloser = closer

	if cfgErr != nil {
		log.Warn().Err(cfgErr).Msg("Using default configuration")
	}
	return nil
}

func closeLogging(cmd *cobra.Command, args []string) error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return err
}
