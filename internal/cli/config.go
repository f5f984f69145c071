package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roboco-io/play2html/internal/config"
	"github.com/roboco-io/play2html/internal/render"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "설정 관리",
	Long: `play2html 설정을 관리합니다.

설정 파일 위치: ~/.play2html/config.yaml
.env 파일은 현재 디렉토리와 ~/.play2html/에서 읽습니다.

하위 명령:
  show    현재 설정 표시
  init    기본 설정 파일 생성
  set     설정 값 변경
  path    설정 파일 경로 표시`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "현재 설정 표시",
	Long: `현재 적용된 설정을 표시합니다.

환경 변수가 설정되어 있으면 해당 값이 적용됩니다.
설정 파일이 없으면 기본값이 표시됩니다.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "기본 설정 파일 생성",
	Long: `기본 설정 파일을 ~/.play2html/config.yaml에 생성합니다.

이미 설정 파일이 있는 경우 오류가 발생합니다.
기존 파일을 덮어쓰려면 --force 플래그를 사용하세요.`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "설정 값 변경",
	Long: `설정 값을 변경합니다.

지원하는 키:
  input.pattern       입력 파일 패턴 (glob 또는 디렉토리)
  input.strict        텍스트 누락을 오류로 처리 (true, false)
  output.dir          출력 디렉토리
  output.format       출력 형식 (html, markdown, pdf, json, yaml, text)
  output.index        index.html 생성 여부 (true, false)
  render.stylesheet   HTML 스타일시트 경로
  render.page_size    PDF 용지 크기
  render.index_title  목차 제목
  workers             동시 변환 수
  catalog.path        카탈로그 SQLite 파일 경로
  logging.level       로그 레벨
  logging.format      로그 형식 (console, json)
  logging.file        로그 파일 경로

예시:
  play2html config set output.dir docs
  play2html config set workers 8`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "설정 파일 경로 표시",
	Run: func(cmd *cobra.Command, args []string) {
		loader, err := config.NewLoader()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "오류: %v\n", err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
	},
}

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "기존 설정 파일 덮어쓰기")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader, err := config.NewLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	// Show config file status
	if loader.Exists() {
		fmt.Fprintf(cmd.OutOrStdout(), "설정 파일: %s\n\n", loader.ConfigPath())
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "설정 파일: (기본값 사용)\n\n")
	}

	// Display as YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("설정 출력 실패: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	// Show environment variable overrides
	fmt.Fprintln(cmd.OutOrStdout(), "환경 변수:")
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	envVars := []struct {
		key  string
		desc string
	}{
		{config.HomeEnv, "기준 디렉토리"},
		{"PLAY2HTML_INPUT", "입력 파일 패턴"},
		{"PLAY2HTML_OUTPUT_DIR", "출력 디렉토리"},
		{"PLAY2HTML_FORMAT", "출력 형식"},
		{"PLAY2HTML_WORKERS", "동시 변환 수"},
		{"PLAY2HTML_STRICT", "엄격 모드"},
		{"PLAY2HTML_CATALOG", "카탈로그 경로"},
		{"PLAY2HTML_LOG_LEVEL", "로그 레벨"},
		{"PLAY2HTML_LOG_FORMAT", "로그 형식"},
		{"PLAY2HTML_LOG_FILE", "로그 파일"},
	}

	for _, ev := range envVars {
		status := "(미설정)"
		if v := os.Getenv(ev.key); v != "" {
			status = v
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", ev.key, ev.desc, status)
	}
	w.Flush()

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	loader, err := config.NewLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	if loader.Exists() && !configForce {
		return fmt.Errorf("설정 파일이 이미 존재합니다: %s\n덮어쓰려면 --force 플래그를 사용하세요", loader.ConfigPath())
	}

	if err := loader.Save(config.DefaultConfig()); err != nil {
		return fmt.Errorf("설정 파일 생성 실패: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "설정 파일 생성됨: %s\n", loader.ConfigPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	loader, err := config.NewLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	if !contains(config.Keys, key) {
		return fmt.Errorf("알 수 없는 설정 키: %s\n지원하는 키: %s", key, strings.Join(config.Keys, ", "))
	}
	if key == "output.format" && !render.DefaultRegistry.Has(value) {
		return fmt.Errorf("유효하지 않은 출력 형식: %s (지원: %s)", value, strings.Join(render.List(), ", "))
	}
	if err := cfg.Set(key, value); err != nil {
		return fmt.Errorf("유효하지 않은 설정 값: %w", err)
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("설정 저장 실패: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "설정 변경됨: %s = %s\n", key, value)
	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
