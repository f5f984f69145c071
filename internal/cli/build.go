package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roboco-io/play2html/internal/batch"
	"github.com/roboco-io/play2html/internal/catalog"
	"github.com/roboco-io/play2html/internal/config"
	"github.com/roboco-io/play2html/internal/filewalker"
	"github.com/roboco-io/play2html/internal/parser"
	"github.com/roboco-io/play2html/internal/render"
)

var (
	buildOutDir     string
	buildFormat     string
	buildWorkers    int
	buildFailFast   bool
	buildNoIndex    bool
	buildStrict     bool
	buildCatalog    string
	buildStylesheet string
)

var buildCmd = &cobra.Command{
	Use:   "build [pattern...]",
	Short: "여러 희곡을 한 번에 변환하고 목차 생성",
	Long: `패턴(파일, 디렉토리 또는 glob)에 해당하는 희곡 XML 문서를 모두 변환하고
출력 디렉토리에 index.html 목차를 생성합니다.

패턴을 지정하지 않으면 설정 파일의 input.pattern
(기본: src/preprocessed/*.xml)을 사용합니다.
상대 경로는 PLAY2HTML_HOME(기본: 현재 디렉토리) 기준으로 해석합니다.

하나라도 변환에 실패하면 0이 아닌 종료 코드를 반환합니다.

예시:
  play2html build
  play2html build 'plays/*.xml' --out public
  play2html build plays/ --format markdown --no-index
  play2html build plays/ --catalog ~/.play2html/catalog.db`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildOutDir, "out", "", "출력 디렉토리 (기본: public)")
	buildCmd.Flags().StringVarP(&buildFormat, "format", "f", "", "출력 형식 (기본: html)")
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "동시 변환 수 (기본: 4)")
	buildCmd.Flags().BoolVar(&buildFailFast, "fail-fast", false, "첫 실패 시 중단")
	buildCmd.Flags().BoolVar(&buildNoIndex, "no-index", false, "index.html 생성 안 함")
	buildCmd.Flags().BoolVar(&buildStrict, "strict", false, "텍스트가 없는 TITLE/SPEAKER/STAGEDIR를 오류로 처리")
	buildCmd.Flags().StringVar(&buildCatalog, "catalog", "", "변환 기록을 저장할 SQLite 파일")
	buildCmd.Flags().StringVar(&buildStylesheet, "stylesheet", "", "HTML에 연결할 스타일시트 경로")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	patterns := args
	if len(patterns) == 0 {
		patterns = []string{cfg.Input.Pattern}
	}

	sources, err := filewalker.Discover(patterns...)
	if err != nil {
		return fmt.Errorf("입력 파일 탐색 실패: %w", err)
	}
	if len(sources) == 0 {
		return fmt.Errorf("변환할 파일이 없습니다: %v", patterns)
	}

	rd, err := render.Get(cfg.Output.Format)
	if err != nil {
		return fmt.Errorf("지원하지 않는 출력 형식입니다: %s", cfg.Output.Format)
	}

	opts := batch.Options{
		Renderer: rd,
		RenderOptions: render.Options{
			Stylesheet: cfg.Render.Stylesheet,
			PageSize:   cfg.Render.PageSize,
			IndexTitle: cfg.Render.IndexTitle,
		},
		ParserOptions: parser.Options{Strict: cfg.Input.Strict},
		OutDir:        cfg.Output.Dir,
		Workers:       cfg.Workers,
		Index:         cfg.Output.Index,
		FailFast:      buildFailFast,
	}

	if cfg.Catalog.Path != "" {
		cat, err := catalog.Open(cmd.Context(), cfg.Catalog.Path)
		if err != nil {
			return fmt.Errorf("카탈로그 열기 실패: %w", err)
		}
		defer cat.Close()
		opts.Catalog = cat
	}

	report, err := batch.Run(cmd.Context(), sources, opts)
	if err != nil {
		return fmt.Errorf("변환 실패: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "변환 완료: %d개 성공, %d개 실패, %d개 건너뜀\n",
		report.Converted(), report.Failed(), report.Skipped())
	if report.Index != "" {
		fmt.Fprintf(out, "목차: %s\n", report.Index)
	}

	if err := report.Err(); err != nil {
		return fmt.Errorf("%d개 파일 변환 실패: %w", report.Failed(), err)
	}
	if err := cmd.Context().Err(); err != nil {
		return fmt.Errorf("변환 중단됨: %w", err)
	}
	return nil
}

// buildConfig merges the build flags over the loaded configuration and
// resolves relative paths against the base directory.
func buildConfig() (*config.Config, error) {
	c := *activeConfig()
	cfg := &c

	if buildOutDir != "" {
		cfg.Output.Dir = buildOutDir
	}
	if buildFormat != "" {
		if err := cfg.Set("output.format", buildFormat); err != nil {
			return nil, err
		}
	}
	if buildWorkers > 0 {
		cfg.Workers = buildWorkers
	}
	if buildNoIndex {
		cfg.Output.Index = false
	}
	if buildStrict {
		cfg.Input.Strict = true
	}
	if buildCatalog != "" {
		cfg.Catalog.Path = buildCatalog
	}
	if buildStylesheet != "" {
		cfg.Render.Stylesheet = buildStylesheet
	}

	base, err := config.BaseDir()
	if err != nil {
		return nil, err
	}
	cfg.ResolvePaths(base)
	return cfg, nil
}
