package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/roboco-io/play2html/internal/ir"
	"github.com/roboco-io/play2html/internal/parser"
	"github.com/roboco-io/play2html/internal/parser/playxml"
	"github.com/roboco-io/play2html/internal/render"
)

var (
	convertOutput     string
	convertFormat     string
	convertStylesheet string
	convertPageSize   string
	convertStrict     bool
	convertTrace      bool
	convertVerbose    bool
	convertQuiet      bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "희곡 XML 문서 하나를 변환",
	Long: `희곡 XML 문서 하나를 HTML 또는 다른 형식으로 변환합니다.

출력 형식을 지정하지 않으면 출력 파일의 확장자로 결정하며,
확장자로 알 수 없으면 설정 파일의 output.format(기본: html)을 사용합니다.
출력 파일을 지정하지 않으면 stdout으로 출력합니다.

--trace 플래그를 사용하면 구조 이벤트를 debug 레벨 로그로 stderr에 남깁니다.

예시:
  play2html convert hamlet.xml
  play2html convert hamlet.xml -o hamlet.html
  play2html convert hamlet.xml -o hamlet.pdf --page-size Letter
  play2html convert hamlet.xml -f markdown --strict`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	addConvertFlags(convertCmd.Flags())
	// play2html <file> accepts the same flags as convert.
	addConvertFlags(rootCmd.Flags())

	rootCmd.AddCommand(convertCmd)
}

func addConvertFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&convertOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	fs.StringVarP(&convertFormat, "format", "f", "", "출력 형식 (html, markdown, pdf, json, yaml, text)")
	fs.StringVar(&convertStylesheet, "stylesheet", "", "HTML에 연결할 스타일시트 경로 (기본: 내장 스타일)")
	fs.StringVar(&convertPageSize, "page-size", "", "PDF 용지 크기 (A4, Letter, ...)")
	fs.BoolVar(&convertStrict, "strict", false, "텍스트가 없는 TITLE/SPEAKER/STAGEDIR를 오류로 처리")
	fs.BoolVar(&convertTrace, "trace", false, "구조 이벤트 로그 출력")
	fs.BoolVarP(&convertVerbose, "verbose", "v", false, "상세 출력")
	fs.BoolVarP(&convertQuiet, "quiet", "q", false, "조용한 모드")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	cfg := activeConfig()

	if err := checkInput(inputPath); err != nil {
		return err
	}

	rd, err := selectRenderer(convertFormat, convertOutput, cfg.Output.Format)
	if err != nil {
		return err
	}

	if !convertQuiet && convertVerbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "입력 파일: %s\n", inputPath)
		fmt.Fprintf(cmd.ErrOrStderr(), "출력 형식: %s\n", rd.Name())
	}

	if convertTrace && log.Logger.GetLevel() > zerolog.DebugLevel {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	}

	play, err := parsePlay(inputPath, parser.Options{
		Strict: convertStrict || cfg.Input.Strict,
		Trace:  convertTrace,
	})
	if err != nil {
		return fmt.Errorf("문서 파싱 실패: %w", err)
	}

	if !convertQuiet && convertVerbose {
		stats := play.Stats()
		fmt.Fprintf(cmd.ErrOrStderr(), "파싱 완료: %d막, %d장, %d대사, %d행\n",
			stats.Acts, stats.Scenes, stats.Speeches, stats.Lines)
	}

	opts := render.Options{
		Stylesheet: firstNonEmpty(convertStylesheet, cfg.Render.Stylesheet),
		PageSize:   firstNonEmpty(convertPageSize, cfg.Render.PageSize),
		IndexTitle: cfg.Render.IndexTitle,
	}

	emit := func(w io.Writer) error {
		if err := rd.Render(cmd.Context(), play, w, opts); err != nil {
			return fmt.Errorf("렌더링 실패: %w", err)
		}
		return nil
	}

	if convertOutput == "" {
		return emit(cmd.OutOrStdout())
	}

	if err := writeOutput(convertOutput, emit); err != nil {
		return err
	}
	if !convertQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "변환 완료: %s -> %s\n", filepath.Base(inputPath), convertOutput)
	}
	return nil
}

// selectRenderer picks the renderer named by format, else the one matching
// the output file's extension, else the configured default.
func selectRenderer(format, output, fallback string) (render.Renderer, error) {
	name := format
	if name == "" && output != "" {
		if rd, ok := render.ForExtension(filepath.Ext(output)); ok {
			return rd, nil
		}
	}
	if name == "" {
		name = firstNonEmpty(fallback, "html")
	}

	rd, err := render.Get(name)
	if err != nil {
		return nil, fmt.Errorf("지원하지 않는 출력 형식입니다: %s (지원: %s)", name, strings.Join(render.List(), ", "))
	}
	return rd, nil
}

// checkInput verifies that path exists and looks like a play document.
func checkInput(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("파일을 찾을 수 없습니다: %s", path)
	}
	if parser.DetectFormat(path) == parser.FormatUnknown {
		return fmt.Errorf("지원하지 않는 파일 형식입니다: %s", filepath.Ext(path))
	}
	format, err := parser.DetectFile(path)
	if err != nil {
		return fmt.Errorf("파일 형식 확인 실패: %w", err)
	}
	if format == parser.FormatUnknown {
		return fmt.Errorf("희곡 XML 문서가 아닙니다: %s", path)
	}
	return nil
}

func parsePlay(path string, opts parser.Options) (*ir.Play, error) {
	p, err := playxml.New(path, opts)
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.Parse()
}

// writeOutput creates path and fills it with write, removing the file again
// when write fails.
func writeOutput(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
