package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roboco-io/play2html/internal/ir"
	"github.com/roboco-io/play2html/internal/parser"
	"github.com/roboco-io/play2html/internal/render"
)

var (
	extractOutput      string
	extractFormat      string
	extractPrettyPrint bool
	extractValidate    bool
	extractStrict      bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "희곡 XML 문서에서 IR(중간 표현) 추출",
	Long: `희곡 XML 문서를 파싱하여 IR(Intermediate Representation)을 추출합니다.

렌더링 없이 막/장/대사/행 구조를 그대로 출력합니다.
출력 형식은 JSON, YAML 또는 텍스트(요약)를 지원합니다.
--validate 플래그를 사용하면 JSON 스키마로 구조를 검증합니다.

예시:
  play2html extract hamlet.xml
  play2html extract hamlet.xml -o hamlet.json --validate
  play2html extract hamlet.xml --format yaml
  play2html extract hamlet.xml --format text`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "json", "출력 형식 (json, yaml, text)")
	extractCmd.Flags().BoolVar(&extractPrettyPrint, "pretty", true, "JSON 들여쓰기 적용")
	extractCmd.Flags().BoolVar(&extractValidate, "validate", false, "JSON 스키마 검증")
	extractCmd.Flags().BoolVar(&extractStrict, "strict", false, "텍스트가 없는 TITLE/SPEAKER/STAGEDIR를 오류로 처리")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if err := checkInput(inputPath); err != nil {
		return err
	}

	play, err := parsePlay(inputPath, parser.Options{
		Strict: extractStrict || activeConfig().Input.Strict,
	})
	if err != nil {
		return fmt.Errorf("문서 파싱 실패: %w", err)
	}

	if extractValidate {
		data, err := encodePlay(cmd.Context(), play, "json")
		if err != nil {
			return fmt.Errorf("JSON 변환 실패: %w", err)
		}
		if err := ir.ValidateJSON([]byte(data)); err != nil {
			return fmt.Errorf("스키마 검증 실패: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "스키마 검증 통과")
	}

	output, err := formatOutput(cmd.Context(), play, extractFormat)
	if err != nil {
		return fmt.Errorf("출력 포맷팅 실패: %w", err)
	}

	if extractOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), output)
		return nil
	}

	if err := writeOutput(extractOutput, func(w io.Writer) error {
		_, err := io.WriteString(w, output+"\n")
		return err
	}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "IR 추출 완료: %s\n", extractOutput)
	return nil
}

func formatOutput(ctx context.Context, play *ir.Play, format string) (string, error) {
	switch strings.ToLower(format) {
	case "json":
		return encodePlay(ctx, play, "json")
	case "yaml", "yml":
		return encodePlay(ctx, play, "yaml")
	case "text":
		return formatAsText(play), nil
	default:
		return "", fmt.Errorf("지원하지 않는 출력 형식: %s", format)
	}
}

// encodePlay renders play with the named data renderer, without the
// trailing newline.
func encodePlay(ctx context.Context, play *ir.Play, name string) (string, error) {
	rd, err := render.Get(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := rd.Render(ctx, play, &buf, render.Options{Compact: !extractPrettyPrint}); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// formatAsText summarizes the play's structure for a quick look.
func formatAsText(play *ir.Play) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "제목: %s\n", ir.TitleOr(play.Title, "(없음)"))
	if play.Subtitle != nil {
		fmt.Fprintf(&sb, "부제: %s\n", *play.Subtitle)
	}

	stats := play.Stats()
	fmt.Fprintf(&sb, "구성: %d막, %d장, %d대사, %d행, %d지문\n",
		stats.Acts, stats.Scenes, stats.Speeches, stats.Lines, stats.StageDirections)
	if speakers := play.Speakers(); len(speakers) > 0 {
		fmt.Fprintf(&sb, "등장인물: %s\n", strings.Join(speakers, ", "))
	}

	if len(play.Acts) == 0 {
		return sb.String()
	}
	sb.WriteString("\n---\n\n")

	for _, act := range play.Acts {
		fmt.Fprintf(&sb, "[%s] %s\n", act.Kind, ir.TitleOr(act.Title, "(제목 없음)"))
		for _, scene := range act.Scenes {
			speeches, directions := 0, 0
			for _, part := range scene.Parts {
				if part.Type == ir.PartTypeSpeech {
					speeches++
				} else {
					directions++
				}
			}
			fmt.Fprintf(&sb, "  %s (대사 %d, 지문 %d)\n",
				ir.TitleOr(scene.Title, "(제목 없음)"), speeches, directions)
		}
	}

	return sb.String()
}
