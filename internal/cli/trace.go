package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/roboco-io/play2html/internal/parser"
	"github.com/roboco-io/play2html/internal/parser/playxml"
)

var traceJSON bool

var traceCmd = &cobra.Command{
	Use:   "trace <file>",
	Short: "구조 이벤트 목록 출력",
	Long: `희곡 XML 문서를 순회하며 발생하는 구조 이벤트를 순서대로 출력합니다.

문서 모델을 만들지 않고 이벤트만 stdout에 기록하므로
변환 결과가 예상과 다를 때 원인을 찾는 데 사용합니다.

예시:
  play2html trace hamlet.xml
  play2html trace hamlet.xml --json | jq .event`,
	Args: cobra.ExactArgs(1),
	RunE: runTrace,
}

func init() {
	traceCmd.Flags().BoolVar(&traceJSON, "json", false, "JSON Lines 형식으로 출력")

	rootCmd.AddCommand(traceCmd)
}

func runTrace(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if err := checkInput(inputPath); err != nil {
		return err
	}

	p, err := playxml.New(inputPath, parser.Options{Strict: activeConfig().Input.Strict})
	if err != nil {
		return fmt.Errorf("문서 읽기 실패: %w", err)
	}
	defer p.Close()

	var logger zerolog.Logger
	if traceJSON {
		logger = zerolog.New(cmd.OutOrStdout())
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        cmd.OutOrStdout(),
			NoColor:    true,
			PartsOrder: []string{zerolog.MessageFieldName},
		})
	}

	tracer := parser.NewTracer(logger).WithLevel(zerolog.NoLevel)
	if err := p.Walk(tracer); err != nil {
		return fmt.Errorf("문서 순회 실패: %w", err)
	}
	return nil
}
