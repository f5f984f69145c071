package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roboco-io/play2html/internal/render"
)

var rendererDescriptions = map[string]string{
	"html":     "HTML 문서 (내장 스타일 또는 외부 스타일시트)",
	"markdown": "Markdown 문서 (YAML front matter 포함)",
	"pdf":      "PDF 문서 (내장 글꼴, 막마다 새 페이지)",
	"json":     "IR JSON",
	"yaml":     "IR YAML",
	"text":     "대본 형식 일반 텍스트",
}

var renderersCmd = &cobra.Command{
	Use:   "renderers",
	Short: "사용 가능한 출력 형식 목록",
	Long: `convert와 build 명령에서 사용할 수 있는 출력 형식(렌더러) 목록을 표시합니다.

사용 예시:
  play2html convert hamlet.xml --format markdown
  play2html build plays/ --format pdf`,
	Run: runRenderers,
}

func init() {
	rootCmd.AddCommand(renderersCmd)
}

func runRenderers(cmd *cobra.Command, args []string) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "형식\t확장자\t기본\t설명")
	fmt.Fprintln(w, "----\t------\t----\t----")

	def := activeConfig().Output.Format
	for _, name := range render.List() {
		rd, err := render.Get(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			name, rd.Extension(), defaultMark(name, def), rendererDescription(name))
	}
}

func defaultMark(name, def string) string {
	if name == def {
		return "✓"
	}
	return ""
}

func rendererDescription(name string) string {
	if desc, ok := rendererDescriptions[name]; ok {
		return desc
	}
	return "-"
}
