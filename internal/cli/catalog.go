package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roboco-io/play2html/internal/catalog"
	"github.com/roboco-io/play2html/internal/config"
)

var catalogPath string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "변환 기록 관리",
	Long: `build 명령이 기록한 변환 목록(SQLite 카탈로그)을 조회하고 관리합니다.

카탈로그 경로는 --catalog 플래그 또는 설정 파일의 catalog.path로 지정합니다.

하위 명령:
  list    변환된 희곡 목록 표시
  show    희곡 하나의 기록 표시
  remove  기록 삭제`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "변환된 희곡 목록 표시",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <source>",
	Short: "희곡 하나의 기록 표시",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

var catalogRemoveCmd = &cobra.Command{
	Use:   "remove <source>",
	Short: "기록 삭제",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogRemove,
}

func init() {
	catalogCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "카탈로그 SQLite 파일 경로")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogRemoveCmd)

	rootCmd.AddCommand(catalogCmd)
}

func openCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path := firstNonEmpty(catalogPath, activeConfig().Catalog.Path)
	if path == "" {
		return nil, fmt.Errorf("카탈로그 경로가 설정되지 않았습니다 (--catalog 또는 catalog.path)")
	}
	if !filepath.IsAbs(path) {
		base, err := config.BaseDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(base, path)
	}

	cat, err := catalog.Open(cmd.Context(), path)
	if err != nil {
		return nil, fmt.Errorf("카탈로그 열기 실패: %w", err)
	}
	return cat, nil
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer cat.Close()

	entries, err := cat.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("카탈로그 조회 실패: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "기록된 희곡이 없습니다")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "제목\t파일\t막\t장\t대사\t변환 시각")
	fmt.Fprintln(w, "----\t----\t--\t--\t----\t---------")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
			firstNonEmpty(e.Title, "(제목 없음)"), e.File,
			e.Stats.Acts, e.Stats.Scenes, e.Stats.Speeches,
			e.ConvertedAt.Local().Format(time.DateTime))
	}
	return nil
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer cat.Close()

	source := absSource(args[0])
	e, err := cat.Get(cmd.Context(), source)
	if errors.Is(err, catalog.ErrNotFound) {
		return fmt.Errorf("기록을 찾을 수 없습니다: %s", source)
	}
	if err != nil {
		return fmt.Errorf("카탈로그 조회 실패: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "원본: %s\n", e.Source)
	fmt.Fprintf(out, "파일: %s\n", e.File)
	fmt.Fprintf(out, "제목: %s\n", firstNonEmpty(e.Title, "(없음)"))
	if e.Subtitle != "" {
		fmt.Fprintf(out, "부제: %s\n", e.Subtitle)
	}
	fmt.Fprintf(out, "구성: %d막, %d장, %d대사, %d행, %d지문\n",
		e.Stats.Acts, e.Stats.Scenes, e.Stats.Speeches, e.Stats.Lines, e.Stats.StageDirections)
	fmt.Fprintf(out, "변환 시각: %s\n", e.ConvertedAt.Local().Format(time.DateTime))
	return nil
}

func runCatalogRemove(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer cat.Close()

	source := absSource(args[0])
	if err := cat.Delete(cmd.Context(), source); err != nil {
		return fmt.Errorf("기록 삭제 실패: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "기록 삭제됨: %s\n", source)
	return nil
}

// absSource makes source absolute the way the build command records it.
func absSource(source string) string {
	if abs, err := filepath.Abs(source); err == nil {
		return abs
	}
	return source
}
