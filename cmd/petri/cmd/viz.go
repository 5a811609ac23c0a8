/*
Copyright © 2024 Jonathan Taylor <jonrtaylor12@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"
	gv "github.com/jt05610/petri-industry/graphviz"
	"github.com/spf13/cobra"
)

var (
	format  string
	rankDir string
)

// vizCmd represents the viz command
var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Create a graphviz figure from an industry",
	Long: `Create a graphviz figure from an industry. Every enterprise is drawn as a
cluster holding its net and every message as a dashed edge between ports.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject(cmd.Context(), inputFile)
		if err != nil {
			return err
		}
		base := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
		outPath := filepath.Join(outputDir, base+"."+format)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "writing figure for %s to %s...", inputFile, outPath)
		if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
			return err
		}
		df, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer func() {
			_ = df.Close()
		}()
		w := gv.New(&gv.Config{
			Font:    gv.Helvetica,
			RankDir: gv.RankDir(rankDir),
			Format:  graphviz.Format(format),
		})
		if err := w.FlushIndustry(df, p.Industry()); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "done")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vizCmd)
	vizCmd.Flags().StringVarP(&inputFile, "input", "i", "", "input file")
	vizCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "output directory")
	vizCmd.Flags().StringVarP(&format, "format", "f", "svg", "output format")
	vizCmd.Flags().StringVar(&rankDir, "rankdir", string(gv.LeftToRight), "graph direction")
}
