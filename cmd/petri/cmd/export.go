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

	petri "github.com/jt05610/petri-industry"
	"github.com/jt05610/petri-industry/caser"
	"github.com/jt05610/petri-industry/pnml"
	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every enterprise net of an industry as PNML",
	Long: `Export every enterprise net of an industry as PNML. One file per enterprise
is written to the output directory, named after the enterprise in kebab case.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject(cmd.Context(), inputFile)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
			return err
		}
		nets := map[string]*petri.Net{}
		for _, e := range p.Industry().Enterprises.All() {
			nets[e.String()] = e.Net()
		}
		if p.Industry().Net.Places.Len() > 0 {
			nets[p.Industry().Net.Name] = p.Industry().Net
		}
		for name, n := range nets {
			path := filepath.Join(outputDir, caser.New(name).KebabCase()+".pnml")
			if err := writePNML(path, n, p.ID.String()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		}
		return nil
	},
}

func writePNML(path string, n *petri.Net, id string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return pnml.Write(f, n, id)
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&inputFile, "input", "i", "", "input file")
	exportCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "output directory")
}
