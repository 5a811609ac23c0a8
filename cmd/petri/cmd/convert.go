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

	"github.com/spf13/cobra"
)

var outputFile string

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Rewrite an industry file in another format",
	Long: `Rewrite an industry file in another format. The formats are picked from the
file extensions: .json and .petri for JSON, .yaml and .yml for YAML.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject(cmd.Context(), inputFile)
		if err != nil {
			return err
		}
		if err := p.Save(cmd.Context(), outputFile); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "converted %s to %s\n", inputFile, outputFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&inputFile, "input", "i", "", "input file")
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file")
	_ = convertCmd.MarkFlagRequired("output")
}
