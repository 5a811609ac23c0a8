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
	"io"
	"text/tabwriter"

	petri "github.com/jt05610/petri-industry"
	"github.com/jt05610/petri-industry/analysis"
	"github.com/spf13/cobra"
)

var analyze bool

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Describe the enterprises, nets and messages of an industry",
	Long: `Describe the enterprises, nets and messages of an industry. With --analyze the
coverability tree of every enterprise net is built to report boundedness and
dead markings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject(cmd.Context(), inputFile)
		if err != nil {
			return err
		}
		ind := p.Industry()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		describe(w, ind.Net)
		for _, e := range ind.Enterprises.All() {
			_, _ = fmt.Fprintf(w, "\nenterprise %s (%d)\n", e, e.ID())
			describe(w, e.Net())
		}
		if ind.Messages.Len() > 0 {
			_, _ = fmt.Fprintln(w, "\nmessages")
			for _, m := range ind.Messages.All() {
				_, _ = fmt.Fprintf(w, "  %d\t%s\t%s\n", m.ID(), m, m.MessageType())
			}
		}
		return w.Flush()
	},
}

func describe(w io.Writer, n *petri.Net) {
	_, _ = fmt.Fprintf(w, "net %s\tdeadlock=%t\n", n, n.Deadlock())
	for _, pl := range n.Places.All() {
		_, _ = fmt.Fprintf(w, "  place\t%s\t%d\n", pl, pl.Tokens())
	}
	for _, t := range n.Transitions.All() {
		_, _ = fmt.Fprintf(w, "  transition\t%s\t%s\tenabled=%t\n", t, t.Type(), t.Enabled())
	}
	if !analyze || n.Places.Len() == 0 {
		return
	}
	a := analysis.New(n)
	tree := a.CTree(a.Marking())
	_, _ = fmt.Fprintf(w, "  bounded\t%t\n", tree.Bounded())
	for _, s := range tree.Dead() {
		_, _ = fmt.Fprintf(w, "  dead\t%s\n", s)
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&inputFile, "input", "i", "", "input file")
	inspectCmd.Flags().BoolVarP(&analyze, "analyze", "a", false, "build coverability trees")
}
