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
	"errors"
	"fmt"
	"net/http"
	"time"

	petri "github.com/jt05610/petri-industry"
	"github.com/jt05610/petri-industry/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	steps       int
	delay       time.Duration
	metricsAddr string
	saveFile    string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fire random transitions in every enterprise of an industry",
	Long: `Fire random transitions in every enterprise of an industry. Each step fires
one enabled transition per net that is not deadlocked. The run stops after the
given number of steps or once every net is deadlocked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p, err := openProject(ctx, inputFile)
		if err != nil {
			return err
		}
		ind := p.Industry()
		if metricsAddr != "" {
			reg := prometheus.NewRegistry()
			metrics.New(reg).ObserveIndustry(ind)
			srv := &http.Server{Addr: metricsAddr, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{})}
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("metrics server", zap.Error(err))
				}
			}()
			defer func() {
				_ = srv.Close()
			}()
		}
		nets := []*petri.Net{ind.Net}
		for _, e := range ind.Enterprises.All() {
			nets = append(nets, e.Net())
		}
		out := cmd.OutOrStdout()
		for step := 1; step <= steps; step++ {
			fired := 0
			for _, n := range nets {
				t, err := n.TriggerRandom()
				if errors.Is(err, petri.ErrDeadlock) {
					continue
				}
				if err != nil {
					return err
				}
				fired++
				_, _ = fmt.Fprintf(out, "%d\t%s\t%s\n", step, n, t)
			}
			if fired == 0 {
				_, _ = fmt.Fprintf(out, "deadlocked after %d steps\n", step-1)
				break
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		if saveFile != "" {
			return p.Save(ctx, saveFile)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&inputFile, "input", "i", "", "input file")
	runCmd.Flags().IntVarP(&steps, "steps", "n", 10, "number of steps")
	runCmd.Flags().DurationVarP(&delay, "delay", "d", 0, "pause between steps")
	runCmd.Flags().StringVar(&metricsAddr, "metrics", "", "serve prometheus metrics on this address while running")
	runCmd.Flags().StringVarP(&saveFile, "save", "s", "", "save the final industry to this file")
}
