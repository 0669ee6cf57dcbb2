package types

import (
	"fmt"
	"os"
	"path"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// EpisodeReturn collects the undiscounted return of each episode
func EpisodeReturn() Analyzer {
	return func(traces []*Trace) DataSet {
		returns := make([]float64, len(traces))
		for i, trace := range traces {
			returns[i] = trace.Return()
		}
		return returns
	}
}

// StateCoverage collects the cumulative number of unique states visited
func StateCoverage() Analyzer {
	return func(traces []*Trace) DataSet {
		uniqueStates := make(map[string]bool)
		numUniqueStates := make([]int, 0)
		for _, trace := range traces {
			for j := 0; j < trace.Len(); j++ {
				s, _, _, _ := trace.Get(j)
				sHash := s.Hash()
				if _, ok := uniqueStates[sHash]; !ok {
					uniqueStates[sHash] = true
				}
			}
			numUniqueStates = append(numUniqueStates, len(uniqueStates))
		}
		return numUniqueStates
	}
}

// ReturnPlotter plots per-episode returns of each experiment on one canvas
func ReturnPlotter(plotPath string) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(names []string, ds []DataSet) {
		p := plot.New()
		p.Title.Text = "Episode returns"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Return"
		for i := 0; i < len(names); i++ {
			returns := ds[i].([]float64)
			points := make(plotter.XYs, len(returns))
			for j, v := range returns {
				points[j] = plotter.XY{
					X: float64(j),
					Y: v,
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
			total := 0.0
			for _, v := range returns {
				total += v
			}
			fmt.Printf("Average return: %.3f for experiment: %s\n", total/float64(len(returns)), names[i])
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, "returns.png"))
	}
}

// CoveragePlotter plots the cumulative state coverage of each experiment
func CoveragePlotter(plotPath string) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(names []string, ds []DataSet) {
		p := plot.New()
		p.Title.Text = "State coverage"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "States covered"
		for i := 0; i < len(names); i++ {
			uniqueStates := ds[i].([]int)
			points := make(plotter.XYs, len(uniqueStates))
			for j, v := range uniqueStates {
				points[j] = plotter.XY{
					X: float64(j),
					Y: float64(v),
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
			fmt.Printf("Number of unique states: %d for experiment: %s\n", uniqueStates[len(uniqueStates)-1], names[i])
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, "coverage.png"))
	}
}
