// Command simulate runs a one-dimensional Monte Carlo localization
// scenario: a simulated robot circles a landmark-lined track while a
// particle filter tracks it from noisy range readings. It prints a
// per-step table and writes an HTML report with position, error and
// final-ensemble charts.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"golang.org/x/exp/rand"

	particlefilter "github.com/nyantaro723/monte-carlo-localization"
)

func main() {
	var (
		steps     = flag.Int("steps", 50, "number of simulation steps")
		seed      = flag.Uint64("seed", 42, "random seed")
		particles = flag.Int("particles", 1000, "ensemble size")
		control   = flag.Float64("control", 2.0, "commanded displacement per step")
		start     = flag.Float64("start", 25.0, "true starting position")
		out       = flag.String("out", "simulation.html", "output HTML report path")
	)
	flag.Parse()

	cfg := particlefilter.DefaultConfig()
	cfg.NumParticles = *particles
	cfg.ProcessNoise = 0.5
	cfg.MeasurementNoise = 3.0

	src := rand.NewSource(*seed)
	robot, err := particlefilter.NewRobot(*start, cfg, src)
	if err != nil {
		log.Fatalf("robot: %v", err)
	}

	history := particlefilter.NewRingHistory(*steps + 1)
	pf, err := particlefilter.New(cfg,
		particlefilter.WithRandSource(src),
		particlefilter.WithHistory(history),
	)
	if err != nil {
		log.Fatalf("filter: %v", err)
	}

	truePos := []float64{robot.TruePosition()}
	estimated := []float64{pf.EstimatePosition()}
	errors := []float64{abs(robot.TruePosition() - pf.EstimatePosition())}

	fmt.Printf("%4s  %8s  %8s  %8s  %8s\n", "step", "true", "est", "error", "conf")
	for step := 1; step <= *steps; step++ {
		robot.Move(*control)
		measurement := robot.ObserveLandmark()
		pf.FilterStep(*control, measurement)

		est := pf.EstimatePosition()
		e := abs(robot.TruePosition() - est)
		fmt.Printf("%4d  %8.2f  %8.2f  %8.2f  %8.1f\n",
			step, robot.TruePosition(), est, e, pf.Confidence())

		truePos = append(truePos, robot.TruePosition())
		estimated = append(estimated, est)
		errors = append(errors, e)
	}

	if err := writeReport(*out, cfg, truePos, estimated, errors, history, pf); err != nil {
		log.Fatalf("report: %v", err)
	}
	fmt.Printf("report written to %s\n", *out)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// writeReport renders the run as a go-echarts page: tracking lines,
// the error curve, the particle distribution over time, and the final
// ensemble as a scatter of position vs weight.
func writeReport(path string, cfg particlefilter.Config, truePos, estimated, errors []float64, history *particlefilter.RingHistory, pf *particlefilter.ParticleFilter) error {
	xs := make([]int, len(truePos))
	trueData := make([]opts.LineData, len(truePos))
	estData := make([]opts.LineData, len(estimated))
	errData := make([]opts.LineData, len(errors))
	for i := range truePos {
		xs[i] = i
		trueData[i] = opts.LineData{Value: truePos[i]}
		estData[i] = opts.LineData{Value: estimated[i]}
		errData[i] = opts.LineData{Value: errors[i]}
	}

	tracking := charts.NewLine()
	tracking.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Monte Carlo Localization", Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Position Tracking", Subtitle: fmt.Sprintf("N=%d landmarks=%v", pf.NumParticles(), cfg.LandmarkPositions)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "step"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "position", Min: 0, Max: cfg.WorldSize}),
	)
	tracking.SetXAxis(xs).
		AddSeries("true position", trueData).
		AddSeries("estimated position", estData)

	errChart := charts.NewLine()
	errChart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: "Estimation Error"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "step"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "abs error"}),
	)
	errChart.SetXAxis(xs).AddSeries("error", errData)

	// Sample a few recorded snapshots to show the ensemble collapsing
	// from its uniform seeding toward the tracked position.
	snaps := history.Snapshots()
	distChart := charts.NewScatter()
	distChart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: "Particle Distribution Over Time"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "position", Min: 0, Max: cfg.WorldSize}),
		charts.WithYAxisOpts(opts.YAxis{Name: "step"}),
	)
	for _, idx := range []int{0, len(snaps) / 3, 2 * len(snaps) / 3, len(snaps) - 1} {
		snap := snaps[idx]
		pts := make([]opts.ScatterData, len(snap.Particles))
		for i, p := range snap.Particles {
			pts[i] = opts.ScatterData{Value: []interface{}{p, snap.Step}}
		}
		distChart.AddSeries(fmt.Sprintf("t=%d", snap.Step), pts,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))
	}

	positions := pf.Particles()
	weights := pf.Weights()
	ensemble := make([]opts.ScatterData, len(positions))
	for i := range positions {
		ensemble[i] = opts.ScatterData{Value: []interface{}{positions[i], weights[i]}}
	}
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: "Final Ensemble", Subtitle: fmt.Sprintf("ESS=%.0f", pf.EffectiveSampleSize())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "position", Min: 0, Max: cfg.WorldSize}),
		charts.WithYAxisOpts(opts.YAxis{Name: "weight"}),
	)
	scatter.AddSeries("particles", ensemble, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))

	page := components.NewPage()
	page.AddCharts(tracking, errChart, distChart, scatter)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}
