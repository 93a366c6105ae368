package stats

import (
	"fmt"
	"io"
	"strings"

	"evogrid/internal/model"
)

// RunReport is the computed summary of one recorded run.
type RunReport struct {
	Run             model.Run     `json:"run"`
	Samples         int           `json:"samples"`
	LiveCells       SeriesSummary `json:"live_cells"`
	MeanGenomeBits  SeriesSummary `json:"mean_genome_bits"`
	MeanMatchWeight SeriesSummary `json:"mean_match_weight"`
	FinalAlleles    [8]float64    `json:"final_alleles"`
	HasGenomes      bool          `json:"has_genomes"`
}

// BuildRunReport summarizes the sampled census series of a run. Genome
// series are included only when at least one sample carries genome data.
func BuildRunReport(run model.Run, samples []model.GenerationStats) RunReport {
	report := RunReport{Run: run, Samples: len(samples)}

	live := make([]float64, 0, len(samples))
	genomeBits := make([]float64, 0, len(samples))
	matchWeights := make([]float64, 0, len(samples))
	for _, sample := range samples {
		live = append(live, float64(sample.LiveCells))
		if sample.MeanGenomeBits > 0 {
			report.HasGenomes = true
			genomeBits = append(genomeBits, sample.MeanGenomeBits)
		}
		if sample.MeanMatchWeight > 0 {
			matchWeights = append(matchWeights, sample.MeanMatchWeight)
		}
	}

	report.LiveCells = Summarize(live)
	report.MeanGenomeBits = Summarize(genomeBits)
	report.MeanMatchWeight = Summarize(matchWeights)
	if len(samples) > 0 {
		report.FinalAlleles = samples[len(samples)-1].AlleleFrequency
	}
	return report
}

// WriteRunReport renders the report as plain text.
func WriteRunReport(w io.Writer, report RunReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s\n", report.Run.ID)
	fmt.Fprintf(&b, "  world:       %s (%dx%d, seed %d)\n", report.Run.World, report.Run.Width, report.Run.Height, report.Run.Seed)
	fmt.Fprintf(&b, "  generations: %d (%s)\n", report.Run.Generations, report.Run.StopReason)
	fmt.Fprintf(&b, "  samples:     %d\n", report.Samples)
	writeSeries(&b, "live cells", report.LiveCells)
	if report.HasGenomes {
		writeSeries(&b, "genome bits", report.MeanGenomeBits)
		if report.MeanMatchWeight.Count > 0 {
			writeSeries(&b, "match weight", report.MeanMatchWeight)
		}
		fmt.Fprintf(&b, "  final allele frequencies:")
		for _, frequency := range report.FinalAlleles {
			fmt.Fprintf(&b, " %.3f", frequency)
		}
		fmt.Fprintln(&b)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSeries(b *strings.Builder, name string, summary SeriesSummary) {
	fmt.Fprintf(b, "  %-12s min=%.2f max=%.2f mean=%.2f std=%.2f\n", name, summary.Min, summary.Max, summary.Mean, summary.Std)
}
