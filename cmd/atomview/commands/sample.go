package commands

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/atomview/atomview/config"
	"github.com/atomview/atomview/dataset"
	"github.com/atomview/atomview/errors"
	"github.com/atomview/atomview/logger"
	"github.com/atomview/atomview/server"
)

// SampleCmd draws one point cloud and prints it as JSON
var SampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Draw one orbital density point cloud as JSON",
	Long: `Draw a point cloud for a single request and print the JSON body the
HTTP endpoint would return. With --seed the output is reproducible.`,
	RunE: runSample,
}

var (
	sampleN       int
	sampleL       int
	sampleM       int
	sampleN2      int
	sampleL2      int
	sampleM2      int
	sampleZ       int
	sampleCount   int
	sampleMax     float64
	sampleMode    string
	sampleMix     float64
	sampleTime    float64
	sampleBasis   string
	sampleColor   string
	sampleSigns   bool
	sampleSeed    int64
	sampleDataDir string
)

func init() {
	SampleCmd.Flags().IntVar(&sampleN, "n", 2, "Principal quantum number")
	SampleCmd.Flags().IntVar(&sampleL, "l", 1, "Azimuthal quantum number")
	SampleCmd.Flags().IntVar(&sampleM, "m", 0, "Magnetic quantum number")
	SampleCmd.Flags().IntVar(&sampleN2, "n2", 0, "Second state n (superposition)")
	SampleCmd.Flags().IntVar(&sampleL2, "l2", 0, "Second state l (superposition)")
	SampleCmd.Flags().IntVar(&sampleM2, "m2", 0, "Second state m (superposition)")
	SampleCmd.Flags().IntVar(&sampleZ, "z", 1, "Atomic number")
	SampleCmd.Flags().IntVar(&sampleCount, "count", 0, "Sample count (0 = configured default)")
	SampleCmd.Flags().Float64Var(&sampleMax, "max", 0, "Max radius in Bohr radii (0 = configured default)")
	SampleCmd.Flags().StringVar(&sampleMode, "mode", "orbital", "Density mode: total, valence, orbital, superposition")
	SampleCmd.Flags().Float64Var(&sampleMix, "mix", 0.5, "Superposition mix weight of the first state")
	SampleCmd.Flags().Float64Var(&sampleTime, "t", 0, "Superposition time parameter")
	SampleCmd.Flags().StringVar(&sampleBasis, "basis", "real", "Angular basis: real or complex")
	SampleCmd.Flags().StringVar(&sampleColor, "color", "radial", "Coloring: radial or phase")
	SampleCmd.Flags().BoolVar(&sampleSigns, "signs", false, "Include per-point sign flags")
	SampleCmd.Flags().Int64Var(&sampleSeed, "seed", 0, "RNG seed (0 = time-based)")
	SampleCmd.Flags().StringVar(&sampleDataDir, "data-dir", "", "Dataset directory (overrides config)")
}

func runSample(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	if sampleDataDir != "" {
		cfg.Data.Dir = sampleDataDir
	}

	log := logger.Logger
	var fetcher *dataset.Fetcher
	if cfg.Data.Fetch {
		fetcher = dataset.NewFetcher(log.Named("fetch"))
	}
	store := dataset.NewStore(cfg.Data.Dir, fetcher, log.Named("dataset"))
	srv := server.New(cfg, store, log.Named("sample"))

	values := url.Values{}
	values.Set("n", strconv.Itoa(sampleN))
	values.Set("l", strconv.Itoa(sampleL))
	values.Set("m", strconv.Itoa(sampleM))
	if sampleN2 > 0 {
		values.Set("n2", strconv.Itoa(sampleN2))
		values.Set("l2", strconv.Itoa(sampleL2))
		values.Set("m2", strconv.Itoa(sampleM2))
	}
	values.Set("z", strconv.Itoa(sampleZ))
	if sampleCount > 0 {
		values.Set("count", strconv.Itoa(sampleCount))
	}
	if sampleMax > 0 {
		values.Set("max", fmt.Sprintf("%g", sampleMax))
	}
	values.Set("mode", sampleMode)
	values.Set("mix", fmt.Sprintf("%g", sampleMix))
	values.Set("t", fmt.Sprintf("%g", sampleTime))
	values.Set("basis", sampleBasis)
	values.Set("color", sampleColor)
	if sampleSigns {
		values.Set("signs", "true")
	}

	resp, err := srv.DrawCloud(cmd.Context(), values, sampleSeed)
	if err != nil {
		return errors.Wrap(err, "sampling failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
