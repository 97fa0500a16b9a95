/*
 *  acosbh.go
 *  cmd
 *
 *  Created by Haibao Tang on 10/19/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package main

import (
	"fmt"
	"strings"

	logging "github.com/op/go-logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tanghaibao/acosbh"
)

var log = logging.MustGetLogger("main")

var (
	cfgFile string
	verbose bool
)

// banner prints the separate steps
func banner(message string) {
	message = "* " + message + " *"
	log.Notice(strings.Repeat("*", len(message)))
	log.Notice(message)
	log.Notice(strings.Repeat("*", len(message)))
}

var rootCmd = &cobra.Command{
	Use:   "acosbh",
	Short: "DNA sequencing by hybridization with an ant colony",
	Long: `
    _    ____ ___  ____  ____  _   _
   / \  / ___/ _ \/ ___|| __ )| | | |
  / _ \| |  | | | \___ \|  _ \| |_| |
 / ___ \ |__| |_| |___) | |_) |  _  |
/_/   \_\____\___/|____/|____/|_| |_|

Reconstruct a DNA sequence from a spectrum of oligomers that contains
negative (missing) and positive (spurious) errors, using Ant Colony
Optimization over the overlap graph of the spectrum.`,
	Version:       acosbh.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logging.NOTICE
		if verbose {
			level = logging.DEBUG
		}
		logging.SetLevel(level, "")
		return initConfig(cmd)
	},
}

// Execute adds all child commands to the root command and runs it
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		log.Error(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Parameter file (yaml, toml or json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print per-ant details")
	rootCmd.AddCommand(generateCmd, searchCmd, tuneCmd, simulateCmd)
}

// initConfig binds the flags of the running command to viper, then layers a
// parameter file and ACOSBH_* environment variables on top of the defaults
func initConfig(cmd *cobra.Command) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	viper.SetEnvPrefix("acosbh")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("%w: %v", acosbh.ErrConfiguration, err)
		}
		log.Noticef("Using parameter file `%s`", viper.ConfigFileUsed())
	}
	return nil
}

// addParamFlags registers every colony parameter with its default
func addParamFlags(flags *pflag.FlagSet) {
	d := acosbh.DefaultParams()
	flags.Int("cycles", d.Cycles, "Maximum number of cycles")
	flags.Int("ants", d.Ants, "Ants per cycle")
	flags.Int("elite", d.EliteAnts, "Best ants per cycle that lay pheromone")
	flags.Float64("alpha", d.Alpha, "Pheromone exponent")
	flags.Float64("beta", d.Beta, "Overlap length exponent")
	flags.Float64("repetition", d.Repetition, "Exponent applied when revisiting an oligomer")
	flags.Float64("evaporation", d.Evaporation, "Pheromone evaporation rate")
	flags.Float64("deposit", d.Deposit, "Pheromone deposit multiplier")
	flags.Int("stagnation", d.Stagnation, "Consecutive cycles without improvement before stopping")
	flags.Int64("seed", d.Seed, "Random seed")
	flags.Int("workers", d.Workers, "Number of parallel walkers")
}

// paramsFromViper collects the colony parameters
func paramsFromViper() (acosbh.Params, error) {
	p := acosbh.DefaultParams()
	if err := viper.Unmarshal(&p); err != nil {
		return p, fmt.Errorf("%w: %v", acosbh.ErrConfiguration, err)
	}
	return p, p.Validate()
}

// loadInstance reads an instance from [fastafile] spectrumfile; without a
// FASTA the start fragment and the target length come from the flags
func loadInstance(args []string) (*acosbh.Instance, error) {
	k := viper.GetInt("k")
	if len(args) == 2 {
		return acosbh.LoadInstance(args[0], args[1], k)
	}
	spectrum, err := acosbh.ReadSpectrum(args[0])
	if err != nil {
		return nil, err
	}
	start := strings.ToUpper(viper.GetString("start"))
	if k == 0 {
		k = len(start)
	}
	return acosbh.NewBlindInstance(spectrum, k, viper.GetInt("length"), start)
}

// search runs the colony and writes the outputs under prefix
func search(inst *acosbh.Instance, p acosbh.Params, prefix string, npy bool) error {
	trace, err := acosbh.NewTraceWriter(prefix + acosbh.TraceExt)
	if err != nil {
		return err
	}
	searcher := acosbh.Searcher{Instance: inst, Params: p, OnCycle: trace.Add}
	best, err := searcher.Run()
	if err != nil {
		trace.Close(nil)
		return err
	}
	if err := trace.Close(best); err != nil {
		return err
	}
	fmt.Printf("\nRESULT:\n%s\n", best)
	if err := acosbh.WriteFasta(prefix+acosbh.FastaExt, "best", best.Sequence); err != nil {
		return err
	}
	if npy {
		return acosbh.WritePheromoneNpy(prefix+acosbh.NpyExt, searcher.Graph)
	}
	return nil
}

var generateCmd = &cobra.Command{
	Use:   "generate prefix",
	Short: "Generate a random instance with spectrum errors",
	Long: `
Generate function:
Draw a random DNA sequence, cut it into its spectrum of distinct k-mers,
then remove a fraction of them (negative errors) and add random ones
(positive errors). Writes prefix.fasta and prefix.spectrum.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := acosbh.Generator{
			Length:    viper.GetInt("length"),
			K:         viper.GetInt("k"),
			Negatives: viper.GetFloat64("negatives"),
			Positives: viper.GetFloat64("positives"),
			Alphabet:  viper.GetString("alphabet"),
			Seed:      viper.GetInt64("seed"),
		}
		inst, err := g.Run()
		if err != nil {
			return err
		}
		if err := acosbh.WriteFasta(args[0]+acosbh.FastaExt, "dna", inst.Reference); err != nil {
			return err
		}
		return acosbh.WriteSpectrum(args[0]+".spectrum", inst.Spectrum)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [fastafile] spectrumfile",
	Short: "Reconstruct a sequence from its spectrum",
	Long: `
Search function:
Build the overlap graph of the spectrum and let the ant colony walk it.
With a FASTA reference the start fragment and the target length are taken
from the reference and the fitness of the result is reported; without it,
pass --start and --length.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, err := loadInstance(args)
		if err != nil {
			return err
		}
		p, err := paramsFromViper()
		if err != nil {
			return err
		}
		prefix := viper.GetString("out")
		if prefix == "" {
			prefix = acosbh.RemoveExt(args[len(args)-1])
		}
		return search(inst, p, prefix, viper.GetBool("npy"))
	},
}

var tuneCmd = &cobra.Command{
	Use:   "tune fastafile spectrumfile",
	Short: "Search alpha, beta, evaporation and repetition with a particle swarm",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, err := acosbh.LoadInstance(args[0], args[1], viper.GetInt("k"))
		if err != nil {
			return err
		}
		p, err := paramsFromViper()
		if err != nil {
			return err
		}
		t := acosbh.Tuner{
			Instance:  inst,
			Base:      p,
			Particles: viper.GetUint("particles"),
			Steps:     viper.GetUint("steps"),
			Seed:      p.Seed,
		}
		best, err := t.Run()
		if err != nil {
			return err
		}
		fmt.Printf("score: %.5f\n%s\n", t.Score, best)
		return nil
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate prefix",
	Short: "Run generate-search steps sequentially",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		banner("Generate instance")
		g := acosbh.Generator{
			Length:    viper.GetInt("length"),
			K:         viper.GetInt("k"),
			Negatives: viper.GetFloat64("negatives"),
			Positives: viper.GetFloat64("positives"),
			Alphabet:  viper.GetString("alphabet"),
			Seed:      viper.GetInt64("seed"),
		}
		inst, err := g.Run()
		if err != nil {
			return err
		}
		log.Notice(inst)
		p, err := paramsFromViper()
		if err != nil {
			return err
		}
		banner("Search started")
		return search(inst, p, args[0], viper.GetBool("npy"))
	},
}

func addGeneratorFlags(flags *pflag.FlagSet) {
	flags.Int("length", 500, "Length of the DNA")
	flags.Int("k", 7, "Oligomer length")
	flags.Float64("negatives", 0.1, "Fraction of the spectrum removed")
	flags.Float64("positives", 0.1, "Fraction of the spectrum added at random")
	flags.String("alphabet", acosbh.Nucleotides, "Alphabet of the DNA")
}

func init() {
	addGeneratorFlags(generateCmd.Flags())
	generateCmd.Flags().Int64("seed", 42, "Random seed")

	searchCmd.Flags().Int("k", 0, "Oligomer length (default: length of the first oligomer or of --start)")
	searchCmd.Flags().String("start", "", "Start fragment, when there is no FASTA reference")
	searchCmd.Flags().Int("length", 0, "Target length, when there is no FASTA reference")
	searchCmd.Flags().StringP("out", "o", "", "Output prefix (default: spectrum file name)")
	searchCmd.Flags().Bool("npy", false, "Dump the final pheromone matrix as .npy")
	addParamFlags(searchCmd.Flags())

	tuneCmd.Flags().Int("k", 0, "Oligomer length (default: length of the first oligomer)")
	tuneCmd.Flags().Uint("particles", 10, "Number of particles")
	tuneCmd.Flags().Uint("steps", 10, "Number of swarm steps")
	addParamFlags(tuneCmd.Flags())

	addGeneratorFlags(simulateCmd.Flags())
	simulateCmd.Flags().Bool("npy", false, "Dump the final pheromone matrix as .npy")
	addParamFlags(simulateCmd.Flags())
}
