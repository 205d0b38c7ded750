// Command rasterchunk partitions large raster images into regions and
// overlapping chunks for a downstream learning pipeline.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/terrapixel/raster-chunker/internal/cache"
	"github.com/terrapixel/raster-chunker/internal/config"
	"github.com/terrapixel/raster-chunker/internal/convert"
	"github.com/terrapixel/raster-chunker/internal/filter"
	"github.com/terrapixel/raster-chunker/internal/logger"
	"github.com/terrapixel/raster-chunker/internal/raster"
	"github.com/terrapixel/raster-chunker/internal/reader"
	"github.com/terrapixel/raster-chunker/internal/record"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	flagConfig    string
	flagVerbose   bool
	flagRegions   int
	flagNormalize string
	flagCacheDir  string
	flagSize      int
	flagOverlap   int
	flagThreads   int
	flagDType     string
	flagSentinel  float64
	flagNoFilter  bool

	cfg config.Config
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	root := &cobra.Command{
		Use:           "rasterchunk",
		Short:         "Partition large rasters into regions and training chunks",
		Version:       fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.SetVerbose(flagVerbose)
			var err error
			cfg, err = config.Load(flagConfig)
			if err != nil {
				return err
			}
			applyConfig(cmd)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flagConfig, "config", defaultConfigPath(), "path to TOML config file")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	pf.IntVar(&flagRegions, "regions", 0, "horizontal regions per image (0 = config default)")
	pf.StringVar(&flagNormalize, "normalize", "none", "preprocessing: none, strip-alpha or luminance")
	pf.StringVar(&flagCacheDir, "cache-dir", "", "directory for normalized copies (default from config)")

	root.AddCommand(infoCmd(), tilesCmd(), chunkCmd(), estimateCmd())

	if err := root.Execute(); err != nil {
		log.Fatalf("rasterchunk: %v", err)
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "rasterchunk.toml"
	}
	return filepath.Join(home, ".config", "rasterchunk", "config.toml")
}

// applyConfig fills unset flags from the loaded config.
func applyConfig(cmd *cobra.Command) {
	if flagRegions == 0 {
		flagRegions = cfg.NumRegions
	}
	if flagCacheDir == "" {
		flagCacheDir = cfg.CacheDir
	}
	if f := cmd.Flags().Lookup("size"); f != nil && !f.Changed {
		flagSize = cfg.ChunkSize
	}
	if f := cmd.Flags().Lookup("overlap"); f != nil && !f.Changed {
		flagOverlap = cfg.ChunkOverlap
	}
	if f := cmd.Flags().Lookup("threads"); f != nil && !f.Changed {
		flagThreads = cfg.Threads
	}
	if f := cmd.Flags().Lookup("dtype"); f != nil && !f.Changed {
		flagDType = cfg.DType
	}
}

// openImage builds the right image variant for path: packed-record files by
// extension, normalized file handles when preprocessing was requested, plain
// file handles otherwise.
func openImage(path string) (raster.Image, error) {
	if filepath.Ext(path) == ".rec" {
		return raster.NewRecordImage(path, flagRegions, record.ReadInfo), nil
	}

	open := func() raster.Reader { return reader.New() }
	switch flagNormalize {
	case "none":
		return raster.NewFileImage(path, flagRegions, open), nil
	case "strip-alpha", "luminance":
		mgr, err := cache.NewDir(flagCacheDir)
		if err != nil {
			return nil, err
		}
		norm := convert.StripAlpha
		if flagNormalize == "luminance" {
			norm = convert.Luminance
		}
		return raster.NewNormalizedFileImage(path, flagRegions, open, mgr, norm), nil
	default:
		return nil, fmt.Errorf("unknown normalize mode %q", flagNormalize)
	}
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <image>",
		Short: "Print image size and band count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := openImage(args[0])
			if err != nil {
				return err
			}
			s, err := img.Size()
			if err != nil {
				return err
			}
			bands, err := img.NumBands()
			if err != nil {
				return err
			}
			fmt.Printf("%s: %v, %d band(s), %d region(s)\n", args[0], s, bands, img.NumRegions())
			return nil
		},
	}
}

func tilesCmd() *cobra.Command {
	var grid int
	cmd := &cobra.Command{
		Use:   "tiles <image>",
		Short: "Print the region rectangles of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := openImage(args[0])
			if err != nil {
				return err
			}
			if grid > 0 {
				s, err := img.Size()
				if err != nil {
					return err
				}
				for i := 0; i < grid*grid; i++ {
					r, err := raster.TileSplit(s, i, grid)
					if err != nil {
						return err
					}
					fmt.Printf("tile %d: %v\n", i, r)
				}
				return nil
			}
			i := 0
			for r, err := range raster.Tiles(img) {
				if err != nil {
					return err
				}
				fmt.Printf("region %d: %v\n", i, r)
				i++
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&grid, "grid", 0, "print an N×N tile grid instead of horizontal bands")
	return cmd
}

func chunkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunk <image>",
		Short: "Extract chunks from every region and report counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := raster.ParseDType(flagDType)
			if err != nil {
				return err
			}
			img, err := openImage(args[0])
			if err != nil {
				return err
			}
			if fi, ok := img.(*raster.FileImage); ok {
				fi.SetChunkThreads(flagThreads)
			}

			est, err := raster.EstimateMemoryUsage(img, flagSize, flagOverlap, dt, 0)
			if err != nil {
				return err
			}
			logger.Info("estimated %.0f bytes per region", est)

			total, removed := 0, 0
			region := 0
			for roi, err := range raster.Tiles(img) {
				if err != nil {
					return err
				}
				logger.Debug("region %d: %v", region, roi)
				batch, err := img.ChunkRegion(roi, flagSize, flagOverlap, dt)
				if err != nil {
					return err
				}
				if !flagNoFilter {
					kept, dropped, err := filter.Valid(batch, flagSentinel, flagThreads)
					if err != nil {
						return err
					}
					logger.Debug("region %d: dropped %d of %d chunks", region, dropped, batch.Chunks)
					removed += dropped
					batch = kept
				}
				total += batch.Chunks
				region++
			}
			fmt.Printf("%d chunk(s) extracted, %d removed as no-data\n", total, removed)
			return nil
		},
	}
	cmd.Flags().IntVar(&flagSize, "size", 0, "chunk edge length in pixels")
	cmd.Flags().IntVar(&flagOverlap, "overlap", 0, "overlap between consecutive chunks")
	cmd.Flags().IntVar(&flagThreads, "threads", 0, "worker threads for extraction and filtering")
	cmd.Flags().StringVar(&flagDType, "dtype", "", "element type: uint8, uint16, float32, float64")
	cmd.Flags().Float64Var(&flagSentinel, "sentinel", 0, "no-data pixel value")
	cmd.Flags().BoolVar(&flagNoFilter, "no-filter", false, "keep chunks containing no-data pixels")
	return cmd
}

func estimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate <image>",
		Short: "Estimate the memory needed to chunk one region",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := raster.ParseDType(flagDType)
			if err != nil {
				return err
			}
			img, err := openImage(args[0])
			if err != nil {
				return err
			}
			est, err := raster.EstimateMemoryUsage(img, flagSize, flagOverlap, dt, 0)
			if err != nil {
				return err
			}
			fmt.Printf("%.0f bytes (%.1f MiB) per region\n", est, est/(1<<20))
			return nil
		},
	}
	cmd.Flags().IntVar(&flagSize, "size", 0, "chunk edge length in pixels")
	cmd.Flags().IntVar(&flagOverlap, "overlap", 0, "overlap between consecutive chunks")
	cmd.Flags().StringVar(&flagDType, "dtype", "", "element type: uint8, uint16, float32, float64")
	return cmd
}
