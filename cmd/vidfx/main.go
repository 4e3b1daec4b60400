package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/keagan/vidfx/internal/config"
	"github.com/keagan/vidfx/internal/effects"
	"github.com/keagan/vidfx/internal/filters"
	"github.com/keagan/vidfx/internal/logging"
	"github.com/keagan/vidfx/internal/pipeline"
	"github.com/keagan/vidfx/internal/transitions"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vidfx",
	Short: "vidfx - video filter and merge toolkit",
	Long:  "A video editing toolkit that applies named filters, effects and transitions, then hands encoding to ffmpeg.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logging
		logging.Init(verbose)

		// Optional .env, ignored when absent
		_ = godotenv.Load()

		// Load config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// Store config in context
		ctx := config.WithConfig(cmd.Context(), cfg)
		cmd.SetContext(ctx)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(mergeCmd)
}

var (
	editFilters     []string
	editEffects     []string
	editOutput      string
	editListFilters bool
	editListEffects bool
)

var editCmd = &cobra.Command{
	Use:   "edit [input video]",
	Short: "Apply filters and effects to a single clip",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if editListFilters {
			fmt.Println(strings.Join(filters.Names(), "\n"))
			return nil
		}
		if editListEffects {
			fmt.Println(strings.Join(effects.Names(), "\n"))
			return nil
		}
		if len(args) != 1 {
			return fmt.Errorf("edit takes exactly one input video, got %d", len(args))
		}

		cfg := config.FromContext(cmd.Context())

		pipe, err := pipeline.New(log.Logger, cfg)
		if err != nil {
			return err
		}

		return pipe.Edit(cmd.Context(), args[0], pipeline.EditOptions{
			Filters:      editFilters,
			Effects:      editEffects,
			Output:       editOutput,
			ShowProgress: true,
		})
	},
}

var (
	mergeTransitions []string
	mergeSongPath    string
	mergeOutput      string
	mergeListTrans   bool
)

var mergeCmd = &cobra.Command{
	Use:   "merge [input videos...]",
	Short: "Concatenate clips with transitions at the junctions",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if mergeListTrans {
			fmt.Println(strings.Join(transitions.Names(), "\n"))
			return nil
		}
		if len(args) < 2 {
			return fmt.Errorf("merge takes at least two input videos, got %d", len(args))
		}

		cfg := config.FromContext(cmd.Context())

		pipe, err := pipeline.New(log.Logger, cfg)
		if err != nil {
			return err
		}

		return pipe.Merge(cmd.Context(), args, pipeline.MergeOptions{
			Transitions:  mergeTransitions,
			SongPath:     mergeSongPath,
			Output:       mergeOutput,
			ShowProgress: true,
		})
	},
}

func init() {
	editCmd.Flags().StringSliceVarP(&editFilters, "filters", "f", nil, "filters to apply, in order")
	editCmd.Flags().StringSliceVarP(&editEffects, "effects", "e", nil, "effects to apply, in order")
	editCmd.Flags().StringVarP(&editOutput, "output", "o", "video", "output file name")
	editCmd.Flags().BoolVar(&editListFilters, "list-filters", false, "list available filters and exit")
	editCmd.Flags().BoolVar(&editListEffects, "list-effects", false, "list available effects and exit")

	mergeCmd.Flags().StringSliceVarP(&mergeTransitions, "transitions", "t", nil, "transitions as <name>@<clip_number>")
	mergeCmd.Flags().StringVar(&mergeSongPath, "song-path", "", "background audio file")
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "merged", "output file name")
	mergeCmd.Flags().BoolVar(&mergeListTrans, "list-transitions", false, "list available transitions and exit")
}
