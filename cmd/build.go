package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/au2001/onepace-stremio/catalog"
	"github.com/au2001/onepace-stremio/color"
	"github.com/au2001/onepace-stremio/config"
	"github.com/au2001/onepace-stremio/episoderange"
	"github.com/au2001/onepace-stremio/filesystem"
	"github.com/au2001/onepace-stremio/icon"
	"github.com/au2001/onepace-stremio/internal/pipeline"
	"github.com/au2001/onepace-stremio/kai"
	"github.com/au2001/onepace-stremio/key"
	"github.com/au2001/onepace-stremio/match"
	"github.com/au2001/onepace-stremio/metadata"
	"github.com/au2001/onepace-stremio/network"
	"github.com/au2001/onepace-stremio/nyaa"
	"github.com/au2001/onepace-stremio/reconcile"
	"github.com/au2001/onepace-stremio/style"
	"github.com/au2001/onepace-stremio/subtitle"
	"github.com/au2001/onepace-stremio/torrent"
	"github.com/au2001/onepace-stremio/util"
	"github.com/au2001/onepace-stremio/video"
	"github.com/au2001/onepace-stremio/where"
	"github.com/gofrs/flock"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringP("source", "s", "", "Arc listing document, a local path or an http(s) URL")
	lo.Must0(viper.BindPFlag(key.MetadataSource, buildCmd.Flags().Lookup("source")))

	buildCmd.Flags().IntP("workers", "w", 0, "Episodes resolved concurrently")
	lo.Must0(viper.BindPFlag(key.FetchWorkers, buildCmd.Flags().Lookup("workers")))

	buildCmd.Flags().StringP("kai", "k", "", "Kai fill-in document")
	lo.Must0(viper.BindPFlag(key.KaiPath, buildCmd.Flags().Lookup("kai")))

	buildCmd.Flags().StringP("subtitles", "S", "", "Directory with .ass subtitle releases")
	lo.Must0(viper.BindPFlag(key.SubtitlesDir, buildCmd.Flags().Lookup("subtitles")))

	buildCmd.Flags().BoolP("dry-run", "n", false, "Print the changes without writing anything")

	buildCmd.SetOut(os.Stdout)
}

// buildCmd resolves every episode and updates the catalog on disk.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build or update the catalog",
	Long: `Resolve every episode of the arc listing to a torrent file, then update the catalog.
Nothing is written if any episode fails for a reason other than a download error.`,
	Run: func(cmd *cobra.Command, args []string) {
		output := where.Output()

		lock := flock.New(filepath.Join(output, "."+viper.GetString(key.CatalogName)+".lock"))
		locked, err := lock.TryLock()
		handleErr(err)
		if !locked {
			handleErr(errors.New("another build is running in " + output))
		}
		defer func() { _ = lock.Unlock() }()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		options, cache, err := buildOptions(output)
		handleErr(err)
		options.DryRun = lo.Must(cmd.Flags().GetBool("dry-run"))

		erase := util.PrintErasable(fmt.Sprintf("%s Resolving episodes...", icon.Get(icon.Progress)))
		result, err := pipeline.Run(ctx, options)
		erase()
		handleErr(err)

		printResult(cmd, result, cache.Stats(), options.DryRun)
	},
}

// buildOptions wires every component from the configuration.
func buildOptions(output string) (pipeline.Options, *torrent.Cache, error) {
	if err := config.Validate(); err != nil {
		return pipeline.Options{}, nil, err
	}

	fs := filesystem.API()

	prefixes, err := video.LoadPrefixes(fs, viper.GetString(key.CatalogArcs))
	if err != nil {
		return pipeline.Options{}, nil, err
	}

	cache := torrent.NewCache(
		torrent.NewStore(fs, where.Torrents()),
		&torrent.HTTPFetcher{Client: network.Client, Endpoint: viper.GetString(key.FetchEndpoint)},
		torrent.Options{Rate: viper.GetFloat64(key.FetchRate), Burst: viper.GetInt(key.FetchBurst)},
	)

	linker := nyaa.New(nyaa.Options{
		Client:    network.Client,
		Rate:      viper.GetFloat64(key.NyaaRate),
		CachePath: where.Nyaa(),
	})

	store := catalog.NewStore(fs, output, viper.GetString(key.CatalogName))

	options := pipeline.Options{
		Loader: metadata.NewLoader(fs, network.Client, linker),
		Source: viper.GetString(key.MetadataSource),
		Assembler: video.New(video.Options{
			Prefixes:    prefixes,
			Language:    viper.GetString(key.CatalogLanguage),
			MediaBase:   viper.GetString(key.CatalogMediaBase),
			Placeholder: viper.GetString(key.CatalogPlaceholder),
			ImageMime:   viper.GetString(key.CatalogImageMime),
		}),
		Matcher: match.New(cache),
		Store:   store,
		Parser:  episoderange.NewParser(viper.GetStringSlice(key.CatalogSpecials)),
		Workers: viper.GetInt(key.FetchWorkers),
	}

	if dir := viper.GetString(key.SubtitlesDir); dir != "" {
		options.Subtitles = subtitle.NewBuilder(
			subtitle.NewFinder(fs, dir),
			viper.GetString(key.SubtitlesPublicURL),
			store.SubtitlePath,
		)
		options.Transcoder = &subtitle.FFmpeg{Path: viper.GetString(key.SubtitlesFFmpeg), Fs: fs}
	}

	if path := viper.GetString(key.KaiPath); path != "" {
		if options.Kai, err = kai.Load(fs, path); err != nil {
			return pipeline.Options{}, nil, err
		}
	}

	return options, cache, nil
}

func eventIcon(kind reconcile.Kind) string {
	switch kind {
	case reconcile.Added, reconcile.StreamCreated, reconcile.SubtitlesAdded:
		return style.Fg(color.Green)(icon.Get(icon.Added))
	case reconcile.Removed, reconcile.StreamRemoved, reconcile.SubtitlesRemoved:
		return style.Fg(color.Red)(icon.Get(icon.Removed))
	default:
		return style.Fg(color.Yellow)(icon.Get(icon.Changed))
	}
}

func printResult(cmd *cobra.Command, result *pipeline.Result, stats torrent.Stats, dryRun bool) {
	for _, event := range result.Plan.Events {
		cmd.Printf("%s %s\n", eventIcon(event.Kind), event)
	}
	if len(result.Plan.Events) > 0 {
		cmd.Println()
	}

	cmd.Printf("%s %s, %s from Kai, %s\n",
		icon.Get(icon.Mark),
		util.Quantify(result.Episodes, "episode", "episodes"),
		util.Quantify(result.Kai, "episode", "episodes"),
		style.Fg(lo.Ternary(result.Unresolved > 0, color.Yellow, color.Green))(fmt.Sprintf("%d unresolved", result.Unresolved)),
	)
	cmd.Printf("%s %s cached, %s downloaded, %s failed\n",
		icon.Get(icon.Cache),
		util.Quantify(int(stats.Hits), "torrent", "torrents"),
		util.Quantify(int(stats.Fetches), "torrent", "torrents"),
		util.Quantify(int(stats.Failed), "download", "downloads"),
	)

	if dryRun {
		cmd.Printf("%s dry run, nothing written\n", icon.Get(icon.Warn))
		return
	}

	if result.Transcoded > 0 {
		cmd.Printf("%s %s converted\n", icon.Get(icon.Mark), util.Quantify(result.Transcoded, "subtitle", "subtitles"))
	}
	cmd.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)),
		lo.Ternary(len(result.Plan.Events) == 0, "catalog is up to date", util.Quantify(len(result.Plan.Events), "change", "changes")+" written"))
}
