package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sort"
	"text/tabwriter"

	"github.com/CTAG07/Pseudoword/pkg/pseudoword"
	"github.com/CTAG07/Pseudoword/pkg/seedstore"
)

// SeedFlags select where the seed vocabulary comes from. Exactly one must be set.
type SeedFlags struct {
	Seed     string `help:"Seed words separated by whitespace." xor:"seed"`
	SeedFile string `name:"seed-file" help:"Read seed words from a file (.xz files are decompressed)." type:"existingfile" xor:"seed"`
	SeedName string `name:"seed-name" help:"Use a seed stored with 'seed add'." xor:"seed"`
}

// ModelFlags override the generator section of the config file.
type ModelFlags struct {
	Order    int    `help:"Markov order (maximum context length)."`
	Charset  string `help:"Allowed characters; words with other characters are ignored."`
	Min      int    `help:"Minimum word length; shorter words are retried."`
	Max      int    `help:"Maximum word length."`
	Attempts int    `help:"Maximum attempts to reach the minimum length."`
}

func (f ModelFlags) generatorConfig(base *GeneratorConfig) GeneratorConfig {
	return base.Override(GeneratorConfig{
		Order:       f.Order,
		Charset:     f.Charset,
		MinLength:   f.Min,
		MaxLength:   f.Max,
		MaxAttempts: f.Attempts,
	}).Normalized()
}

// words resolves the seed vocabulary.
func (f SeedFlags) words(ctx context.Context, app *App) ([]string, error) {
	switch {
	case f.SeedName != "":
		store, closeStore, err := app.openStore()
		if err != nil {
			return nil, err
		}
		defer closeStore()
		words, err := store.Get(ctx, f.SeedName)
		if err != nil {
			return nil, err
		}
		return pseudoword.ParseSeedList(words), nil
	case f.SeedFile != "":
		return readSeedFile(f.SeedFile)
	case f.Seed != "":
		return pseudoword.ParseSeed(f.Seed), nil
	default:
		return nil, &pseudoword.InvalidSeedError{Reason: "no seed given; use --seed, --seed-file or --seed-name"}
	}
}

// buildModel resolves the seed and trains a model on it.
func buildModel(ctx context.Context, app *App, seed SeedFlags, gc GeneratorConfig) (*pseudoword.Model, error) {
	words, err := seed.words(ctx, app)
	if err != nil {
		return nil, err
	}
	model, err := gc.BuildModel(words)
	if err != nil {
		return nil, err
	}
	model.SetLogger(app.logger)
	app.logger.Debug("Model built",
		"seed_words", len(words),
		"training_words", model.TrainingWords(),
		"order", model.Order(),
		"contexts", model.Matrix().Len(),
	)
	return model, nil
}

// GenerateCmd prints pseudowords, one per line.
type GenerateCmd struct {
	SeedFlags  `embed:""`
	ModelFlags `embed:""`

	Count    int    `short:"n" default:"1" help:"Number of words to generate."`
	RandSeed uint64 `name:"rand-seed" help:"Seed for the random source; 0 picks a random one."`
}

func (c *GenerateCmd) Run(ctx context.Context, app *App) error {
	gc := c.generatorConfig(app.config.Generator)
	model, err := buildModel(ctx, app, c.SeedFlags, gc)
	if err != nil {
		return err
	}

	opts := gc.Options()
	if c.RandSeed != 0 {
		opts = append(opts, pseudoword.WithRand(rand.New(rand.NewPCG(c.RandSeed, c.RandSeed))))
	}
	for i := 0; i < max(1, c.Count); i++ {
		if _, err = fmt.Fprintln(app.out, model.GenerateWord(opts...)); err != nil {
			return err
		}
	}
	return nil
}

// DensityCmd prints the density and statistics of a model.
type DensityCmd struct {
	SeedFlags  `embed:""`
	ModelFlags `embed:""`

	JSON bool `name:"json" help:"Print statistics as JSON."`
}

func (c *DensityCmd) Run(ctx context.Context, app *App) error {
	model, err := buildModel(ctx, app, c.SeedFlags, c.generatorConfig(app.config.Generator))
	if err != nil {
		return err
	}
	stats := model.Stats()

	if c.JSON {
		encoder := json.NewEncoder(app.out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(stats)
	}

	tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "density\t%.6f\t(%.2f%%)\n", stats.Density, stats.Density*100)
	_, _ = fmt.Fprintf(tw, "order\t%d\n", stats.Order)
	_, _ = fmt.Fprintf(tw, "charset size\t%d\n", stats.CharsetSize)
	_, _ = fmt.Fprintf(tw, "training words\t%d\n", stats.TrainingWords)
	_, _ = fmt.Fprintf(tw, "contexts\t%d\n", stats.Contexts)
	lengths := make([]int, 0, len(stats.ContextsByLength))
	for l := range stats.ContextsByLength {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)
	for _, l := range lengths {
		_, _ = fmt.Fprintf(tw, "  length %d\t%d\n", l, stats.ContextsByLength[l])
	}
	_, _ = fmt.Fprintf(tw, "observations\t%d\n", stats.TotalObservations)
	_, _ = fmt.Fprintf(tw, "starting symbols\t%d\n", stats.StartingSymbols)
	return tw.Flush()
}

// SeedGroup contains stored seed operations.
type SeedGroup struct {
	Add  SeedAddCmd  `cmd:"" help:"Store the words of a file as a named seed"`
	List SeedListCmd `cmd:"" help:"List stored seeds"`
	Show SeedShowCmd `cmd:"" help:"Print the words of a stored seed"`
	Rm   SeedRmCmd   `cmd:"" help:"Remove a stored seed"`
}

type SeedAddCmd struct {
	Name string `arg:"" help:"Name to store the seed under."`
	Path string `arg:"" help:"Word list to read (.xz files are decompressed)." type:"existingfile"`
}

func (c *SeedAddCmd) Run(ctx context.Context, app *App) error {
	words, err := readSeedFile(c.Path)
	if err != nil {
		return err
	}

	store, closeStore, err := app.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	if same, err := store.FindByDigest(ctx, seedstore.Digest(words)); err == nil && len(same) > 0 {
		app.logger.Warn("An identical seed is already stored", "seed_name", same[0].Name)
	}

	info, err := store.Insert(ctx, c.Name, words)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(app.out, "stored %q: %d words, digest %s\n", info.Name, info.WordCount, info.Digest)
	return err
}

type SeedListCmd struct{}

func (c *SeedListCmd) Run(ctx context.Context, app *App) error {
	store, closeStore, err := app.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	infos, err := store.List(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tWORDS\tDIGEST\tCREATED")
	for _, info := range infos {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%.12s\t%s\n", info.Name, info.WordCount, info.Digest, info.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}

type SeedShowCmd struct {
	Name string `arg:"" help:"Name of the stored seed."`
}

func (c *SeedShowCmd) Run(ctx context.Context, app *App) error {
	store, closeStore, err := app.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	words, err := store.Get(ctx, c.Name)
	if err != nil {
		return err
	}
	for _, w := range words {
		if _, err = fmt.Fprintln(app.out, w); err != nil {
			return err
		}
	}
	return nil
}

type SeedRmCmd struct {
	Name string `arg:"" help:"Name of the stored seed."`
}

func (c *SeedRmCmd) Run(ctx context.Context, app *App) error {
	store, closeStore, err := app.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	return store.Remove(ctx, c.Name)
}

// VersionCmd prints build information.
type VersionCmd struct{}

func (c *VersionCmd) Run(app *App) error {
	_, err := fmt.Fprintf(app.out, "pseudoword %s (commit %s, built %s)\n", Version, Commit, BuildDate)
	return err
}
