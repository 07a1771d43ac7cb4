package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/r-bassi/SteamVista/pkg/analysis"
	"github.com/r-bassi/SteamVista/pkg/dashboard"
	"github.com/r-bassi/SteamVista/pkg/export"
	"github.com/r-bassi/SteamVista/pkg/loader"
	"github.com/r-bassi/SteamVista/pkg/model"
	"github.com/r-bassi/SteamVista/pkg/recipe"
	"github.com/r-bassi/SteamVista/pkg/ui"
	"github.com/r-bassi/SteamVista/pkg/watcher"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"
)

const version = "0.3.0"

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	dataPath := flag.String("data", "", "Dataset path (.csv, .json, .db); defaults to games.csv")
	miscConfig := flag.String("misc-config", "", "YAML file overriding the niche-genre collapse list")
	robotHelp := flag.Bool("robot-help", false, "Show AI agent help")
	robotGenres := flag.Bool("robot-genres", false, "Output genre taxonomy and co-occurrence graph as JSON for AI agents")
	robotRelated := flag.Bool("robot-related", false, "Output related-game counts as JSON for AI agents (use --id for one record's sample)")
	robotFilters := flag.Bool("robot-filters", false, "Output active filters and the surviving pool as JSON for AI agents")
	gameID := flag.String("id", "", "Game id for --robot-related, --export-png")
	exportMD := flag.String("export-md", "", "Export the filtered catalog to a Markdown report")
	exportHTML := flag.String("export-html", "", "Export an interactive force-graph HTML page")
	exportSVG := flag.String("export-svg", "", "Export the scatterplot matrix as SVG")
	exportPNG := flag.String("export-png", "", "Export one game's radar chart as PNG (requires --id)")
	recipeName := flag.String("recipe", "", "Apply named recipe (e.g., free-to-play, recent, hidden-gems)")
	recipeShort := flag.String("r", "", "Shorthand for --recipe")
	newRecipe := flag.String("new-recipe", "", "Interactively build a recipe and save it to the given YAML path")
	watch := flag.Bool("watch", false, "Reload the dashboard when the dataset file changes")
	wideRelated := flag.Bool("wide-related", false, "Sample 10 related games per selection instead of 5")
	flag.Parse()

	if *recipeShort != "" && *recipeName == "" {
		*recipeName = *recipeShort
	}

	if *help {
		fmt.Println("Usage: sv [options] [dataset]")
		fmt.Println("\nAn exploratory TUI for Steam-style game catalogs.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("sv %s\n", version)
		os.Exit(0)
	}

	if *robotHelp {
		printRobotHelp()
		os.Exit(0)
	}

	if *newRecipe != "" {
		if err := runRecipeBuilder(*newRecipe); err != nil {
			fmt.Fprintf(os.Stderr, "Error building recipe: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Recipe saved to %s\n", *newRecipe)
		os.Exit(0)
	}

	// Validate the recipe before paying for the dataset load.
	var activeRecipe *recipe.Recipe
	if *recipeName != "" {
		r, err := recipe.Find(*recipeName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
			fmt.Fprintln(os.Stderr, "Available recipes:")
			for _, br := range recipe.BuiltinRecipes() {
				fmt.Fprintf(os.Stderr, "  %-18s %s\n", br.Name, br.Description)
			}
			os.Exit(1)
		}
		activeRecipe = &r
	}

	path := *dataPath
	if path == "" {
		path = flag.Arg(0)
	}
	if path == "" {
		path = "games.csv"
	}

	cat, err := loadCatalog(path, *miscConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		os.Exit(1)
	}
	if len(cat.Games) == 0 {
		fmt.Println("No games found in the dataset.")
		os.Exit(0)
	}

	opts := dashboard.Options{}
	if *wideRelated || (activeRecipe != nil && activeRecipe.View.WideRelated) {
		opts.RelatedLimit = analysis.WideRelatedCap
	}

	dash, err := dashboard.New(context.Background(), cat, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building dashboard: %v\n", err)
		os.Exit(1)
	}

	if activeRecipe != nil {
		if err := recipe.Install(dash, *activeRecipe, time.Now()); err != nil {
			fmt.Fprintf(os.Stderr, "Error applying recipe: %v\n", err)
			os.Exit(1)
		}
	}

	if *robotGenres {
		runRobotGenres(dash)
		os.Exit(0)
	}

	if *robotRelated {
		runRobotRelated(dash, *gameID)
		os.Exit(0)
	}

	if *robotFilters {
		runRobotFilters(dash)
		os.Exit(0)
	}

	if *exportMD != "" {
		pool := sortedPool(dash, activeRecipe)
		if err := export.SaveMarkdownToFile(pool, dash.Taxonomy(), *exportMD); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting markdown: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d games to %s\n", len(pool), *exportMD)
		os.Exit(0)
	}

	if *exportHTML != "" {
		out, err := export.GenerateInteractiveGraphHTML(export.InteractiveGraphOptions{
			Games:   dash.Filtered(),
			Title:   "SteamVista Catalog",
			Path:    *exportHTML,
			Dataset: path,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting HTML: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported interactive graph to %s\n", out)
		os.Exit(0)
	}

	if *exportSVG != "" {
		if err := export.SaveScatterSVG(dash.Filtered(), *exportSVG); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting SVG: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported scatterplot matrix to %s\n", *exportSVG)
		os.Exit(0)
	}

	if *exportPNG != "" {
		if *gameID == "" {
			fmt.Fprintln(os.Stderr, "Error: --export-png requires --id")
			os.Exit(1)
		}
		g := findGame(dash.Canonical(), *gameID)
		if g == nil {
			fmt.Fprintf(os.Stderr, "Error: no game with id %q\n", *gameID)
			os.Exit(1)
		}
		if err := export.SaveRadarPNG(g, *exportPNG); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting PNG: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported radar chart for %s to %s\n", g.Title, *exportPNG)
		os.Exit(0)
	}

	// TUI with optional live reload.
	relay := ui.NewRelay()
	dash.Register(relay)

	m := ui.NewModel(dash)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	relay.Attach(p)

	var fw *watcher.Watcher
	if *watch {
		fw, err = watcher.New(path, func(changed string) {
			fresh, err := loadCatalog(changed, *miscConfig)
			if err != nil {
				return
			}
			_ = dash.Reload(context.Background(), fresh)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: live reload unavailable: %v\n", err)
		} else if err := fw.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: live reload unavailable: %v\n", err)
		} else {
			defer fw.Stop()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running SteamVista: %v\n", err)
		os.Exit(1)
	}
}

func printRobotHelp() {
	fmt.Println("sv (SteamVista) AI Agent Interface")
	fmt.Println("==================================")
	fmt.Println("This tool provides structural views of a game catalog dataset.")
	fmt.Println("Use these commands to inspect the catalog without parsing raw CSV.")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  --robot-genres")
	fmt.Println("      Outputs the genre taxonomy and co-occurrence graph as JSON.")
	fmt.Println("      Key fields:")
	fmt.Println("      - ranking: Genres ordered by popularity (record count)")
	fmt.Println("      - popularity: Record count per genre")
	fmt.Println("      - links: Co-occurrence edges with normalized weights")
	fmt.Println("      - centrality: PageRank over the co-occurrence graph")
	fmt.Println("")
	fmt.Println("  --robot-related [--id APPID]")
	fmt.Println("      Outputs related-game counts per record as JSON.")
	fmt.Println("      Related means more than two shared genre tags.")
	fmt.Println("      With --id, also outputs a sampled related list for that record.")
	fmt.Println("")
	fmt.Println("  --robot-filters")
	fmt.Println("      Outputs the active filter set and surviving pool as JSON.")
	fmt.Println("      Combine with --recipe to inspect what a recipe keeps.")
	fmt.Println("")
	fmt.Println("  --recipe NAME, -r NAME")
	fmt.Println("      Apply a named recipe before any robot or export command.")
	fmt.Println("      Built-in recipes: default, free-to-play, recent, highly-rated,")
	fmt.Println("      hidden-gems, multiplayer-giants. NAME may also be a YAML path.")
	fmt.Println("")
	fmt.Println("  --new-recipe PATH")
	fmt.Println("      Interactive recipe builder; writes the result to PATH.")
	fmt.Println("")
	fmt.Println("  --export-md FILE / --export-html FILE / --export-svg FILE")
	fmt.Println("      Markdown report, interactive force-graph page, scatterplot SVG.")
	fmt.Println("")
	fmt.Println("  --export-png FILE --id APPID")
	fmt.Println("      Radar chart PNG for one record.")
	fmt.Println("")
	fmt.Println("  --watch")
	fmt.Println("      Reload the TUI when the dataset file is rewritten.")
}

// loadCatalog reads the dataset, honoring an optional misc-genre override.
func loadCatalog(path, miscConfig string) (*loader.Catalog, error) {
	opts := loader.DefaultOptions()
	if miscConfig != "" {
		data, err := os.ReadFile(miscConfig)
		if err != nil {
			return nil, fmt.Errorf("reading misc config: %w", err)
		}
		if err := yaml.Unmarshal(data, &opts); err != nil {
			return nil, fmt.Errorf("parsing misc config: %w", err)
		}
	}
	rows, err := loader.LoadRows(path)
	if err != nil {
		return nil, err
	}
	return loader.Normalize(rows, opts), nil
}

func runRobotGenres(dash *dashboard.Dashboard) {
	tax := dash.Taxonomy()
	gg := analysis.BuildGenreGraph(dash.Filtered())

	popularity := make([]struct {
		Genre string `json:"genre"`
		Count int    `json:"count"`
	}, 0, len(tax.Ranking))
	for _, genre := range tax.Ranking {
		popularity = append(popularity, struct {
			Genre string `json:"genre"`
			Count int    `json:"count"`
		}{Genre: genre, Count: tax.Popularity[genre]})
	}

	output := struct {
		GeneratedAt string                `json:"generated_at"`
		Ranking     []string              `json:"ranking"`
		Popularity  any                   `json:"popularity"`
		Links       []analysis.GenreLink  `json:"links"`
		Centrality  []analysis.GenreScore `json:"centrality"`
	}{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Ranking:     tax.Ranking,
		Popularity:  popularity,
		Links:       gg.Links(),
		Centrality:  gg.Centrality(),
	}

	encodeJSON(output)
}

func runRobotRelated(dash *dashboard.Dashboard, id string) {
	pool := dash.Filtered()

	type relatedRow struct {
		ID           string `json:"id"`
		Title        string `json:"title"`
		RelatedCount int    `json:"related_count"`
	}
	rows := make([]relatedRow, len(pool))
	for i, g := range pool {
		rows[i] = relatedRow{ID: g.ID, Title: g.Title, RelatedCount: g.RelatedCount}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].RelatedCount != rows[j].RelatedCount {
			return rows[i].RelatedCount > rows[j].RelatedCount
		}
		return rows[i].ID < rows[j].ID
	})

	output := struct {
		GeneratedAt string       `json:"generated_at"`
		Games       []relatedRow `json:"games"`
		Sample      []relatedRow `json:"sample,omitempty"`
	}{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Games:       rows,
	}

	if id != "" {
		g := findGame(pool, id)
		if g == nil {
			fmt.Fprintf(os.Stderr, "Error: no game with id %q in the filtered pool\n", id)
			os.Exit(1)
		}
		for _, rg := range analysis.RelatedTo(g, pool) {
			output.Sample = append(output.Sample, relatedRow{
				ID: rg.ID, Title: rg.Title, RelatedCount: rg.RelatedCount,
			})
		}
	}

	encodeJSON(output)
}

func runRobotFilters(dash *dashboard.Dashboard) {
	pool := dash.Filtered()

	type poolRow struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	rows := make([]poolRow, len(pool))
	for i, g := range pool {
		rows[i] = poolRow{ID: g.ID, Title: g.Title}
	}

	output := struct {
		GeneratedAt string `json:"generated_at"`
		Filters     any    `json:"filters"`
		Summary     struct {
			Total    int `json:"total"`
			Matching int `json:"matching"`
		} `json:"summary"`
		Games []poolRow `json:"games"`
	}{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Filters:     dash.Describe(),
		Games:       rows,
	}
	output.Summary.Total = len(dash.Canonical())
	output.Summary.Matching = len(pool)

	encodeJSON(output)
}

func encodeJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
		os.Exit(1)
	}
}

func findGame(pool []*model.Game, id string) *model.Game {
	for _, g := range pool {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// sortedPool applies the recipe's sort to a copy of the filtered pool.
func sortedPool(dash *dashboard.Dashboard, r *recipe.Recipe) []*model.Game {
	pool := dash.Filtered()
	if r == nil || r.Sort.Field == "" {
		return pool
	}
	out := make([]*model.Game, len(pool))
	copy(out, pool)
	r.Sort.SortGames(out)
	return out
}

// runRecipeBuilder walks through a huh form and writes the result.
func runRecipeBuilder(path string) error {
	var (
		name        string
		description string
		maxPrice    string
		minRatio    string
		releasedIn  string
		genres      []string
		wide        bool
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Recipe name").
				Value(&name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&description),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Max price (blank for any)").
				Value(&maxPrice).
				Validate(validateOptionalNumber),
			huh.NewInput().
				Title("Min positive ratio 0-100 (blank for any)").
				Value(&minRatio).
				Validate(validateOptionalNumber),
			huh.NewInput().
				Title("Released within (e.g. 90d, 6m, 1y; blank for any)").
				Value(&releasedIn),
			huh.NewMultiSelect[string]().
				Title("Required genres").
				Options(
					huh.NewOption("Action", "Action"),
					huh.NewOption("Adventure", "Adventure"),
					huh.NewOption("RPG", "RPG"),
					huh.NewOption("Strategy", "Strategy"),
					huh.NewOption("Simulation", "Simulation"),
					huh.NewOption("Indie", "Indie"),
					huh.NewOption("Casual", "Casual"),
					huh.NewOption("Sports", "Sports"),
				).
				Value(&genres),
			huh.NewConfirm().
				Title("Wide related sampling (10 instead of 5)?").
				Value(&wide),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	r := recipe.Recipe{
		Name:        name,
		Description: description,
		Filters: recipe.FilterConfig{
			ReleasedAfter: releasedIn,
			Genres:        genres,
		},
		View: recipe.ViewConfig{WideRelated: wide},
	}
	if maxPrice != "" {
		v, _ := strconv.ParseFloat(maxPrice, 64)
		r.Filters.Price = &recipe.RangeConfig{Max: &v}
	}
	if minRatio != "" {
		v, _ := strconv.ParseFloat(minRatio, 64)
		r.Filters.PositiveRatio = &recipe.RangeConfig{Min: &v}
	}

	return recipe.Save(path, r)
}

func validateOptionalNumber(s string) error {
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("not a number")
	}
	return nil
}
