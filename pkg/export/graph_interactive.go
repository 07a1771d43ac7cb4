// Package export renders the catalog into static artifacts: a
// self-contained interactive HTML force graph, SVG scatter and radar
// charts, a radar PNG, and a Markdown report.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/r-bassi/SteamVista/pkg/model"
	"github.com/r-bassi/SteamVista/pkg/view"
)

// InteractiveGraphOptions configures HTML graph generation.
type InteractiveGraphOptions struct {
	Games   []*model.Game
	Title   string
	Path    string // output path; empty auto-generates from the title
	Dataset string // dataset name shown in the footer
}

// htmlNode carries what the embedded force-graph script needs per node.
type htmlNode struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"` // "genre" or "game"
	Title     string  `json:"title,omitempty"`
	GenreMain string  `json:"genre_main,omitempty"`
	Price     float64 `json:"price,omitempty"`
	PeakCCU   float64 `json:"peak_ccu,omitempty"`
	Related   int     `json:"related,omitempty"`
}

// GenerateInteractiveGraphFilename creates an auto-generated filename,
// {name}_{YYYYMMDD}_{HHMMSS}.html.
func GenerateInteractiveGraphFilename(name string) string {
	safe := strings.ReplaceAll(name, " ", "_")
	safe = strings.ReplaceAll(safe, "/", "_")
	if safe == "" {
		safe = "catalog"
	}
	return fmt.Sprintf("%s_%s.html", safe, time.Now().Format("20060102_150405"))
}

// GenerateInteractiveGraphHTML writes a self-contained HTML file with the
// genre force graph: genre hubs linked to the games carrying their tag.
// The force layout itself runs in the embedded library; this side only
// assembles the node and link data.
func GenerateInteractiveGraphHTML(opts InteractiveGraphOptions) (string, error) {
	if len(opts.Games) == 0 {
		return "", fmt.Errorf("no records to export")
	}

	fg := view.BuildForceGraph(opts.Games)
	byID := make(map[string]*model.Game, len(opts.Games))
	for _, g := range opts.Games {
		byID[g.ID] = g
	}

	nodes := make([]htmlNode, 0, len(fg.Nodes))
	for _, n := range fg.Nodes {
		hn := htmlNode{ID: n.ID, Kind: n.Kind.String(), Title: n.Title}
		if g := byID[n.ID]; g != nil && n.Kind == model.RecordNode {
			hn.GenreMain = g.GenreMain
			hn.Price = zeroNaN(g.Price)
			hn.PeakCCU = zeroNaN(g.PeakCCU)
			hn.Related = g.RelatedCount
		}
		nodes = append(nodes, hn)
	}

	payload, err := json.Marshal(map[string]any{
		"nodes": nodes,
		"links": fg.Links,
	})
	if err != nil {
		return "", fmt.Errorf("marshal graph data: %w", err)
	}

	title := opts.Title
	if title == "" {
		title = "Genre Graph"
	}
	outputPath := opts.Path
	if outputPath == "" {
		outputPath = GenerateInteractiveGraphFilename(title)
	}
	if !strings.HasSuffix(strings.ToLower(outputPath), ".html") {
		outputPath = strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".html"
	}

	genreCount := 0
	for _, n := range fg.Nodes {
		if n.Kind == model.GenreGroupNode {
			genreCount++
		}
	}
	html := generateGraphHTML(title, opts.Dataset, string(payload),
		genreCount, len(fg.Nodes)-genreCount, len(fg.Links))

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create dir: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, []byte(html), 0o644); err != nil {
		return "", err
	}
	return outputPath, nil
}

func zeroNaN(v float64) float64 {
	if v != v {
		return 0
	}
	return v
}

func generateGraphHTML(title, dataset, payload string, genres, games, links int) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%[1]s | SteamVista</title>
    <style>
        :root {
            --bg: #282a36;
            --bg-secondary: #44475a;
            --fg: #f8f8f2;
            --fg-muted: #6272a4;
            --purple: #bd93f9;
            --pink: #ff79c6;
            --cyan: #8be9fd;
            --green: #50fa7b;
        }
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: monospace;
            background: var(--bg);
            color: var(--fg);
            height: 100vh;
            display: flex;
            flex-direction: column;
            overflow: hidden;
        }
        header {
            background: var(--bg-secondary);
            padding: 0.6rem 1.25rem;
            display: flex;
            justify-content: space-between;
            align-items: center;
            border-bottom: 2px solid var(--purple);
        }
        h1 { font-size: 1.1rem; }
        h1 span { color: var(--purple); }
        .toolbar { display: flex; gap: 0.6rem; align-items: center; }
        input, select {
            font-family: inherit;
            font-size: 0.75rem;
            padding: 0.35rem 0.6rem;
            background: var(--bg);
            color: var(--fg);
            border: 1px solid var(--bg-secondary);
            border-radius: 6px;
        }
        input:focus, select:focus { outline: none; border-color: var(--purple); }
        main { flex: 1; position: relative; }
        #graph { width: 100%%; height: 100%%; }
        .stats {
            position: absolute; top: 0.75rem; left: 0.75rem;
            background: var(--bg-secondary); padding: 0.5rem 0.75rem;
            border-radius: 8px; font-size: 0.7rem; color: var(--fg-muted);
            display: flex; gap: 1rem;
        }
        .stats b { color: var(--cyan); }
        #detail {
            position: absolute; top: 0.75rem; right: 0.75rem; width: 240px;
            background: var(--bg-secondary); padding: 0.75rem;
            border-radius: 8px; font-size: 0.75rem; display: none;
        }
        #detail.visible { display: block; }
        #detail h2 { font-size: 0.85rem; color: var(--pink); margin-bottom: 0.4rem; }
        #detail dl { display: grid; grid-template-columns: auto 1fr; gap: 0.2rem 0.6rem; }
        #detail dt { color: var(--fg-muted); }
        footer {
            padding: 0.4rem 1.25rem; font-size: 0.65rem;
            color: var(--fg-muted); background: var(--bg-secondary);
            display: flex; justify-content: space-between;
        }
    </style>
</head>
<body>
    <header>
        <h1><span>%[1]s</span></h1>
        <div class="toolbar">
            <input id="search" type="text" placeholder="search title...">
            <select id="genre-filter"><option value="">all genres</option></select>
        </div>
    </header>
    <main>
        <div id="graph"></div>
        <div class="stats">
            <div><b>%[3]d</b> genres</div>
            <div><b>%[4]d</b> games</div>
            <div><b>%[5]d</b> links</div>
        </div>
        <div id="detail">
            <h2 id="d-title"></h2>
            <dl>
                <dt>main genre</dt><dd id="d-genre"></dd>
                <dt>price</dt><dd id="d-price"></dd>
                <dt>peak ccu</dt><dd id="d-ccu"></dd>
                <dt>related</dt><dd id="d-related"></dd>
            </dl>
        </div>
    </main>
    <footer>
        <div>Generated %[6]s | Dataset: %[7]s</div>
        <div>SteamVista</div>
    </footer>
    <script src="https://unpkg.com/force-graph@1.43.5/dist/force-graph.min.js"></script>
    <script>
const DATA = %[2]s;

const genres = DATA.nodes.filter(n => n.kind === 'genre').map(n => n.id).sort();
const sel = document.getElementById('genre-filter');
genres.forEach(g => {
    const o = document.createElement('option');
    o.value = g; o.textContent = g;
    sel.appendChild(o);
});

const Graph = ForceGraph()(document.getElementById('graph'))
    .graphData(DATA)
    .nodeId('id')
    .nodeLabel(n => n.kind === 'genre' ? n.id : n.title)
    .nodeVal(n => n.kind === 'genre' ? 8 : 2 + Math.sqrt(n.peak_ccu || 0) / 40)
    .nodeColor(n => n.kind === 'genre' ? '#bd93f9' : '#8be9fd')
    .linkColor(() => '#44475a')
    .onNodeClick(n => {
        if (n.kind !== 'game') return;
        document.getElementById('d-title').textContent = n.title;
        document.getElementById('d-genre').textContent = n.genre_main || '-';
        document.getElementById('d-price').textContent = '$' + (n.price || 0).toFixed(2);
        document.getElementById('d-ccu').textContent = n.peak_ccu || 0;
        document.getElementById('d-related').textContent = n.related || 0;
        document.getElementById('detail').classList.add('visible');
    })
    .onBackgroundClick(() => document.getElementById('detail').classList.remove('visible'));

let term = '', genre = '';
function applyFilters() {
    Graph.nodeVisibility(n => {
        if (n.kind === 'genre') return !genre || n.id === genre;
        const matchTerm = !term || (n.title || '').toLowerCase().includes(term);
        const matchGenre = !genre || DATA.links.some(l => {
            const s = typeof l.source === 'object' ? l.source.id : l.source;
            const t = typeof l.target === 'object' ? l.target.id : l.target;
            return s === genre && t === n.id;
        });
        return matchTerm && matchGenre;
    });
}
document.getElementById('search').oninput = e => { term = e.target.value.toLowerCase(); applyFilters(); };
sel.onchange = e => { genre = e.target.value; applyFilters(); };
    </script>
</body>
</html>
`, title, payload, genres, games, links, timestamp, dataset)
}
