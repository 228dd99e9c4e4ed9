package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/edition-advisor/internal/catalog"
	"github.com/ziadkadry99/edition-advisor/internal/dataset"
	"github.com/ziadkadry99/edition-advisor/internal/diagrams"
	"github.com/ziadkadry99/edition-advisor/internal/render"
	"github.com/ziadkadry99/edition-advisor/internal/tree"
)

// treeResponse is the JSON response for the tree endpoint.
type treeResponse struct {
	Root          string          `json:"root"`
	Nodes         []*dataset.Node `json:"nodes"`
	Slots         int             `json:"slots"`
	MaxDepth      int             `json:"max_depth"`
	MaxLevelWidth int             `json:"max_level_width"`
}

// pathResponse is the JSON response for the path endpoint.
type pathResponse struct {
	Target  string           `json:"target"`
	Path    []string         `json:"path"`
	Answers []dataset.Choice `json:"answers"`
}

// cardResponse is the JSON response for a single edition.
type cardResponse struct {
	Edition  dataset.Edition                      `json:"edition"`
	Coverage int                                  `json:"coverage"`
	Features map[dataset.Status][]dataset.Feature `json:"features"`
	Install  string                               `json:"install,omitempty"`
}

func (d *Dashboard) handleTree(w http.ResponseWriter, r *http.Request) {
	h := d.hier
	writeJSON(w, http.StatusOK, treeResponse{
		Root:          dataset.RootID,
		Nodes:         d.ds.Nodes(),
		Slots:         h.Len(),
		MaxDepth:      h.MaxDepth(),
		MaxLevelWidth: h.MaxLevelWidth(),
	})
}

func (d *Dashboard) handlePath(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("node")
	if target == "" {
		target = dataset.RootID
	}
	path, err := tree.ResolvePath(d.ds, target)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	answers := path.Choices()
	if answers == nil {
		answers = []dataset.Choice{}
	}
	writeJSON(w, http.StatusOK, pathResponse{Target: target, Path: path.IDs(), Answers: answers})
}

func (d *Dashboard) handleEditions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, d.ds.Editions())
}

func (d *Dashboard) handleEdition(w http.ResponseWriter, r *http.Request) {
	card, err := catalog.EditionCard(d.ds, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if r.URL.Query().Get("format") == "md" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(catalog.CardMarkdown(card)))
		return
	}
	writeJSON(w, http.StatusOK, cardResponse{
		Edition:  card.Edition,
		Coverage: card.Coverage,
		Features: card.Buckets,
		Install:  catalog.InstallSnippet(card.Edition.ID),
	})
}

// filterFromQuery reads category, min_importance and edition parameters.
func filterFromQuery(r *http.Request) (catalog.Filter, error) {
	q := r.URL.Query()
	var f catalog.Filter
	for _, c := range q["category"] {
		f.Categories = append(f.Categories, dataset.Category(c))
	}
	f.Editions = q["edition"]
	if s := q.Get("min_importance"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return f, errors.New("min_importance must be an integer")
		}
		f.MinImportance = n
	}
	return f, nil
}

func (d *Dashboard) compare(w http.ResponseWriter, r *http.Request) (catalog.Table, bool) {
	f, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return catalog.Table{}, false
	}
	t, err := catalog.Compare(d.ds, f)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return catalog.Table{}, false
	}
	return t, true
}

func (d *Dashboard) handleCompare(w http.ResponseWriter, r *http.Request) {
	if t, ok := d.compare(w, r); ok {
		writeJSON(w, http.StatusOK, t)
	}
}

func (d *Dashboard) handleComparePage(w http.ResponseWriter, r *http.Request) {
	t, ok := d.compare(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := d.renderer.Page(&buf, "Deckhouse", "Сравнение редакций", catalog.Markdown(t), "/", nil); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (d *Dashboard) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	sc, err := render.StaticScene(d.ds, d.engine, r.URL.Query().Get("node"), render.Options{Hierarchy: d.hier, Logger: d.log})
	if err != nil {
		if errors.Is(err, tree.ErrNodeNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	var buf bytes.Buffer
	if err := render.WriteSVG(&buf, sc); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}

func (d *Dashboard) handleDiagram(w http.ResponseWriter, r *http.Request) {
	opts := diagrams.Options{
		Direction: r.URL.Query().Get("direction"),
		YesLabel:  d.engine.Options().YesLabel,
		NoLabel:   d.engine.Options().NoLabel,
	}
	if node := r.URL.Query().Get("node"); node != "" {
		path, err := tree.ResolvePath(d.ds, node)
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		opts.Path = path
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(diagrams.DecisionDiagram(d.ds, opts)))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
