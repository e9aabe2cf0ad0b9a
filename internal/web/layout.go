// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/shopspring/decimal"
)

//go:embed templates
var templateFS embed.FS

// layoutName is the outer template every page is executed through.
const layoutName = "layout"

// pageSet maps a page name to its template, already combined with the
// layout and partials.
type pageSet map[string]*template.Template

var templateFuncs = template.FuncMap{
	"eur":       formatEUR,
	"quantity":  formatQuantity,
	"taxResult": taxResult,
	"negative":  func(value decimal.Decimal) bool { return value.IsNegative() },
	"dict":      dict,
}

// loadPages parses the layout once and clones it for every page, so each
// page can define its own "content" block.
func loadPages() (pageSet, error) {
	base, err := template.New(layoutName).Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("web: parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(pageSet, len(files))
	for _, file := range files {
		tmpl, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := tmpl.ParseFS(templateFS, file); err != nil {
			return nil, fmt.Errorf("web: parse %s: %w", file, err)
		}
		pages[strings.TrimSuffix(path.Base(file), ".html")] = tmpl
	}
	return pages, nil
}

// dict builds a map from alternating keys and values, so a partial can
// receive more than one argument.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	values := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		values[key] = pairs[i+1]
	}
	return values, nil
}
