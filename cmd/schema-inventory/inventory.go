package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// typeSet collects the JSON types seen at one path.
type typeSet map[string]struct{}

type schemaMap map[string]typeSet

type Inventory struct {
	GeneratedAtUTC string     `json:"generated_at_utc"`
	RawRoot        string     `json:"raw_root"`
	Endpoints      []Endpoint `json:"endpoints"`
}

type Endpoint struct {
	Name         string  `json:"name"`
	FilesScanned int     `json:"files_scanned"`
	Fields       []Field `json:"fields"`
}

// Field is one JSON path with every type observed there. More than one type
// (often "null" beside "number") marks a field the loaders must treat as
// optional.
type Field struct {
	Path     string   `json:"path"`
	Types    []string `json:"types"`
	Nullable bool     `json:"nullable"`
}

type endpointGlob struct {
	Name string
	Glob string
}

// rawEndpoints mirrors the raw store layout.
func rawEndpoints(rawRoot string) []endpointGlob {
	return []endpointGlob{
		{"bootstrap-static", filepath.Join(rawRoot, "bootstrap", "bootstrap-static.json")},
		{"league-standings", filepath.Join(rawRoot, "league", "*", "standings.json")},
		{"entry-history", filepath.Join(rawRoot, "entry", "*", "history.json")},
		{"entry-transfers", filepath.Join(rawRoot, "entry", "*", "transfers.json")},
		{"entry-picks", filepath.Join(rawRoot, "entry", "*", "gw", "*", "picks.json")},
		{"event-live", filepath.Join(rawRoot, "gw", "*", "live.json")},
	}
}

func buildInventory(rawRoot string, maxFiles int, log *logrus.Entry) Inventory {
	endpoints := rawEndpoints(rawRoot)
	inv := Inventory{
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		RawRoot:        rawRoot,
		Endpoints:      make([]Endpoint, 0, len(endpoints)),
	}

	for _, ep := range endpoints {
		elog := log.WithField("endpoint", ep.Name)
		files, err := filepath.Glob(ep.Glob)
		if err != nil {
			elog.WithError(err).Warn("bad glob")
			continue
		}
		sort.Strings(files)
		if maxFiles > 0 && len(files) > maxFiles {
			files = files[:maxFiles]
		}
		if len(files) == 0 {
			elog.WithField("glob", ep.Glob).Debug("no files")
			continue
		}

		schema := make(schemaMap)
		scanned := 0
		for _, f := range files {
			raw, err := os.ReadFile(f)
			if err != nil {
				elog.WithError(err).WithField("file", f).Warn("read failed")
				continue
			}
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				elog.WithError(err).WithField("file", f).Warn("invalid json")
				continue
			}
			walkSchema(v, "$", schema)
			scanned++
		}

		inv.Endpoints = append(inv.Endpoints, Endpoint{
			Name:         ep.Name,
			FilesScanned: scanned,
			Fields:       schemaToFields(schema),
		})
	}
	return inv
}

// walkSchema records the type at path and descends into every object key and
// array element.
func walkSchema(v any, path string, schema schemaMap) {
	switch x := v.(type) {
	case map[string]any:
		addType(schema, path, "object")
		for k, child := range x {
			walkSchema(child, path+"."+k, schema)
		}
	case []any:
		addType(schema, path, "array")
		for _, child := range x {
			walkSchema(child, path+"[]", schema)
		}
	case string:
		addType(schema, path, "string")
	case bool:
		addType(schema, path, "bool")
	case float64:
		addType(schema, path, "number")
	case nil:
		addType(schema, path, "null")
	default:
		addType(schema, path, fmt.Sprintf("%T", v))
	}
}

func addType(schema schemaMap, path string, typ string) {
	set, ok := schema[path]
	if !ok {
		set = make(typeSet)
		schema[path] = set
	}
	set[typ] = struct{}{}
}

func schemaToFields(schema schemaMap) []Field {
	paths := make([]string, 0, len(schema))
	for p := range schema {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	fields := make([]Field, 0, len(paths))
	for _, p := range paths {
		types := make([]string, 0, len(schema[p]))
		for t := range schema[p] {
			types = append(types, t)
		}
		sort.Strings(types)
		_, nullable := schema[p]["null"]
		fields = append(fields, Field{
			Path:     p,
			Types:    types,
			Nullable: nullable,
		})
	}
	return fields
}
