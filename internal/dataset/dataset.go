// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset renders the filtered aggregate into the document the
// ranking frontend loads, as JSON or as a JavaScript assignment.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pdiddy/venue-harvester/internal/aggregate"
	"github.com/pdiddy/venue-harvester/internal/fsutil"
	"github.com/pdiddy/venue-harvester/pkg/types"
)

// JSPrefix and JSSuffix wrap the JSON document in the JavaScript output.
const (
	JSPrefix = "window.dataset = "
	JSSuffix = ";\n"
)

// Build assembles the dataset. Institutions are ordered by name (ties by raw
// id) and keyed inst0..instN in that order; authors are ordered by name and
// institution key; each publication list is ordered by (year, venue, title).
func Build(venues []types.DatasetVenue, res aggregate.Result) types.Dataset {
	insts := make([]aggregate.Institution, 0, len(res.Institutions))
	for _, inst := range res.Institutions {
		insts = append(insts, inst)
	}
	sort.Slice(insts, func(i, j int) bool {
		if insts[i].Name != insts[j].Name {
			return insts[i].Name < insts[j].Name
		}
		return insts[i].ID < insts[j].ID
	})

	ds := types.Dataset{
		Venues:       append([]types.DatasetVenue{}, venues...),
		Institutions: make(map[string]types.DatasetInstitution, len(insts)),
		Authors:      []types.DatasetAuthor{},
	}
	keys := make(map[string]string, len(insts))
	order := make(map[string]int, len(insts))
	for i, inst := range insts {
		key := fmt.Sprintf("inst%d", i)
		keys[inst.ID] = key
		order[key] = i
		ds.Institutions[key] = types.DatasetInstitution{Name: inst.Name, Region: inst.Region}
	}

	for _, e := range res.Entries {
		key, ok := keys[e.InstitutionID]
		if !ok {
			continue
		}
		pubs := append([]types.PublicationRecord(nil), e.Publications...)
		sort.Slice(pubs, func(i, j int) bool { return pubs[i].Less(pubs[j]) })
		ds.Authors = append(ds.Authors, types.DatasetAuthor{
			Name:         e.AuthorName,
			Institution:  key,
			Publications: pubs,
		})
	}
	sort.SliceStable(ds.Authors, func(i, j int) bool {
		a, b := ds.Authors[i], ds.Authors[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return order[a.Institution] < order[b.Institution]
	})
	return ds
}

// Encode writes ds as indented JSON.
func Encode(w io.Writer, ds types.Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(ds)
}

// EncodeJS writes ds as "window.dataset = <json>;" with the same escaping
// as Encode.
func EncodeJS(w io.Writer, ds types.Dataset) error {
	var buf bytes.Buffer
	if err := Encode(&buf, ds); err != nil {
		return err
	}
	if _, err := io.WriteString(w, JSPrefix); err != nil {
		return err
	}
	if _, err := w.Write(bytes.TrimRight(buf.Bytes(), "\n")); err != nil {
		return err
	}
	_, err := io.WriteString(w, JSSuffix)
	return err
}

// WriteJSON writes ds to path atomically.
func WriteJSON(path string, ds types.Dataset) error {
	if err := fsutil.WriteAtomic(path, func(w io.Writer) error { return Encode(w, ds) }); err != nil {
		return fmt.Errorf("writing dataset %s: %w", path, err)
	}
	return nil
}

// WriteJS writes ds to path atomically as a JavaScript assignment.
func WriteJS(path string, ds types.Dataset) error {
	if err := fsutil.WriteAtomic(path, func(w io.Writer) error { return EncodeJS(w, ds) }); err != nil {
		return fmt.Errorf("writing dataset %s: %w", path, err)
	}
	return nil
}

// ReadJSON loads a dataset previously written by WriteJSON.
func ReadJSON(path string) (types.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Dataset{}, fmt.Errorf("reading dataset: %w", err)
	}
	var ds types.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return types.Dataset{}, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	return ds, nil
}
