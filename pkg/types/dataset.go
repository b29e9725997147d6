// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Dataset is the document consumed by the ranking frontend. Field names are
// part of the frontend contract and must not change.
type Dataset struct {
	Venues       []DatasetVenue                `json:"venues"`
	Institutions map[string]DatasetInstitution `json:"institutions"`
	Authors      []DatasetAuthor               `json:"authors"`
}

// DatasetVenue lists one harvested venue.
type DatasetVenue struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// DatasetInstitution is keyed in Dataset.Institutions by a synthetic "instN" key.
type DatasetInstitution struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}

// DatasetAuthor is one author/institution pair with its publications.
type DatasetAuthor struct {
	Name         string              `json:"name"`
	Institution  string              `json:"institution"`
	Publications []PublicationRecord `json:"publications"`
}
