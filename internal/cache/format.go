// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import "github.com/pdiddy/venue-harvester/pkg/types"

type fileFormat struct {
	DOI   map[string]slimWork `json:"doi"`
	Title map[string]slimWork `json:"title"`
}

type slimWork struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	DisplayName     string           `json:"display_name"`
	PublicationYear *int             `json:"publication_year"`
	Authorships     []slimAuthorship `json:"authorships"`
}

type slimAuthorship struct {
	Author       slimAuthor        `json:"author"`
	Institutions []slimInstitution `json:"institutions"`
}

type slimAuthor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type slimInstitution struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	CountryCode string `json:"country_code"`
}

func fromWork(w types.Work) slimWork {
	s := slimWork{
		ID:              w.ID,
		Title:           w.Title,
		DisplayName:     w.Title,
		PublicationYear: w.Year,
		Authorships:     make([]slimAuthorship, 0, len(w.Authorships)),
	}
	for _, a := range w.Authorships {
		sa := slimAuthorship{
			Author:       slimAuthor{ID: a.AuthorID, DisplayName: a.AuthorName},
			Institutions: make([]slimInstitution, 0, len(a.Institutions)),
		}
		for _, inst := range a.Institutions {
			sa.Institutions = append(sa.Institutions, slimInstitution{
				ID:          inst.ID,
				DisplayName: inst.DisplayName,
				CountryCode: inst.CountryCode,
			})
		}
		s.Authorships = append(s.Authorships, sa)
	}
	return s
}

func (s slimWork) toWork() types.Work {
	w := types.Work{ID: s.ID, Title: s.Title, Year: s.PublicationYear}
	if w.Title == "" {
		w.Title = s.DisplayName
	}
	for _, a := range s.Authorships {
		au := types.Authorship{AuthorID: a.Author.ID, AuthorName: a.Author.DisplayName}
		for _, inst := range a.Institutions {
			au.Institutions = append(au.Institutions, types.InstitutionRef{
				ID:          inst.ID,
				DisplayName: inst.DisplayName,
				CountryCode: inst.CountryCode,
			})
		}
		w.Authorships = append(w.Authorships, au)
	}
	return w
}
