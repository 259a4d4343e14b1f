package iofetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/gnames/gnfmt"

	"github.com/Fr4nzz/ithomiini-maps/pkg/config"
	"github.com/Fr4nzz/ithomiini-maps/pkg/ithomaps"
	"github.com/Fr4nzz/ithomiini-maps/pkg/record"
)

const gbifAPIURL = "https://api.gbif.org/v1"

// gbifColumns are the Darwin Core terms carried into the aggregator
// batch. They match what the occurrence download archives use, so both
// ingestion paths produce the same shape.
var gbifColumns = []string{
	"gbifID", "genus", "specificEpithet", "infraspecificEpithet",
	"species", "scientificName", "family",
	"decimalLatitude", "decimalLongitude",
	"countryCode", "country", "locality", "verbatimLocality",
	"municipality", "county", "stateProvince",
	"eventDate", "basisOfRecord", "datasetKey", "institutionCode",
	"occurrenceID", "references",
}

type gbif struct {
	client
	enc gnfmt.GNjson
}

// NewGBIF creates an OccurrenceSearcher backed by the public GBIF API.
func NewGBIF(cfg *config.Config) ithomaps.OccurrenceSearcher {
	res := gbif{client: newClient(cfg), enc: gnfmt.GNjson{}}
	return &res
}

// matchResult is the subset of the species/match response we need.
type matchResult struct {
	UsageKey  int    `json:"usageKey"`
	MatchType string `json:"matchType"`
}

// occResult is one record of an occurrence/search response.
type occResult struct {
	Key                  int64   `json:"key"`
	Genus                string  `json:"genus"`
	SpecificEpithet      string  `json:"specificEpithet"`
	InfraspecificEpithet string  `json:"infraspecificEpithet"`
	Species              string  `json:"species"`
	ScientificName       string  `json:"scientificName"`
	Family               string  `json:"family"`
	DecimalLatitude      float64 `json:"decimalLatitude"`
	DecimalLongitude     float64 `json:"decimalLongitude"`
	CountryCode          string  `json:"countryCode"`
	Country              string  `json:"country"`
	Locality             string  `json:"locality"`
	VerbatimLocality     string  `json:"verbatimLocality"`
	Municipality         string  `json:"municipality"`
	County               string  `json:"county"`
	StateProvince        string  `json:"stateProvince"`
	EventDate            string  `json:"eventDate"`
	BasisOfRecord        string  `json:"basisOfRecord"`
	DatasetKey           string  `json:"datasetKey"`
	InstitutionCode      string  `json:"institutionCode"`
	OccurrenceID         string  `json:"occurrenceID"`
	References           string  `json:"references"`
	Media                []struct {
		Type       string `json:"type"`
		Identifier string `json:"identifier"`
	} `json:"media"`
}

type occResponse struct {
	Results []occResult `json:"results"`
}

func (g *gbif) Search(
	ctx context.Context,
	names []string,
	label string,
) (record.Batch, map[string]string, error) {
	var res record.Batch

	keys, err := g.taxonKeys(ctx, names)
	if err != nil {
		return res, nil, err
	}

	res = record.Batch{Source: label, Columns: gbifColumns}
	images := make(map[string]string)

	bar := newProgressBar(len(names), "Fetching occurrences: ")
	defer bar.Finish()

	for _, name := range names {
		key, ok := keys[name]
		if !ok {
			bar.Increment()
			continue
		}
		occs, err := g.occurrences(ctx, key)
		if err != nil {
			return res, nil, err
		}
		for _, occ := range occs {
			row, img := occRow(occ)
			res.Rows = append(res.Rows, row)
			if img != "" {
				images[strconv.FormatInt(occ.Key, 10)] = img
			}
		}
		bar.Increment()
	}

	slog.Info("Fetched occurrences from aggregator API",
		"taxa", len(keys), "records", len(res.Rows))
	return res, images, nil
}

// taxonKeys resolves names to GBIF taxon keys, consulting the on-disk
// cache before the species/match endpoint.
func (g *gbif) taxonKeys(
	ctx context.Context,
	names []string,
) (map[string]int, error) {
	cached, err := g.loadKeyCache()
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	keys := make(map[string]int, len(names))
	bar := newProgressBar(len(names), "Resolving taxon keys: ")
	defer bar.Finish()

	for _, name := range names {
		u := fmt.Sprintf("%s/species/match?name=%s&kingdom=Animalia",
			gbifAPIURL, url.QueryEscape(name))
		body, err := g.get(ctx, u, func(status int) error {
			return RequestError(u, status, nil)
		})
		if err != nil {
			return nil, RequestError(u, 0, err)
		}

		var m matchResult
		if err := g.enc.Decode(body, &m); err != nil {
			return nil, DecodeError(u, err)
		}
		if m.UsageKey == 0 || m.MatchType == "NONE" {
			slog.Warn("No taxon key for name", "name", name)
			bar.Increment()
			continue
		}
		keys[name] = m.UsageKey
		bar.Increment()
	}

	if err := g.saveKeyCache(keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// occurrences fetches up to the configured number of records with
// coordinates for one taxon key.
func (g *gbif) occurrences(ctx context.Context, key int) ([]occResult, error) {
	u := fmt.Sprintf(
		"%s/occurrence/search?taxonKey=%d&hasCoordinate=true&limit=%d",
		gbifAPIURL, key, g.cfg.Fetch.GBIFRecordsPerSpecies,
	)
	body, err := g.get(ctx, u, func(status int) error {
		return RequestError(u, status, nil)
	})
	if err != nil {
		return nil, RequestError(u, 0, err)
	}

	var resp occResponse
	if err := g.enc.Decode(body, &resp); err != nil {
		return nil, DecodeError(u, err)
	}
	return resp.Results, nil
}

// occRow flattens one API result into a Darwin Core row plus the first
// still-image URL, if any.
func occRow(occ occResult) (record.Row, string) {
	row := record.Row{
		"gbifID":               strconv.FormatInt(occ.Key, 10),
		"genus":                occ.Genus,
		"specificEpithet":      occ.SpecificEpithet,
		"infraspecificEpithet": occ.InfraspecificEpithet,
		"species":              occ.Species,
		"scientificName":       occ.ScientificName,
		"family":               occ.Family,
		"decimalLatitude":      strconv.FormatFloat(occ.DecimalLatitude, 'f', -1, 64),
		"decimalLongitude":     strconv.FormatFloat(occ.DecimalLongitude, 'f', -1, 64),
		"countryCode":          occ.CountryCode,
		"country":              occ.Country,
		"locality":             occ.Locality,
		"verbatimLocality":     occ.VerbatimLocality,
		"municipality":         occ.Municipality,
		"county":               occ.County,
		"stateProvince":        occ.StateProvince,
		"eventDate":            occ.EventDate,
		"basisOfRecord":        occ.BasisOfRecord,
		"datasetKey":           occ.DatasetKey,
		"institutionCode":      occ.InstitutionCode,
		"occurrenceID":         occ.OccurrenceID,
		"references":           occ.References,
	}

	var img string
	for _, m := range occ.Media {
		if m.Type == "StillImage" && m.Identifier != "" {
			img = m.Identifier
			break
		}
	}
	return row, img
}
