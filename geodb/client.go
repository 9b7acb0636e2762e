// Package geodb provides a client for the external GeoDB gazetteer
// service used by resolve.GeonamesStage, shaped like namedb.Client.
package geodb

import "context"

// LocationMatch is one GeoDB.tag_locations result entry.
type LocationMatch struct {
	Name        string
	CountryCode string
}

// Client is the GeoDB capability GeonamesStage depends on. GeonamesStage
// treats a returned error as a non-match for that value; the error itself
// is not logged.
type Client interface {
	TagLocations(ctx context.Context, name string) ([]LocationMatch, error)
}
