package ephemeris

import (
	"context"
	"log"
	"math"

	"github.com/jackc/pgx/v4/pgxpool"

	"app/models"
)

// cacheWindowDays bounds how far a cached instant may sit from the requested
// one when it is used as a retry substitute.
const cacheWindowDays = 2.0

// CachedProvider decorates a Provider with a Postgres-backed position cache.
// Successful lookups are written through; when the inner provider fails, the
// nearest cached instant within cacheWindowDays is returned once before the
// failure is surfaced. With a nil pool it degrades to a plain pass-through.
type CachedProvider struct {
	inner Provider
	pool  *pgxpool.Pool
}

// NewCachedProvider wraps inner with the cache backed by pool (nil allowed).
func NewCachedProvider(inner Provider, pool *pgxpool.Pool) *CachedProvider {
	return &CachedProvider{inner: inner, pool: pool}
}

// PlanetPositions implements Provider.
func (c *CachedProvider) PlanetPositions(jd float64) ([]RawPosition, error) {
	positions, err := c.inner.PlanetPositions(jd)
	if err == nil {
		c.store(jd, positions)
		return positions, nil
	}
	if cached, ok := c.nearest(jd); ok {
		log.Printf("⚠️  [EPHEMERIS] provider failed for JD %.5f, served cached instant instead", jd)
		return cached, nil
	}
	return nil, err
}

// PlaceHouses implements Provider. Cusps are cheap to recompute and depend on
// geography, so they are never cached.
func (c *CachedProvider) PlaceHouses(jd, latitude, longitude float64) (Houses, error) {
	return c.inner.PlaceHouses(jd, latitude, longitude)
}

// store writes positions through to the cache, best effort. The key is jd
// rounded to 1e-4 days (~9 seconds) so repeated queries for the same civil
// instant hit the same rows.
func (c *CachedProvider) store(jd float64, positions []RawPosition) {
	if c.pool == nil {
		return
	}
	key := roundJD(jd)
	ctx := context.Background()
	for _, pos := range positions {
		_, err := c.pool.Exec(ctx, `
			INSERT INTO ephemeris_cache (jd, planet, longitude, retrograde)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (jd, planet) DO NOTHING
		`, key, int16(pos.Planet), pos.Longitude, pos.Retrograde)
		if err != nil {
			log.Printf("⚠️  [EPHEMERIS] cache write failed: %v", err)
			return
		}
	}
}

// nearest returns the full nine-planet set for the cached instant closest to
// jd within the window, if one exists.
func (c *CachedProvider) nearest(jd float64) ([]RawPosition, bool) {
	if c.pool == nil {
		return nil, false
	}
	ctx := context.Background()

	var nearJD float64
	err := c.pool.QueryRow(ctx, `
		SELECT jd FROM ephemeris_cache
		WHERE abs(jd - $1) <= $2
		ORDER BY abs(jd - $1)
		LIMIT 1
	`, jd, cacheWindowDays).Scan(&nearJD)
	if err != nil {
		return nil, false
	}

	rows, err := c.pool.Query(ctx, `
		SELECT planet, longitude, retrograde
		FROM ephemeris_cache
		WHERE jd = $1
		ORDER BY planet
	`, nearJD)
	if err != nil {
		return nil, false
	}
	defer rows.Close()

	positions := make([]RawPosition, 0, models.PlanetCount)
	for rows.Next() {
		var planet int16
		var pos RawPosition
		if err := rows.Scan(&planet, &pos.Longitude, &pos.Retrograde); err != nil {
			return nil, false
		}
		pos.Planet = models.Planet(planet)
		positions = append(positions, pos)
	}
	if len(positions) != models.PlanetCount {
		return nil, false
	}
	return positions, true
}

func roundJD(jd float64) float64 {
	return math.Round(jd*1e4) / 1e4
}
