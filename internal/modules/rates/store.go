// README: Rate table store backed by PostgreSQL.
package rates

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/clb2clb2/sgtri-desp/internal/modules/regulation"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Load assembles a Table from the reference tables. An empty country_rates
// table is reported as an error so callers can fall back to defaults.
func (s *Store) Load(ctx context.Context) (*Table, error) {
	t := &Table{
		Countries: map[regulation.Regulation]map[string]CountryRates{
			regulation.StateDecree:     {},
			regulation.NationalStatute: {},
		},
		Vehicles: map[string]decimal.Decimal{},
		Exempt:   map[Territory]ExemptLimits{},
	}

	rows, err := s.db.Query(ctx, `
		SELECT country, regulation, meal_rate, lodging_cap, is_home
		FROM country_rates`)
	if err != nil {
		return nil, fmt.Errorf("rates: load countries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var country, reg string
		var meal, lodging decimal.Decimal
		var isHome bool
		if err := rows.Scan(&country, &reg, &meal, &lodging, &isHome); err != nil {
			return nil, fmt.Errorf("rates: scan country: %w", err)
		}
		byCountry, ok := t.Countries[regulation.Regulation(reg)]
		if !ok {
			return nil, fmt.Errorf("rates: unknown regulation %q for %q", reg, country)
		}
		byCountry[country] = CountryRates{Meal: meal, LodgingCap: lodging}
		if isHome {
			t.HomeCountry = country
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rates: load countries: %w", err)
	}
	if t.HomeCountry == "" {
		return nil, fmt.Errorf("rates: country_rates has no home country row")
	}

	vrows, err := s.db.Query(ctx, `SELECT class, rate_per_km FROM vehicle_rates`)
	if err != nil {
		return nil, fmt.Errorf("rates: load vehicles: %w", err)
	}
	defer vrows.Close()
	for vrows.Next() {
		var class string
		var rate decimal.Decimal
		if err := vrows.Scan(&class, &rate); err != nil {
			return nil, fmt.Errorf("rates: scan vehicle: %w", err)
		}
		t.Vehicles[class] = rate
	}
	if err := vrows.Err(); err != nil {
		return nil, fmt.Errorf("rates: load vehicles: %w", err)
	}

	erows, err := s.db.Query(ctx, `
		SELECT territory, without_overnight, with_overnight
		FROM tax_exempt_limits`)
	if err != nil {
		return nil, fmt.Errorf("rates: load exempt limits: %w", err)
	}
	defer erows.Close()
	for erows.Next() {
		var territory string
		var without, with decimal.Decimal
		if err := erows.Scan(&territory, &without, &with); err != nil {
			return nil, fmt.Errorf("rates: scan exempt limit: %w", err)
		}
		t.Exempt[Territory(territory)] = ExemptLimits{WithoutOvernight: without, WithOvernight: with}
	}
	if err := erows.Err(); err != nil {
		return nil, fmt.Errorf("rates: load exempt limits: %w", err)
	}

	prows, err := s.db.Query(ctx, `
		SELECT project_type FROM project_regulations
		WHERE regulation = $1`, string(regulation.NationalStatute))
	if err != nil {
		return nil, fmt.Errorf("rates: load project regulations: %w", err)
	}
	defer prows.Close()
	for prows.Next() {
		var key string
		if err := prows.Scan(&key); err != nil {
			return nil, fmt.Errorf("rates: scan project regulation: %w", err)
		}
		t.StatuteProjectTypes = append(t.StatuteProjectTypes, key)
	}
	if err := prows.Err(); err != nil {
		return nil, fmt.Errorf("rates: load project regulations: %w", err)
	}

	return t, nil
}
