package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/domain"
)

var ErrUnknownGroup = errors.New("unknown socket group")

type Repos struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repos { return &Repos{db: db} }

type applianceRow struct {
	GroupName string          `db:"group_name"`
	Name      sql.NullString  `db:"appliance_name"`
	Current   sql.NullFloat64 `db:"current"`
	State     sql.NullString  `db:"state"`
	Priority  sql.NullString  `db:"priority"`
}

const selectGroups = `SELECT g.name AS group_name, a.name AS appliance_name, a.current, a.state, a.priority
FROM socket_groups g LEFT JOIN appliances a ON a.group_id = g.id`

// ListGroups returns every socket group with its appliances in collection
// order.
func (r *Repos) ListGroups() ([]domain.SocketGroup, error) {
	var rows []applianceRow
	if err := r.db.Select(&rows, selectGroups+` ORDER BY g.name, a.position, a.id`); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return toGroups(rows), nil
}

func (r *Repos) GroupByName(name string) (domain.SocketGroup, error) {
	var rows []applianceRow
	if err := r.db.Select(&rows, selectGroups+` WHERE g.name = $1 ORDER BY a.position, a.id`, name); err != nil {
		return domain.SocketGroup{}, fmt.Errorf("group %q: %w", name, err)
	}
	groups := toGroups(rows)
	if len(groups) == 0 {
		return domain.SocketGroup{}, fmt.Errorf("group %q: %w", name, ErrUnknownGroup)
	}
	return groups[0], nil
}

// UpsertAppliance stores the latest reading of an appliance, creating the
// group and appliance on first sight. New appliances are appended to the end
// of the group's collection. The group upsert row-locks the group until
// commit, so position counts for one group are taken one writer at a time;
// UNIQUE (group_id, position) backs that up.
func (r *Repos) UpsertAppliance(rd *domain.ApplianceReading) error {
	ts := rd.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var groupID int64
	err = tx.Get(&groupID, `INSERT INTO socket_groups(name) VALUES ($1) ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id`, rd.Group)
	if err != nil {
		return fmt.Errorf("upsert group %q: %w", rd.Group, err)
	}

	_, err = tx.Exec(`INSERT INTO appliances(group_id, name, current, state, priority, position, updated_at)
VALUES ($1, $2, $3, $4, $5, (SELECT COUNT(*) FROM appliances WHERE group_id = $1), $6)
ON CONFLICT (group_id, name) DO UPDATE SET current = EXCLUDED.current, state = EXCLUDED.state, priority = EXCLUDED.priority, updated_at = EXCLUDED.updated_at`,
		groupID, rd.Appliance, rd.Current, rd.State.String(), rd.Priority.String(), ts)
	if err != nil {
		return fmt.Errorf("upsert appliance %q: %w", rd.Appliance, err)
	}

	return tx.Commit()
}

func toGroups(rows []applianceRow) []domain.SocketGroup {
	var out []domain.SocketGroup
	for _, row := range rows {
		if len(out) == 0 || out[len(out)-1].Name != row.GroupName {
			out = append(out, domain.SocketGroup{Name: row.GroupName, Appliances: []domain.Appliance{}})
		}
		if !row.Name.Valid {
			continue
		}
		g := &out[len(out)-1]
		g.Appliances = append(g.Appliances, domain.Appliance{
			Name:     row.Name.String,
			Current:  row.Current.Float64,
			State:    domain.ParseState(row.State.String),
			Priority: domain.ParsePriority(row.Priority.String),
		})
	}
	return out
}
