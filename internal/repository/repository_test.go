package repository

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/domain"
)

func newMockRepos(t *testing.T) (*Repos, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(sqlx.NewDb(db, "sqlmock")), mock
}

var groupColumns = []string{"group_name", "appliance_name", "current", "state", "priority"}

func TestListGroups(t *testing.T) {
	repos, mock := newMockRepos(t)

	rows := sqlmock.NewRows(groupColumns).
		AddRow("Garage", nil, nil, nil, nil).
		AddRow("Kitchen", "Oven", 10.0, "on", "essential").
		AddRow("Kitchen", "Toaster", 5.0, "", "non_essential")
	mock.ExpectQuery(regexp.QuoteMeta(selectGroups + ` ORDER BY g.name, a.position, a.id`)).WillReturnRows(rows)

	groups, err := repos.ListGroups()
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "Garage", groups[0].Name)
	assert.Empty(t, groups[0].Appliances)

	assert.Equal(t, "Kitchen", groups[1].Name)
	assert.Equal(t, []domain.Appliance{
		{Name: "Oven", Current: 10, State: domain.StateOn, Priority: domain.PriorityEssential},
		{Name: "Toaster", Current: 5, State: domain.StateUnknown, Priority: domain.PriorityNonEssential},
	}, groups[1].Appliances)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupByName(t *testing.T) {
	repos, mock := newMockRepos(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE g.name = $1`)).
		WithArgs("Garage").
		WillReturnRows(sqlmock.NewRows(groupColumns).AddRow("Garage", "Drill", 14.0, "on", ""))

	g, err := repos.GroupByName("Garage")
	require.NoError(t, err)
	assert.Equal(t, "Garage", g.Name)
	assert.InDelta(t, 14.0, g.TotalCurrent(), 1e-9)
}

func TestGroupByNameUnknown(t *testing.T) {
	repos, mock := newMockRepos(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE g.name = $1`)).
		WithArgs("Loft").
		WillReturnRows(sqlmock.NewRows(groupColumns))

	_, err := repos.GroupByName("Loft")
	assert.True(t, errors.Is(err, ErrUnknownGroup))
}

func TestUpsertAppliance(t *testing.T) {
	repos, mock := newMockRepos(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO socket_groups(name) VALUES ($1)`)).
		WithArgs("Kitchen").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO appliances(group_id, name, current, state, priority, position, updated_at)`)).
		WithArgs(int64(7), "Toaster", 5.0, "on", "non_essential", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repos.UpsertAppliance(&domain.ApplianceReading{
		Group:     "Kitchen",
		Appliance: "Toaster",
		Current:   5,
		State:     domain.StateOn,
		Priority:  domain.PriorityNonEssential,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertApplianceRollsBack(t *testing.T) {
	repos, mock := newMockRepos(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO socket_groups`)).
		WithArgs("Kitchen").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repos.UpsertAppliance(&domain.ApplianceReading{Group: "Kitchen", Appliance: "Oven"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
