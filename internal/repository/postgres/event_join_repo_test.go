package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"bookingcalendar/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestJoinEventRepository_Upsert(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr error
	}{
		{
			name: "insert writes list rows in order",
			event: &domain.Event{
				Title:     "Gala",
				Date:      "2025-03-10",
				ArtistIDs: domain.NewEmbeddedList[int64](3, 1),
				Services:  domain.NewEmbeddedList(json.RawMessage(`"sound"`)),
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`INSERT INTO events \(title, date, format_id, promoter_id, tour_manager_id, notes, status, last_modified\)`).
					WithArgs("Gala", "2025-03-10", nil, nil, nil, nil, "planned", sqlmock.AnyArg()).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
				mock.ExpectExec(`DELETE FROM event_artists WHERE event_id = \$1`).
					WithArgs(int64(11)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`INSERT INTO event_artists`).
					WithArgs(int64(11), 0, int64(3)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO event_artists`).
					WithArgs(int64(11), 1, int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`DELETE FROM event_services WHERE event_id = \$1`).
					WithArgs(int64(11)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`INSERT INTO event_services`).
					WithArgs(int64(11), 0, `"sound"`).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			wantID: 11,
		},
		{
			name: "update of missing id rolls back",
			event: &domain.Event{
				ID:    50,
				Title: "Ghost",
				Date:  "2025-03-10",
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE events`).
					WithArgs("Ghost", "2025-03-10", nil, nil, nil, nil, "planned", sqlmock.AnyArg(), int64(50)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			wantID: 50,
		},
		{
			name: "unknown artist is a constraint error",
			event: &domain.Event{
				ID:        5,
				Title:     "Gala",
				Date:      "2025-03-10",
				ArtistIDs: domain.NewEmbeddedList[int64](404),
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE events`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`DELETE FROM event_artists`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO event_artists`).
					WillReturnError(&pq.Error{Code: "23503", Constraint: "event_artists_artist_id_fkey"})
				mock.ExpectRollback()
			},
			wantErr: &domain.ConstraintError{},
		},
		{
			name: "raw list is rejected before touching the store",
			event: &domain.Event{
				ID:        5,
				Title:     "Legacy",
				Date:      "2024-12-31",
				ArtistIDs: domain.RawEmbeddedList[int64]("1;2"),
			},
			mock:    func(mock sqlmock.Sqlmock) {},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewJoinEventRepository(db)
			err = repo.Upsert(ctx, tt.event)
			switch want := tt.wantErr.(type) {
			case nil:
				require.NoError(t, err)
				require.Equal(t, tt.wantID, tt.event.ID)
				require.False(t, tt.event.LastModified.IsZero())
				require.Zero(t, tt.event.LastModified.Nanosecond()%int(time.Microsecond))
			case *domain.ConstraintError:
				var cerr *domain.ConstraintError
				require.ErrorAs(t, err, &cerr)
				require.Equal(t, "event_artists_artist_id_fkey", cerr.Constraint)
			default:
				require.ErrorIs(t, err, want)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestJoinEventRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("hydrates lists from join tables", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM events WHERE id = \$1`).
			WithArgs(int64(11)).
			WillReturnRows(eventRows().AddRow(
				int64(11), "Gala", "2025-03-10", nil, nil, nil, nil, nil, nil, "planned", lastModified,
			))
		mock.ExpectQuery(`SELECT event_id, artist_id FROM event_artists`).
			WithArgs(pq.Array([]int64{11})).
			WillReturnRows(sqlmock.NewRows([]string{"event_id", "artist_id"}).
				AddRow(int64(11), int64(3)).
				AddRow(int64(11), int64(1)))
		mock.ExpectQuery(`SELECT event_id, value FROM event_services`).
			WithArgs(pq.Array([]int64{11})).
			WillReturnRows(sqlmock.NewRows([]string{"event_id", "value"}))

		got, found, err := NewJoinEventRepository(db).Get(ctx, 11)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, []int64{3, 1}, got.ArtistIDs.Items)
		require.Equal(t, 0, got.Services.Len())
		require.Equal(t, lastModified, got.LastModified)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found skips hydration", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM events WHERE id = \$1`).
			WithArgs(int64(12)).
			WillReturnRows(eventRows())

		got, found, err := NewJoinEventRepository(db).Get(ctx, 12)
		require.NoError(t, err)
		require.False(t, found)
		require.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestJoinEventRepository_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		filter  domain.EventFilter
		mock    func(mock sqlmock.Sqlmock)
		wantIDs []int64
		wantErr bool
	}{
		{
			name: "membership filters run in SQL",
			filter: domain.EventFilter{
				DateFrom:  "2025-03-01",
				ArtistIDs: []int64{3},
				FormatIDs: []int64{2},
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events WHERE date >= \$1 AND EXISTS \(SELECT 1 FROM event_artists ea WHERE ea.event_id = events.id AND ea.artist_id = ANY\(\$2\)\) AND format_id = ANY\(\$3\)`).
					WithArgs("2025-03-01", pq.Array([]int64{3}), pq.Array([]int64{2})).
					WillReturnRows(eventRows().
						AddRow(int64(1), "A", "2025-03-02", int64(2), nil, nil, nil, nil, nil, "planned", lastModified))
				mock.ExpectQuery(`SELECT event_id, artist_id FROM event_artists`).
					WithArgs(pq.Array([]int64{1})).
					WillReturnRows(sqlmock.NewRows([]string{"event_id", "artist_id"}).AddRow(int64(1), int64(3)))
				mock.ExpectQuery(`SELECT event_id, value FROM event_services`).
					WithArgs(pq.Array([]int64{1})).
					WillReturnRows(sqlmock.NewRows([]string{"event_id", "value"}).AddRow(int64(1), `"sound"`))
			},
			wantIDs: []int64{1},
		},
		{
			name:   "empty result skips hydration",
			filter: domain.EventFilter{},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM events`).WillReturnRows(eventRows())
			},
			wantIDs: []int64{},
		},
		{
			name:   "db error",
			filter: domain.EventFilter{},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM events`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewJoinEventRepository(db).List(ctx, tt.filter)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				ids := make([]int64, 0, len(got))
				for _, e := range got {
					ids = append(ids, e.ID)
				}
				require.Equal(t, tt.wantIDs, ids)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
