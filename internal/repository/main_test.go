package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"CricketPredict/internal/containers"
	"CricketPredict/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// one container shared by every test in the package, started on first use
	dbOnce      sync.Once
	dbContainer *containers.DBContainer
	sharedDB    *gorm.DB
	dbErr       error

	// keeps usernames, team names and slugs unique across tests
	seq = int64(0)
)

func TestMain(m *testing.M) {
	code := m.Run()
	if dbContainer != nil {
		if err := dbContainer.Shutdown(context.Background()); err != nil {
			fmt.Printf("error terminating container: %v\n", err)
		}
	}
	os.Exit(code)
}

// testDB 返回迁移好的共享库；没有 Docker 时跳过
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	dbOnce.Do(func() {
		ctx := context.Background()
		dbContainer, dbErr = containers.NewDBContainer(ctx)
		if dbErr != nil {
			return
		}
		var dsn string
		dsn, dbErr = dbContainer.ConnectionString(ctx)
		if dbErr != nil {
			return
		}
		sharedDB, dbErr = gorm.Open(postgres.Open(dsn), GormConfig(logger.Silent))
		if dbErr != nil {
			return
		}
		dbErr = model.AutoMigrate(sharedDB)
	})
	require.NoError(t, dbErr)
	return sharedDB
}

func next() int64 {
	return atomic.AddInt64(&seq, 1)
}

func createUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	n := next()
	u := &model.User{
		Username:     fmt.Sprintf("user%d", n),
		Email:        fmt.Sprintf("user%d@example.com", n),
		PasswordHash: "x",
		DisplayName:  fmt.Sprintf("User %d", n),
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func createTeam(t *testing.T, db *gorm.DB) *model.Team {
	t.Helper()
	n := next()
	team := &model.Team{
		Name:      fmt.Sprintf("Team %d", n),
		ShortName: fmt.Sprintf("T%d", n),
		Slug:      fmt.Sprintf("team-%d", n),
	}
	require.NoError(t, NewTeamRepository(db).Create(context.Background(), team))
	return team
}

func createTournament(t *testing.T, db *gorm.DB) *model.Tournament {
	t.Helper()
	n := next()
	tour := &model.Tournament{
		Name: fmt.Sprintf("Cup %d", n),
		Slug: fmt.Sprintf("cup-%d", n),
	}
	require.NoError(t, NewTournamentRepository(db).Create(context.Background(), tour))
	return tour
}

func createMatch(t *testing.T, db *gorm.DB, tournamentID uint64, t1, t2 *model.Team, start time.Time) *model.Match {
	t.Helper()
	m := &model.Match{
		MatchUUID:    uuid.NewString(),
		TournamentID: tournamentID,
		Team1ID:      t1.ID,
		Team2ID:      t2.ID,
		StartTime:    start,
		Status:       model.MatchUpcoming,
	}
	require.NoError(t, NewMatchRepository(db).Create(context.Background(), m))
	return m
}

func ptr(v uint64) *uint64 { return &v }
