package service

import (
	"context"
	"testing"

	"CricketPredict/internal/repository"
	"CricketPredict/internal/repository/mockrepo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReconcileRun(t *testing.T) {
	ledger := &mockrepo.LedgerRepository{}
	svc := NewReconcileService(ledger, quietLogger())
	ledger.On("ReconcileUserPoints", mock.Anything).
		Return(5, []repository.PointsDrift{{UserID: 2, Cached: 7, Ledger: 5}}, nil)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, report.UsersChecked)
	assert.Equal(t, 1, report.UsersCorrected)
	assert.EqualValues(t, 5, report.Drifts[0].Ledger)
}
