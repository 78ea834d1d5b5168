package scheduler

import (
	"context"
	"fmt"

	"CricketPredict/internal/config"
	"CricketPredict/internal/service"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

const (
	jobStatusSweep = "match-status-sweep"
	jobReconcile   = "ledger-reconcile"
)

// MatchStarter 到点开赛
type MatchStarter interface {
	StartDueMatches(ctx context.Context) (int, error)
}

// Reconciler 积分对账
type Reconciler interface {
	Run(ctx context.Context) (*service.ReconcileReport, error)
}

// Scheduler 后台定时任务：比赛状态扫描 + 积分对账，两个任务都是单例模式，上一轮未结束则跳过
type Scheduler struct {
	sched  gocron.Scheduler
	ctx    context.Context
	cancel context.CancelFunc
	logger *logrus.Logger
}

func New(cfg config.SchedulerConfig, clock clockwork.Clock, matches MatchStarter, reconciler Reconciler, logger *logrus.Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithClock(clock))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{sched: sched, ctx: ctx, cancel: cancel, logger: logger}

	_, err = sched.NewJob(
		gocron.DurationJob(cfg.StatusSweepGap),
		gocron.NewTask(func() { s.sweepMatches(s.ctx, matches) }),
		gocron.WithName(jobStatusSweep),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("register %s: %w", jobStatusSweep, err)
	}

	_, err = sched.NewJob(
		gocron.CronJob(cfg.ReconcileCron, false),
		gocron.NewTask(func() { s.reconcile(s.ctx, reconciler) }),
		gocron.WithName(jobReconcile),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("register %s: %w", jobReconcile, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.sched.Start()
	s.logger.Info("定时任务已启动")
}

// Shutdown 取消运行中任务的 ctx 并等待其退出
func (s *Scheduler) Shutdown() error {
	s.cancel()
	return s.sched.Shutdown()
}

func (s *Scheduler) sweepMatches(ctx context.Context, matches MatchStarter) {
	n, err := matches.StartDueMatches(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("[Scheduler] match status sweep failed")
		return
	}
	if n > 0 {
		s.logger.WithField("started", n).Info("[Scheduler] matches moved to ongoing")
	}
}

func (s *Scheduler) reconcile(ctx context.Context, reconciler Reconciler) {
	report, err := reconciler.Run(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("[Scheduler] ledger reconcile failed")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"users_checked":   report.UsersChecked,
		"users_corrected": report.UsersCorrected,
	}).Info("[Scheduler] ledger reconcile done")
}
