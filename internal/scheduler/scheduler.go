package scheduler

import (
	"context"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"site-cms/internal/dto"
	"site-cms/internal/pkg/config"
	"site-cms/internal/service"
)

const defaultSweepCron = "0 30 3 * * *"

// Scheduler 调度器
type Scheduler struct {
	cron          *cron.Cron
	logger        *zap.Logger
	sweepSvc      service.SweepService
	running       atomic.Bool
	cronSchedules map[string]cron.EntryID // 存储任务ID，便于管理
}

// NewScheduler 创建调度器
func NewScheduler(sweepSvc service.SweepService, logger *zap.Logger) *Scheduler {
	// 秒级 cron, 上一次未结束时跳过
	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	return &Scheduler{
		cron:          c,
		logger:        logger,
		sweepSvc:      sweepSvc,
		cronSchedules: make(map[string]cron.EntryID),
	}
}

// Start 启动调度器
func (s *Scheduler) Start(cfg *config.SweepConfig) error {
	log := s.logger.Sugar()

	if !cfg.Enabled {
		log.Info("孤儿文件清理未启用, 跳过定时任务")
		return nil
	}

	// cron 表达式格式: 秒 分 时 日 月 周
	cronExpr := cfg.Cron
	if cronExpr == "" {
		cronExpr = defaultSweepCron
		log.Warn("未配置sweep.cron，使用默认值", zap.String("cron", cronExpr))
	}

	entryID, err := s.cron.AddFunc(cronExpr, func() {
		log.Info("执行定时任务: 孤儿文件清理")
		if _, err := s.TriggerSweep(context.Background(), false); err != nil {
			log.Errorf("孤儿文件清理任务执行失败: %v", err)
		}
	})
	if err != nil {
		log.Errorf("注册孤儿文件清理任务失败: %s: %v", cronExpr, err)
		return err
	}

	s.cronSchedules["sweep"] = entryID
	log.Infof("孤儿文件清理任务已注册: %s entry_id=%d", cronExpr, entryID)

	s.cron.Start()
	log.Info("定时任务调度器启动成功")
	return nil
}

// Stop 停止调度器, 等待正在执行的任务完成
func (s *Scheduler) Stop() {
	s.logger.Info("正在停止定时任务调度器...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("定时任务调度器已停止")
}

// TriggerSweep 执行一次清理, 与定时任务互斥
func (s *Scheduler) TriggerSweep(ctx context.Context, dryRun bool) (*dto.SweepResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Info("清理任务正在执行, 跳过")
		return &dto.SweepResult{Skipped: true, Deleted: []string{}}, nil
	}
	defer s.running.Store(false)

	return s.sweepSvc.Sweep(ctx, dryRun)
}
