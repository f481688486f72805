package cron

import (
	"Showcase/internal/api/config"
	"Showcase/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine       *cron.Cron
	cfg          config.CronConfig
	staleJob     *job.StaleProcessingJob
	counterSync  *job.CounterSyncJob
	registeredID []cron.EntryID
}

func NewCronManager(cfg config.CronConfig, staleJob *job.StaleProcessingJob, counterSync *job.CounterSyncJob) *Manager {
	return &Manager{
		engine:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		cfg:         cfg,
		staleJob:    staleJob,
		counterSync: counterSync,
	}
}

// RegisterJobs 注册定时任务，表达式为空的任务不注册
func (s *Manager) RegisterJobs() error {
	jobs := []struct {
		spec string
		job  cron.Job
	}{
		{s.cfg.StaleProcessing, s.staleJob},
		{s.cfg.CounterSync, s.counterSync},
	}
	for _, j := range jobs {
		if j.spec == "" {
			continue
		}
		id, err := s.engine.AddJob(j.spec, j.job)
		if err != nil {
			return err
		}
		s.registeredID = append(s.registeredID, id)
	}
	return nil
}

// Run 注册并启动，main 中调用
func (s *Manager) Run() error {
	if err := s.RegisterJobs(); err != nil {
		return err
	}
	s.Start()
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动", "jobs", len(s.registeredID))
	s.engine.Start()
}

// Stop 等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
